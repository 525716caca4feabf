package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillbridge-sg/skillbridge-backend/internal/domain"
	"github.com/skillbridge-sg/skillbridge-backend/internal/usecase/assistant"
	"github.com/skillbridge-sg/skillbridge-backend/internal/usecase/swipe"
)

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps domain errors to HTTP status codes. Unknown errors
// become 500 without leaking internals.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrMessageEmpty),
		errors.Is(err, domain.ErrMessageTooLong),
		errors.Is(err, domain.ErrReportTooLong),
		errors.Is(err, domain.ErrCannotReportSelf),
		errors.Is(err, domain.ErrCannotConnectSelf):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotParticipant):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrConversationNotFound),
		errors.Is(err, domain.ErrReportNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrUserAlreadyExists):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, swipe.ErrNoActiveSession),
		errors.Is(err, swipe.ErrNotReady),
		errors.Is(err, swipe.ErrExhausted),
		errors.Is(err, swipe.ErrNotExhausted),
		errors.Is(err, swipe.ErrUndoUnavailable),
		errors.Is(err, swipe.ErrCommitInFlight):
		// Session-state conflicts. 429 is reserved for the rate limiter,
		// which carries X-RateLimit headers.
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, assistant.ErrQuotaExhausted):
		c.JSON(http.StatusPaymentRequired, ErrorResponse{Error: "AI credits exhausted, contact support"})
	case errors.Is(err, assistant.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
