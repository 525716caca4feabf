package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/skillbridge-sg/skillbridge-backend/internal/domain"
	"github.com/skillbridge-sg/skillbridge-backend/internal/usecase/assistant"
	"github.com/skillbridge-sg/skillbridge-backend/internal/usecase/swipe"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", domain.ErrInvalidInput, http.StatusBadRequest},
		{"not participant", domain.ErrNotParticipant, http.StatusForbidden},
		{"profile missing", domain.ErrProfileNotFound, http.StatusNotFound},
		{"commit in flight", swipe.ErrCommitInFlight, http.StatusConflict},
		{"undo unavailable", swipe.ErrUndoUnavailable, http.StatusConflict},
		{"ai quota", assistant.ErrQuotaExhausted, http.StatusPaymentRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondError(c, tt.err)

			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
			// Only the rate limiter speaks 429 with its headers.
			if w.Code == http.StatusTooManyRequests {
				t.Error("respondError must not emit 429")
			}
			if got := w.Header().Get("X-RateLimit-Limit"); got != "" {
				t.Errorf("unexpected rate-limit header %q", got)
			}
		})
	}
}
