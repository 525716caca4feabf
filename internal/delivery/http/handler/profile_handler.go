package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/skillbridge-sg/skillbridge-backend/internal/delivery/http/middleware"
	"github.com/skillbridge-sg/skillbridge-backend/internal/usecase/auth"
	"github.com/skillbridge-sg/skillbridge-backend/internal/usecase/profile"
)

type ProfileHandler struct {
	profileUseCase *profile.ProfileUseCase
	authUseCase    *auth.AuthUseCase
}

func NewProfileHandler(profileUseCase *profile.ProfileUseCase, authUseCase *auth.AuthUseCase) *ProfileHandler {
	return &ProfileHandler{profileUseCase: profileUseCase, authUseCase: authUseCase}
}

// GetMyProfile handles GET /api/v1/profiles/me. The profile is created
// lazily here when registration's eager create did not happen, with the
// phone as a placeholder name until the owner edits it.
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	user, err := h.authUseCase.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	p, err := h.profileUseCase.GetOrCreateProfile(c.Request.Context(), userID, user.Phone)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateMyProfile handles PUT /api/v1/profiles/me
func (h *ProfileHandler) UpdateMyProfile(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req profile.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	p, err := h.profileUseCase.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// GetProfile handles GET /api/v1/profiles/:user_id
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	targetID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
		return
	}

	p, err := h.profileUseCase.GetProfileByUserID(c.Request.Context(), targetID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
