package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/skillbridge-sg/skillbridge-backend/internal/delivery/http/middleware"
	"github.com/skillbridge-sg/skillbridge-backend/internal/usecase/profile"
)

const (
	defaultDiscoverLimit = 50
	maxDiscoverLimit     = 100
)

type DiscoverHandler struct {
	profileUseCase *profile.ProfileUseCase
}

func NewDiscoverHandler(profileUseCase *profile.ProfileUseCase) *DiscoverHandler {
	return &DiscoverHandler{profileUseCase: profileUseCase}
}

// Discover handles GET /api/v1/discover. It returns visible profiles
// other than the caller's; banned and skill-less profiles are filtered
// at the query.
func (h *DiscoverHandler) Discover(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultDiscoverLimit)))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > maxDiscoverLimit {
		limit = defaultDiscoverLimit
	}
	if offset < 0 {
		offset = 0
	}

	profiles, err := h.profileUseCase.GetPublicProfiles(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profiles": profiles, "count": len(profiles)})
}
