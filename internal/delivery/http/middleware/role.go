package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillbridge-sg/skillbridge-backend/internal/usecase/auth"
)

// RequireModerator allows only moderator or admin accounts through.
// This guard is the sole authorization check for the moderation
// console routes.
func RequireModerator(authUseCase *auth.AuthUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}

		user, err := authUseCase.GetUser(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
			c.Abort()
			return
		}
		if !user.IsModerator() {
			c.JSON(http.StatusForbidden, gin.H{"error": "moderator access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}
