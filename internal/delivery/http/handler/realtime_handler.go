package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/skillbridge-sg/skillbridge-backend/internal/delivery/http/middleware"
	"github.com/skillbridge-sg/skillbridge-backend/internal/infrastructure/realtime"
)

type RealtimeHandler struct {
	hub *realtime.Hub
}

func NewRealtimeHandler(hub *realtime.Hub) *RealtimeHandler {
	return &RealtimeHandler{hub: hub}
}

// Connect handles GET /api/v1/ws. The token is accepted via query
// parameter because browsers cannot set headers on websocket upgrades.
func (h *RealtimeHandler) Connect(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	h.hub.ServeWS(c.Writer, c.Request, userID)
}
