package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/skillbridge-sg/skillbridge-backend/internal/delivery/http/middleware"
	"github.com/skillbridge-sg/skillbridge-backend/internal/usecase/chat"
	"github.com/skillbridge-sg/skillbridge-backend/internal/usecase/swipe"
)

type SwipeHandler struct {
	manager   *swipe.Manager
	publisher chat.EventPublisher
}

func NewSwipeHandler(manager *swipe.Manager, publisher chat.EventPublisher) *SwipeHandler {
	return &SwipeHandler{manager: manager, publisher: publisher}
}

func swipeTopic(userID int) string {
	return "user:" + strconv.Itoa(userID) + ":swipe"
}

// StartSession handles POST /api/v1/swipe/session. Asynchronous swipe
// outcomes (celebration, connected, exhausted) are pushed over the
// caller's swipe topic.
func (h *SwipeHandler) StartSession(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	topic := swipeTopic(userID)
	session, err := h.manager.StartSession(c.Request.Context(), userID, func(e swipe.Event) {
		h.publisher.Publish(topic, e)
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session.Snapshot())
}

// GetSession handles GET /api/v1/swipe/session
func (h *SwipeHandler) GetSession(c *gin.Context) {
	session, err := h.session(c)
	if err != nil {
		return
	}
	c.JSON(http.StatusOK, session.Snapshot())
}

// EndSession handles DELETE /api/v1/swipe/session
func (h *SwipeHandler) EndSession(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	h.manager.End(userID)
	c.JSON(http.StatusOK, gin.H{"message": "session ended"})
}

type dragRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DragStart handles POST /api/v1/swipe/drag/start
func (h *SwipeHandler) DragStart(c *gin.Context) {
	session, err := h.session(c)
	if err != nil {
		return
	}

	var req dragRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := session.DragStart(req.X, req.Y); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session.Snapshot())
}

// DragMove handles POST /api/v1/swipe/drag/move
func (h *SwipeHandler) DragMove(c *gin.Context) {
	session, err := h.session(c)
	if err != nil {
		return
	}

	var req dragRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	offset, err := session.DragMove(req.X, req.Y)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offset": offset})
}

// DragEnd handles POST /api/v1/swipe/drag/end
func (h *SwipeHandler) DragEnd(c *gin.Context) {
	session, err := h.session(c)
	if err != nil {
		return
	}

	if err := session.DragEnd(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session.Snapshot())
}

type commitRequest struct {
	Direction swipe.Direction `json:"direction" binding:"required,oneof=left right"`
}

// Commit handles POST /api/v1/swipe/commit for button-driven swipes.
func (h *SwipeHandler) Commit(c *gin.Context) {
	session, err := h.session(c)
	if err != nil {
		return
	}

	var req commitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := session.Commit(c.Request.Context(), req.Direction); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session.Snapshot())
}

// Undo handles POST /api/v1/swipe/undo
func (h *SwipeHandler) Undo(c *gin.Context) {
	session, err := h.session(c)
	if err != nil {
		return
	}

	candidate, err := session.Undo()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"restored": candidate, "snapshot": session.Snapshot()})
}

// Restart handles POST /api/v1/swipe/restart
func (h *SwipeHandler) Restart(c *gin.Context) {
	session, err := h.session(c)
	if err != nil {
		return
	}

	if err := session.Restart(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session.Snapshot())
}

// DismissCelebration handles POST /api/v1/swipe/celebration/dismiss
func (h *SwipeHandler) DismissCelebration(c *gin.Context) {
	session, err := h.session(c)
	if err != nil {
		return
	}

	session.DismissCelebration()
	c.JSON(http.StatusOK, session.Snapshot())
}

func (h *SwipeHandler) session(c *gin.Context) (*swipe.Session, error) {
	userID, _ := middleware.GetUserID(c)
	session, err := h.manager.Get(userID)
	if err != nil {
		respondError(c, err)
		return nil, err
	}
	return session, nil
}
