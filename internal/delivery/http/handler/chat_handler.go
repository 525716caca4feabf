package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skillbridge-sg/skillbridge-backend/internal/delivery/http/middleware"
	"github.com/skillbridge-sg/skillbridge-backend/internal/usecase/chat"
)

const (
	defaultMessageLimit = 50
	maxMessageLimit     = 200
)

type ChatHandler struct {
	chatUseCase *chat.ChatUseCase
}

func NewChatHandler(chatUseCase *chat.ChatUseCase) *ChatHandler {
	return &ChatHandler{chatUseCase: chatUseCase}
}

type createConversationRequest struct {
	UserID int `json:"user_id" binding:"required"`
}

// CreateConversation handles POST /api/v1/conversations. Creating a
// conversation that already exists returns the existing one.
func (h *ChatHandler) CreateConversation(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req createConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	conv, err := h.chatUseCase.GetOrCreateConversation(c.Request.Context(), userID, req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, conv)
}

// ListConversations handles GET /api/v1/conversations
func (h *ChatHandler) ListConversations(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	convs, err := h.chatUseCase.GetConversations(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": convs, "count": len(convs)})
}

type sendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// SendMessage handles POST /api/v1/conversations/:id/messages. The
// response carries the stored message plus an advisory scam warning.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid conversation id"})
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	msg, err := h.chatUseCase.SendMessage(c.Request.Context(), userID, conversationID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// GetMessages handles GET /api/v1/conversations/:id/messages
func (h *ChatHandler) GetMessages(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid conversation id"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultMessageLimit)))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > maxMessageLimit {
		limit = defaultMessageLimit
	}
	if offset < 0 {
		offset = 0
	}

	msgs, err := h.chatUseCase.GetMessages(c.Request.Context(), userID, conversationID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs, "count": len(msgs)})
}

// MarkRead handles POST /api/v1/conversations/:id/read
func (h *ChatHandler) MarkRead(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid conversation id"})
		return
	}

	updated, err := h.chatUseCase.MarkRead(c.Request.Context(), userID, conversationID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"marked_read": updated})
}

// UnreadCount handles GET /api/v1/messages/unread
func (h *ChatHandler) UnreadCount(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	count, err := h.chatUseCase.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}
