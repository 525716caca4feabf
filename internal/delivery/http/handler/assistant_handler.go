package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillbridge-sg/skillbridge-backend/internal/usecase/assistant"
)

type AssistantHandler struct {
	assistantUseCase *assistant.AssistantUseCase
}

func NewAssistantHandler(assistantUseCase *assistant.AssistantUseCase) *AssistantHandler {
	return &AssistantHandler{assistantUseCase: assistantUseCase}
}

// Chat handles POST /api/v1/assistant/chat
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req assistant.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := h.assistantUseCase.Chat(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Translate handles POST /api/v1/assistant/translate
func (h *AssistantHandler) Translate(c *gin.Context) {
	var req assistant.TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := h.assistantUseCase.Translate(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Languages handles GET /api/v1/assistant/languages
func (h *AssistantHandler) Languages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"languages": assistant.SupportedLanguages()})
}
