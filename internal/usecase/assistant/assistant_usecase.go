package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/skillbridge-sg/skillbridge-backend/internal/domain"
	"github.com/skillbridge-sg/skillbridge-backend/internal/infrastructure/gemini"
)

var (
	ErrUnavailable    = errors.New("assistant is not available")
	ErrQuotaExhausted = gemini.ErrQuotaExhausted
)

const maxTranslationLength = 5000

// supportedLanguages is the translation allow-list: Singapore's four
// official languages plus common regional ones.
var supportedLanguages = map[string]string{
	"en": "English",
	"zh": "Chinese (Simplified)",
	"ms": "Malay",
	"ta": "Tamil",
	"hi": "Hindi",
	"id": "Indonesian",
	"ja": "Japanese",
	"ko": "Korean",
	"th": "Thai",
	"vi": "Vietnamese",
}

type AssistantUseCase struct {
	geminiClient *gemini.GeminiClient
}

func NewAssistantUseCase(geminiClient *gemini.GeminiClient) *AssistantUseCase {
	return &AssistantUseCase{geminiClient: geminiClient}
}

// ChatRequest mirrors the {messages:[{role,content}]} wire contract.
type ChatRequest struct {
	Messages []gemini.ChatMessage `json:"messages" binding:"required,min=1,max=50,dive"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

// TranslateRequest carries text plus an allow-listed target language.
type TranslateRequest struct {
	Text           string `json:"text" binding:"required"`
	TargetLanguage string `json:"targetLanguage" binding:"required"`
}

type TranslateResponse struct {
	TranslatedText string `json:"translatedText"`
}

func (uc *AssistantUseCase) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	if uc.geminiClient == nil {
		return nil, ErrUnavailable
	}

	reply, err := uc.geminiClient.Chat(ctx, req.Messages)
	if err != nil {
		return nil, fmt.Errorf("assistant chat failed: %w", err)
	}
	return &ChatResponse{Reply: reply}, nil
}

func (uc *AssistantUseCase) Translate(ctx context.Context, req *TranslateRequest) (*TranslateResponse, error) {
	if uc.geminiClient == nil {
		return nil, ErrUnavailable
	}

	text := strings.TrimSpace(req.Text)
	if text == "" || len([]rune(text)) > maxTranslationLength {
		return nil, domain.ErrInvalidInput
	}
	language, ok := supportedLanguages[req.TargetLanguage]
	if !ok {
		return nil, domain.ErrInvalidInput
	}

	translated, err := uc.geminiClient.Translate(ctx, text, language)
	if err != nil {
		return nil, fmt.Errorf("translation failed: %w", err)
	}
	return &TranslateResponse{TranslatedText: translated}, nil
}

// SupportedLanguages lists the allow-list for clients.
func SupportedLanguages() []string {
	out := make([]string, 0, len(supportedLanguages))
	for code := range supportedLanguages {
		out = append(out, code)
	}
	return out
}
