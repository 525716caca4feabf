package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// ErrQuotaExhausted marks upstream credit/quota failures so callers can
// distinguish "try later" from "contact support".
var ErrQuotaExhausted = errors.New("upstream AI quota exhausted")

type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiClient(apiKey string) (*GeminiClient, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-1.5-pro")
	model.SetTemperature(0.7)

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiClient) Close() {
	c.client.Close()
}

// ChatMessage is one turn of the skill-buddy conversation.
type ChatMessage struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content" binding:"required,max=5000"`
}

// Chat sends the conversation history and returns the assistant reply.
func (c *GeminiClient) Chat(ctx context.Context, messages []ChatMessage) (string, error) {
	var prompt strings.Builder
	prompt.WriteString("You are SkillBuddy, a friendly helper inside a Singapore " +
		"intergenerational skill-exchange app. Help users plan skill exchanges, " +
		"suggest learning approaches, and answer questions about the app. " +
		"Keep replies short and warm.\n\n")
	for _, m := range messages {
		prompt.WriteString(m.Role)
		prompt.WriteString(": ")
		prompt.WriteString(m.Content)
		prompt.WriteString("\n")
	}
	prompt.WriteString("assistant:")

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt.String()))
	if err != nil {
		return "", classifyError(err)
	}
	return collectText(resp)
}

// Translate renders text into the target language, returning only the
// translation.
func (c *GeminiClient) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	prompt := fmt.Sprintf(
		"Translate the following message into %s. Output only the translated text, nothing else.\n\n%s",
		targetLanguage, text,
	)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", classifyError(err)
	}
	return collectText(resp)
}

func collectText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no content generated")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	out := strings.TrimSpace(sb.String())
	// Clean up markdown code blocks if present
	out = strings.TrimPrefix(out, "```json")
	out = strings.TrimPrefix(out, "```")
	out = strings.TrimSuffix(out, "```")
	return strings.TrimSpace(out), nil
}

func classifyError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && (apiErr.Code == 429 || apiErr.Code == 402) {
		return ErrQuotaExhausted
	}
	return err
}
