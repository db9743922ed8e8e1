// Package chat provides the plain-conversation fallback: when the intent
// pipeline produces no actionable card, the message goes to a completion
// service with a context-aware system prompt.
package chat

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/solobuddy/hub/internal/models"
)

// Message is one turn of chat history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Responder struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float64
	logger      *zap.Logger
}

func NewResponder(apiKey, baseURL, model string, maxTokens int, temperature float64, logger *zap.Logger) *Responder {
	r := &Responder{model: model, maxTokens: maxTokens, temperature: temperature, logger: logger}
	if apiKey == "" {
		logger.Warn("no chat API key configured, conversational replies disabled")
		return r
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	r.client = openai.NewClientWithConfig(cfg)
	return r
}

// Respond sends the history plus the context-derived system prompt to the
// completion service and returns the reply text.
func (r *Responder) Respond(ctx context.Context, history []Message, data models.Context) (string, error) {
	if r.client == nil {
		return "", fmt.Errorf("chat API key not configured")
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: buildSystemPrompt(data),
	})
	for _, m := range history {
		role := m.Role
		// The UI logs assistant turns under the buddy persona.
		if role == "buddy" {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       r.model,
		Messages:    messages,
		MaxTokens:   r.maxTokens,
		Temperature: float32(r.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// buildSystemPrompt folds the context snapshot into the companion persona.
func buildSystemPrompt(data models.Context) string {
	var b strings.Builder
	b.WriteString(`You are SoloBuddy, a warm and helpful coding companion. You have a calm, friendly personality — like a wise friend by the fireplace. You speak in a mix of English and Russian naturally.

You know about these projects the user is working on:
`)

	if len(data.Projects) == 0 {
		b.WriteString("- No projects configured yet\n")
	}
	for _, p := range data.Projects {
		b.WriteString(fmt.Sprintf("- **%s**: %s", p.Name, p.Path))
		if p.GithubURL != "" {
			b.WriteString(fmt.Sprintf(" (GitHub: %s)", p.GithubURL))
		}
		b.WriteString("\n")
	}

	if len(data.BacklogItems) > 0 {
		b.WriteString("\nRecent ideas in backlog:\n")
		items := data.BacklogItems
		if len(items) > 5 {
			items = items[:5]
		}
		for _, item := range items {
			b.WriteString(fmt.Sprintf("- %s (%s)\n", item.Title, item.Priority))
		}
	}

	if len(data.GitActivity) > 0 {
		b.WriteString("\nRecent git activity:\n")
		for _, stat := range data.GitActivity {
			b.WriteString(fmt.Sprintf("- %s: %d days since last commit\n", stat.ProjectName, stat.DaysSilent))
		}
	}

	b.WriteString("\nKeep responses concise but warm. Use emoji sparingly. Help the user stay focused and motivated.")
	return b.String()
}
