// Package classifier implements the remote semantic classifier consulted
// when the local pattern matcher lands in the gray zone. It talks to any
// OpenAI-compatible chat-completions endpoint; the default configuration
// points at Groq's llama-3.1-8b-instant for sub-second classification.
package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/solobuddy/hub/internal/intent"
	"github.com/solobuddy/hub/internal/models"
)

const classificationSystem = `You are an intent classifier for SoloBuddy, a personal productivity assistant.

Classify the user message into ONE of these intents:
- add_to_backlog: User wants to add/save an idea to their backlog
- find_idea: User wants to find/search for an existing idea
- show_activity: User wants to see recent activity or status
- link_to_project: User wants to link something to a project
- change_priority: User wants to change priority of an idea
- generate_content: User wants to create/write content (post, thread, tip)
- unknown: Message doesn't match any intent

Respond with ONLY valid JSON:
{"type": "<intent>", "confidence": <0-100>}

Be generous with generate_content - if user mentions writing, creating, or wants content, it's likely generate_content.`

// Models sometimes wrap the JSON in prose; take the outermost object.
var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

type classifierResponse struct {
	Type       string `json:"type"`
	Confidence int    `json:"confidence"`
}

// LLMClassifier classifies messages with a remote LLM. A zero-value API key
// disables it: Classify then reports unknown/0 without a network call.
type LLMClassifier struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewLLMClassifier builds a classifier. baseURL may be empty for the OpenAI
// default or point at any compatible endpoint (Groq, local vLLM, ...).
func NewLLMClassifier(apiKey, baseURL, model string, logger *zap.Logger) *LLMClassifier {
	c := &LLMClassifier{model: model, logger: logger}
	if apiKey == "" {
		logger.Warn("no classifier API key configured, gray-zone messages stay local")
		return c
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	c.client = openai.NewClientWithConfig(cfg)
	return c
}

// Classify asks the remote model for an intent. The context snapshot is
// accepted for interface parity but not sent; the message alone decides.
// Invalid categories are coerced to unknown/0 rather than surfaced.
func (c *LLMClassifier) Classify(ctx context.Context, message string, _ models.Context) (intent.Classification, error) {
	unknown := intent.Classification{Type: intent.CategoryUnknown, Confidence: 0}
	if c.client == nil {
		return unknown, nil
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: classificationSystem},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
		MaxTokens:   100,
		Temperature: 0.1,
	})
	if err != nil {
		return unknown, fmt.Errorf("classification request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return unknown, fmt.Errorf("classification response had no choices")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	raw := jsonObjectPattern.FindString(text)
	if raw == "" {
		c.logger.Warn("classifier reply contained no JSON", zap.String("reply", text))
		return unknown, nil
	}

	var parsed classifierResponse
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		c.logger.Warn("failed to parse classifier reply", zap.Error(err), zap.String("reply", text))
		return unknown, nil
	}

	category, ok := intent.ParseCategory(parsed.Type)
	if !ok {
		c.logger.Warn("classifier returned invalid intent type", zap.String("type", parsed.Type))
		return unknown, nil
	}

	confidence := parsed.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 100 {
		confidence = 100
	}
	return intent.Classification{Type: category, Confidence: confidence}, nil
}
