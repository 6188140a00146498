package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/divops/tarotai/internal/config"
	"github.com/go-resty/resty/v2"
)

// ReadingGenerator produces base interpretations through an OpenAI-compatible
// chat completions API. Failures are not retried here: a failed generation is
// fatal to the enclosing request.
type ReadingGenerator struct {
	client   *resty.Client
	model    string
	endpoint string
	enabled  bool
}

// NewReadingGenerator creates a generator from LLM configuration. Without an
// API key the generator runs in disabled mode and returns a deterministic
// placeholder interpretation, which keeps local development working offline.
func NewReadingGenerator(cfg *config.LLMConfig) *ReadingGenerator {
	if cfg == nil || cfg.APIKey == "" {
		return &ReadingGenerator{enabled: false}
	}

	client := resty.New()
	client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(60 * time.Second)

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	return &ReadingGenerator{
		client:   client,
		model:    cfg.Model,
		endpoint: baseURL + "/chat/completions",
		enabled:  true,
	}
}

// IsEnabled returns whether live generation is configured.
func (g *ReadingGenerator) IsEnabled() bool {
	return g.enabled
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float32       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Generate renders one interpretation for the given system and user prompts.
// Parameters:
//   - ctx: request context for cancellation.
//   - systemPrompt: role and rules for the reader persona.
//   - userPrompt: the rendered question and spread.
// Returns:
//   - string: the interpretation text.
//   - error: non-nil if the API call fails or returns no content.
func (g *ReadingGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if !g.enabled {
		return placeholderReading(userPrompt), nil
	}

	req := chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens:   800,
		Temperature: 0.7,
	}

	var resp chatResponse
	httpResp, err := g.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&resp).
		Post(g.endpoint)

	if err != nil {
		return "", fmt.Errorf("reading generation API call failed: %w", err)
	}

	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		if resp.Error != nil {
			return "", fmt.Errorf("reading generation API error: %s", resp.Error.Message)
		}
		return "", fmt.Errorf("reading generation API error: status %d", httpResp.StatusCode())
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("reading generation returned no content")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// placeholderReading is the disabled-mode interpretation. It echoes the
// prompt's card lines so callers and tests see the drawn spread reflected.
func placeholderReading(userPrompt string) string {
	var cards []string
	for _, line := range strings.Split(userPrompt, "\n") {
		if strings.HasPrefix(line, "- ") {
			cards = append(cards, strings.TrimPrefix(line, "- "))
		}
	}
	if len(cards) == 0 {
		return "The cards invite quiet reflection today."
	}
	return fmt.Sprintf("The spread speaks through %s. Sit with what each position stirs in you, and let the cards' meanings guide your next step.", strings.Join(cards, "; "))
}
