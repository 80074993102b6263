package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/tradequote/quoting-api/internal/config"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// QuoteGenerator produces quote text for a job from a prepared prompt.
// The returned text is stored verbatim; the estimate range is derived
// from it later, never from the generator.
type QuoteGenerator interface {
	GenerateQuote(ctx context.Context, prompt string) (string, error)
	Model() string
	Close() error
}

// GeminiClient implements QuoteGenerator for Google Gemini
type GeminiClient struct {
	client  *genai.Client
	cfg     *config.AIConfig
	logger  *zap.Logger
	timeout time.Duration
}

// NewGeminiClient creates a new Gemini-backed quote generator
func NewGeminiClient(ctx context.Context, cfg *config.AIConfig, logger *zap.Logger) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	timeout := time.Duration(cfg.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	logger.Info("Gemini quote generator initialized",
		zap.String("model", cfg.Model),
	)

	return &GeminiClient{
		client:  client,
		cfg:     cfg,
		logger:  logger,
		timeout: timeout,
	}, nil
}

// GenerateQuote asks the model for a structured quote document
func (c *GeminiClient) GenerateQuote(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	model := c.client.GenerativeModel(c.cfg.Model)
	model.SetTemperature(0.2) // Low temperature for consistent pricing output
	model.ResponseMIMEType = "application/json"

	start := time.Now()
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate quote: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", err
	}

	c.logger.Debug("quote generated",
		zap.String("model", c.cfg.Model),
		zap.Int("response_length", len(text)),
		zap.Duration("duration", time.Since(start)),
	)

	return cleanJSONBlock(text), nil
}

// Model returns the configured model name
func (c *GeminiClient) Model() string {
	return c.cfg.Model
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}

// cleanJSONBlock removes markdown code block wrappers from JSON
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
