// Package openai provides an LLM service adapter speaking the OpenAI
// chat-completions protocol. Azure OpenAI and compatible endpoints are
// supported through the provider setting, which only changes the auth
// header.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/custodia-labs/jobradar-cli/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// Default configuration values.
const (
	DefaultBaseURL    = "https://api.openai.com/v1"
	DefaultLLMModel   = "gpt-4o-mini"
	DefaultLLMTimeout = 30 * time.Second

	// ProviderAzure authenticates with an "api-key" header instead of a
	// Bearer token. Anything else is treated as standard OpenAI.
	ProviderAzure = "azure"
)

// LLMConfig holds configuration for the chat-completions service.
type LLMConfig struct {
	// APIKey is the API key (required).
	APIKey string

	// Provider selects the auth dialect: "openai" (default) or "azure".
	Provider string

	// BaseURL is the API base URL (default: https://api.openai.com/v1).
	BaseURL string

	// CompletionsURL overrides the full chat-completions endpoint. When
	// empty, BaseURL + "/chat/completions" is used.
	CompletionsURL string

	// Model is the chat model to use (default: gpt-4o-mini).
	Model string

	// Org is an optional OpenAI organisation ID.
	Org string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// LLMService provides chat-completion operations against an
// OpenAI-compatible API.
type LLMService struct {
	client         *http.Client
	completionsURL string
	apiKey         string
	provider       string
	model          string
	org            string
}

// chatCompletionRequest is the /chat/completions request format.
type chatCompletionRequest struct {
	Model          string              `json:"model"`
	Messages       []chatCompletionMsg `json:"messages"`
	Temperature    float64             `json:"temperature"`
	ResponseFormat *responseFormat     `json:"response_format,omitempty"`
}

// chatCompletionMsg is the chat message format.
type chatCompletionMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// responseFormat requests structured output from the model.
type responseFormat struct {
	Type string `json:"type"`
}

// chatCompletionResponse is the /chat/completions response format.
type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// NewLLMService creates a new chat-completions service.
func NewLLMService(cfg LLMConfig) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.CompletionsURL == "" {
		cfg.CompletionsURL = cfg.BaseURL + "/chat/completions"
	}
	if cfg.Model == "" {
		cfg.Model = DefaultLLMModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultLLMTimeout
	}

	return &LLMService{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		completionsURL: cfg.CompletionsURL,
		apiKey:         cfg.APIKey,
		provider:       cfg.Provider,
		model:          cfg.Model,
		org:            cfg.Org,
	}, nil
}

// Chat conducts a single chat-completion exchange.
func (s *LLMService) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	chatMessages := make([]chatCompletionMsg, len(messages))
	for i, msg := range messages {
		chatMessages[i] = chatCompletionMsg{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}

	// Always sent, so a configured temperature of 0 reaches the API
	// instead of falling back to the provider default.
	reqBody := chatCompletionRequest{
		Model:       s.model,
		Messages:    chatMessages,
		Temperature: opts.Temperature,
	}
	if opts.JSONResponse {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.completionsURL, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.provider == ProviderAzure {
		req.Header.Set("api-key", s.apiKey)
	} else {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}
	if s.org != "" {
		req.Header.Set("OpenAI-Organization", s.org)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var chatResp chatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if chatResp.Error != nil {
		return "", fmt.Errorf("openai error: %s", chatResp.Error.Message)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai error (status %d): %s", resp.StatusCode, string(body))
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("openai: no response choices returned")
	}

	return chatResp.Choices[0].Message.Content, nil
}

// ModelName returns the model in use.
func (s *LLMService) ModelName() string {
	return s.model
}

// Ping validates the service is reachable with a minimal completion call.
func (s *LLMService) Ping(ctx context.Context) error {
	_, err := s.Chat(ctx, []driven.ChatMessage{
		{Role: "user", Content: "ping"},
	}, driven.ChatOptions{})
	if err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close releases resources. The HTTP client has nothing to release.
func (s *LLMService) Close() error {
	return nil
}
