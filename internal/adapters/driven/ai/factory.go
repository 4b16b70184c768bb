package ai

import (
	"context"
	"fmt"
	"time"

	openaillm "github.com/custodia-labs/jobradar-cli/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/jobradar-cli/internal/core/domain"
	"github.com/custodia-labs/jobradar-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateLLMService builds the chat-completion service for the configured
// AI provider. Returns nil (no error) when enrichment is not configured.
func CreateLLMService(settings domain.AISettings) (driven.LLMService, error) {
	if !settings.IsConfigured() {
		return nil, nil
	}

	svc, err := openaillm.NewLLMService(openaillm.LLMConfig{
		APIKey:         settings.APIKey,
		Provider:       settings.Provider,
		BaseURL:        settings.BaseURL,
		CompletionsURL: settings.CompletionsURL,
		Model:          settings.Model,
		Org:            settings.Org,
		Timeout:        settings.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}
	return svc, nil
}

// CreateAndValidateLLMService creates the LLM service and validates
// connectivity, failing fast on bad credentials before the first run.
func CreateAndValidateLLMService(settings domain.AISettings) (driven.LLMService, error) {
	svc, err := CreateLLMService(settings)
	if err != nil || svc == nil {
		return svc, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w)", domain.ErrLLMUnavailable, err)
	}
	return svc, nil
}

// CreateEnricher builds the enrichment adapter from settings. When
// enrichment is disabled or unconfigured the returned enricher reports
// Enabled() == false and Enrich is a no-op.
func CreateEnricher(settings domain.AISettings, prompts driven.PromptStore) (*Enricher, error) {
	if settings.Enabled && settings.APIKey == "" {
		return nil, fmt.Errorf("%w: enrichment is enabled but ai.api_key is not set", domain.ErrInvalidConfig)
	}

	llm, err := CreateLLMService(settings)
	if err != nil {
		return nil, err
	}
	return NewEnricher(llm, prompts, settings), nil
}
