// Package ai provides the posting enrichment adapter: it prompts a
// chat-completion LLM about one job posting and normalises the reply into
// flat enrichment fields.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/jobradar-cli/internal/core/domain"
	"github.com/custodia-labs/jobradar-cli/internal/core/ports/driven"
	"github.com/custodia-labs/jobradar-cli/internal/core/ports/driving"
	"github.com/custodia-labs/jobradar-cli/internal/logger"
)

// Ensure Enricher implements the interface.
var _ driving.Enricher = (*Enricher)(nil)

// extraFieldPrefix namespaces flattened additional_context keys.
const extraFieldPrefix = "ai_extra_"

// Enricher asks the LLM to evaluate a posting and returns normalised
// enrichment fields. Retries are bounded and use a fixed backoff, not an
// exponential one.
type Enricher struct {
	llm      driven.LLMService
	prompts  driven.PromptStore
	settings domain.AISettings

	// sleep is replaced in tests to avoid real backoff waits.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewEnricher creates an enrichment adapter over the given LLM service and
// prompt store.
func NewEnricher(llm driven.LLMService, prompts driven.PromptStore, settings domain.AISettings) *Enricher {
	return &Enricher{
		llm:      llm,
		prompts:  prompts,
		settings: settings,
		sleep:    sleepCtx,
	}
}

// Enabled reports whether enrichment is active.
func (e *Enricher) Enabled() bool {
	return e.settings.Enabled && e.llm != nil
}

// Enrich returns enrichment fields for the posting. When enrichment is
// disabled it returns an empty map and no error. Once all attempts are
// exhausted it returns a single error wrapping domain.ErrEnrichmentFailed
// and carrying the last attempt's failure text.
func (e *Enricher) Enrich(ctx context.Context, posting domain.Posting) (map[string]string, error) {
	if !e.Enabled() {
		return map[string]string{}, nil
	}

	messages, err := e.buildMessages(posting)
	if err != nil {
		return nil, err
	}

	opts := driven.ChatOptions{
		Temperature:  e.settings.Temperature,
		JSONResponse: e.settings.ResponseFormatJSON,
	}

	maxAttempts := e.settings.MaxRetries
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		fields, err := e.attempt(ctx, messages, opts)
		if err == nil {
			return fields, nil
		}
		lastErr = err
		logger.Warn("enrichment attempt %d/%d failed: %v", attempt, maxAttempts, err)

		if attempt < maxAttempts {
			if err := e.sleep(ctx, e.settings.RetryBackoff); err != nil {
				return nil, fmt.Errorf("%w: %v", domain.ErrEnrichmentFailed, err)
			}
		}
	}

	return nil, fmt.Errorf("%w: %v", domain.ErrEnrichmentFailed, lastErr)
}

// attempt makes one completion call and parses the reply.
func (e *Enricher) attempt(
	ctx context.Context,
	messages []driven.ChatMessage,
	opts driven.ChatOptions,
) (map[string]string, error) {
	content, err := e.llm.Chat(ctx, messages, opts)
	if err != nil {
		return nil, err
	}

	parsed, err := parseContent(content)
	if err != nil {
		return nil, err
	}
	return normalizeResult(parsed), nil
}

// buildMessages substitutes posting fields into the configured templates.
// Posting-level fields win over nested metadata fields; the snippet stands
// in for a missing description. An unset user template is a hard failure.
func (e *Enricher) buildMessages(posting domain.Posting) ([]driven.ChatMessage, error) {
	userTemplate := strings.TrimSpace(e.loadPrompt(driven.PromptUser))
	if userTemplate == "" {
		return nil, fmt.Errorf("%w: user prompt template is not configured", domain.ErrEnrichmentFailed)
	}

	title := firstNonEmpty(posting.Title, posting.MetadataValue("title"))
	company := posting.MetadataValue("company")
	location := posting.MetadataValue("location")
	description := firstNonEmpty(posting.MetadataValue("description"), posting.MetadataValue("snippet"))
	link := firstNonEmpty(posting.Link, posting.MetadataValue("link"))

	replacer := strings.NewReplacer(
		"{candidate_profile}", strings.TrimSpace(e.loadPrompt(driven.PromptCandidateProfile)),
		"{job_title}", strings.TrimSpace(title),
		"{company}", strings.TrimSpace(company),
		"{location}", strings.TrimSpace(location),
		"{description}", strings.TrimSpace(description),
		"{link}", strings.TrimSpace(link),
	)

	var messages []driven.ChatMessage
	if system := strings.TrimSpace(e.loadPrompt(driven.PromptSystem)); system != "" {
		messages = append(messages, driven.ChatMessage{Role: "system", Content: system})
	}
	messages = append(messages, driven.ChatMessage{Role: "user", Content: replacer.Replace(userTemplate)})
	return messages, nil
}

// loadPrompt returns the named template, or empty on any load failure.
// Only the user template is mandatory; its absence is handled by the
// caller.
func (e *Enricher) loadPrompt(name string) string {
	if e.prompts == nil {
		return ""
	}
	prompt, err := e.prompts.Load(name)
	if err != nil {
		return ""
	}
	return prompt
}

// parseContent extracts the JSON object from a model reply. Replies that
// wrap the object in code fences are unwrapped: fenced segments are
// scanned for one that, after stripping an optional leading "json" tag,
// reads as an object. A blank reply is a parse error, never an empty
// result.
func parseContent(content string) (map[string]any, error) {
	text := strings.TrimSpace(content)
	if text == "" {
		return nil, fmt.Errorf("empty response from AI provider")
	}

	if strings.Contains(text, "```") {
		for _, segment := range strings.Split(text, "```") {
			segment = strings.TrimSpace(segment)
			if segment == "" {
				continue
			}
			segment = strings.TrimSpace(strings.TrimPrefix(segment, "json"))
			if strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
				text = segment
				break
			}
		}
	}

	decoder := json.NewDecoder(strings.NewReader(text))
	decoder.UseNumber()
	var payload map[string]any
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("AI response is not valid JSON: %w", err)
	}
	return payload, nil
}

// normalizeResult maps the accepted key spellings onto the canonical
// enrichment fields and flattens additional_context. Missing values
// normalise to empty string, not to an absent field.
func normalizeResult(data map[string]any) map[string]string {
	result := map[string]string{
		"ai_fit_score":      firstPresent(data, "fit_score", "score", "fitScore"),
		"ai_summary":        firstPresent(data, "summary", "highlights"),
		"ai_outreach_angle": firstPresent(data, "outreach_angle", "outreach"),
	}

	if additional, ok := data["additional_context"].(map[string]any); ok {
		for key, value := range additional {
			normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), " ", "_")
			if normalized == "" {
				continue
			}
			result[extraFieldPrefix+normalized] = stringify(value)
		}
	}
	return result
}

// firstPresent returns the first key whose value stringifies non-empty.
func firstPresent(data map[string]any, keys ...string) string {
	for _, key := range keys {
		if s := stringify(data[key]); s != "" {
			return s
		}
	}
	return ""
}

// stringify renders a decoded JSON value as a cell-ready string. Numbers
// keep their literal form from the payload.
func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(encoded)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// sleepCtx sleeps for d or until the context is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
