package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/jobradar-cli/internal/core/ports/driven"
)

func newTestService(t *testing.T, cfg LLMConfig, handler http.HandlerFunc) *LLMService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg.CompletionsURL = server.URL
	if cfg.APIKey == "" {
		cfg.APIKey = "test-key"
	}
	svc, err := NewLLMService(cfg)
	require.NoError(t, err)
	return svc
}

func completionReply(content string) string {
	return `{"choices": [{"message": {"content": ` + mustJSON(content) + `}, "finish_reason": "stop"}]}`
}

func mustJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestNewLLMService_RequiresAPIKey(t *testing.T) {
	_, err := NewLLMService(LLMConfig{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")
}

func TestNewLLMService_Defaults(t *testing.T) {
	svc, err := NewLLMService(LLMConfig{APIKey: "k"})

	require.NoError(t, err)
	assert.Equal(t, DefaultLLMModel, svc.ModelName())
	assert.Equal(t, DefaultBaseURL+"/chat/completions", svc.completionsURL)
}

func TestChat_SendsMessagesAndBearerAuth(t *testing.T) {
	var gotReq chatCompletionRequest
	var gotAuth, gotOrg string
	svc := newTestService(t, LLMConfig{Model: "gpt-4o", Org: "org-42"}, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotOrg = r.Header.Get("OpenAI-Organization")
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotReq))
		_, _ = w.Write([]byte(completionReply("hello")))
	})

	content, err := svc.Chat(context.Background(), []driven.ChatMessage{
		{Role: "system", Content: "You review job postings."},
		{Role: "user", Content: "Evaluate this posting."},
	}, driven.ChatOptions{Temperature: 0.2})

	require.NoError(t, err)
	assert.Equal(t, "hello", content)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "org-42", gotOrg)
	assert.Equal(t, "gpt-4o", gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, 0.2, gotReq.Temperature)
	assert.Nil(t, gotReq.ResponseFormat)
}

func TestChat_SendsZeroTemperature(t *testing.T) {
	var gotBody []byte
	svc := newTestService(t, LLMConfig{Model: "gpt-4o"}, func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(completionReply("ok")))
	})

	_, err := svc.Chat(context.Background(), []driven.ChatMessage{
		{Role: "user", Content: "hi"},
	}, driven.ChatOptions{Temperature: 0})

	require.NoError(t, err)
	assert.Contains(t, string(gotBody), `"temperature":0`)
}

func TestChat_JSONResponseFormat(t *testing.T) {
	var gotReq chatCompletionRequest
	svc := newTestService(t, LLMConfig{}, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotReq))
		_, _ = w.Write([]byte(completionReply(`{"fit_score": 7}`)))
	})

	_, err := svc.Chat(context.Background(), []driven.ChatMessage{
		{Role: "user", Content: "json please"},
	}, driven.ChatOptions{JSONResponse: true})

	require.NoError(t, err)
	require.NotNil(t, gotReq.ResponseFormat)
	assert.Equal(t, "json_object", gotReq.ResponseFormat.Type)
}

func TestChat_AzureUsesAPIKeyHeader(t *testing.T) {
	var gotAPIKey, gotAuth string
	svc := newTestService(t, LLMConfig{Provider: ProviderAzure}, func(w http.ResponseWriter, r *http.Request) {
		gotAPIKey = r.Header.Get("api-key")
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(completionReply("ok")))
	})

	_, err := svc.Chat(context.Background(), []driven.ChatMessage{{Role: "user", Content: "hi"}}, driven.ChatOptions{})

	require.NoError(t, err)
	assert.Equal(t, "test-key", gotAPIKey)
	assert.Empty(t, gotAuth)
}

func TestChat_APIErrorPayload(t *testing.T) {
	svc := newTestService(t, LLMConfig{}, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "Incorrect API key provided", "type": "invalid_request_error"}}`))
	})

	_, err := svc.Chat(context.Background(), []driven.ChatMessage{{Role: "user", Content: "hi"}}, driven.ChatOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Incorrect API key provided")
}

func TestChat_NoChoices(t *testing.T) {
	svc := newTestService(t, LLMConfig{}, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	})

	_, err := svc.Chat(context.Background(), []driven.ChatMessage{{Role: "user", Content: "hi"}}, driven.ChatOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no response choices")
}

func TestPing(t *testing.T) {
	svc := newTestService(t, LLMConfig{}, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(completionReply("pong")))
	})

	require.NoError(t, svc.Ping(context.Background()))
	require.NoError(t, svc.Close())
}
