package cli

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/jobradar-cli/internal/core/domain"
)

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{"empty key", "", "****"},
		{"short key", "abc123", "****"},
		{"exactly 8 chars", "12345678", "****"},
		{"long key", "sk-1234567890abcdef", "sk-1...cdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, maskAPIKey(tt.key))
		})
	}
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxVal     int
		defaultVal int
		expected   int
	}{
		{"empty uses default", "", 4, 2, 2},
		{"valid choice", "3", 4, 1, 3},
		{"out of range high", "5", 4, 1, 1},
		{"out of range low", "0", 4, 2, 2},
		{"not a number", "abc", 4, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseChoice(tt.input, tt.maxVal, tt.defaultVal))
		})
	}
}

func TestParseYesNo(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		defaultVal bool
		expected   bool
	}{
		{"yes", "y", false, true},
		{"yes word", "YES", false, true},
		{"no", "n", true, false},
		{"no word", "No", true, false},
		{"empty keeps default", "", true, true},
		{"garbage keeps default", "maybe", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseYesNo(tt.input, tt.defaultVal))
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList("a, b"))
	assert.Equal(t, []string{"Go Developer"}, splitList("  Go Developer  "))
	assert.Empty(t, splitList(" , ,"))
}

func wizardAISettings(serverURL string) domain.AISettings {
	settings := domain.DefaultAppSettings().AI
	settings.Enabled = true
	settings.APIKey = "sk-test"
	settings.CompletionsURL = serverURL
	return settings
}

func TestValidateAICredentials_ReachableProvider(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices": [{"message": {"content": "pong"}}]}`))
	}))
	t.Cleanup(server.Close)

	err := validateAICredentials(wizardAISettings(server.URL))

	assert.NoError(t, err)
}

func TestValidateAICredentials_BadKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": {"message": "invalid api key"}}`, http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	err := validateAICredentials(wizardAISettings(server.URL))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}

func TestValidateAICredentials_UnconfiguredIsNoop(t *testing.T) {
	assert.NoError(t, validateAICredentials(domain.DefaultAppSettings().AI))
}

func TestSettingsShow_MasksAPIKeys(t *testing.T) {
	settings := domain.DefaultAppSettings()
	linkedin := settings.Providers["serpapi_linkedin"]
	linkedin.APIKey = "serp-key-1234567890"
	settings.Providers["serpapi_linkedin"] = linkedin
	settings.AI.Enabled = true
	settings.AI.APIKey = "sk-abcdef1234567890"
	withStubSettings(t, settings)

	output := executeCommand(t, "settings", "show")

	assert.NotContains(t, output, "serp-key-1234567890")
	assert.NotContains(t, output, "sk-abcdef1234567890")
	assert.Contains(t, output, "serp...7890")
	assert.Contains(t, output, "sk-a...7890")
}

func TestSettingsShow_SQLiteBackend(t *testing.T) {
	settings := domain.DefaultAppSettings()
	settings.Backend = domain.BackendSQLite
	withStubSettings(t, settings)

	output := executeCommand(t, "settings", "show")

	assert.Contains(t, output, "Backend: sqlite")
	assert.Contains(t, output, "Data directory")
}

func TestSettingsShow_EnrichmentDisabled(t *testing.T) {
	withStubSettings(t, domain.DefaultAppSettings())

	output := executeCommand(t, "settings", "show")

	assert.Contains(t, output, "Enrichment: disabled")
}
