package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/jobradar-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/jobradar-cli/internal/core/domain"
)

func TestSettingsService_DefaultsWhenUnset(t *testing.T) {
	svc := NewSettingsService(memory.NewConfigStore())

	settings, err := svc.Get()

	require.NoError(t, err)
	assert.Empty(t, settings.Roles)
	assert.Equal(t, []string{"Canada"}, settings.Locations)
	assert.Equal(t, domain.DefaultMaxResultsPerRole, settings.MaxResultsPerRole)
	assert.Equal(t, domain.BackendSheets, settings.Backend)
	assert.Equal(t, domain.DefaultSheetTab, settings.Sheet.Tab)
	assert.False(t, settings.AI.Enabled)
	assert.Equal(t, domain.DefaultAIModel, settings.AI.Model)
	assert.Equal(t, domain.DefaultAITemperature, settings.AI.Temperature)
	assert.Equal(t, domain.DefaultAIMaxRetries, settings.AI.MaxRetries)
	assert.True(t, settings.AI.ResponseFormatJSON)

	linkedin, ok := settings.Providers["serpapi_linkedin"]
	require.True(t, ok)
	assert.True(t, linkedin.Enabled)
	assert.Equal(t, domain.DefaultProviderLimit, linkedin.Limit)
	assert.Equal(t, "LinkedIn (SerpAPI)", linkedin.Label)
}

func TestSettingsService_StoredValuesOverrideDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	require.NoError(t, store.Set("roles", []string{"Backend Engineer"}))
	require.NoError(t, store.Set("locations", []string{"Berlin", "Remote"}))
	require.NoError(t, store.Set("max_results_per_role", 3))
	require.NoError(t, store.Set("backend", "sqlite"))
	require.NoError(t, store.Set("ai.enabled", true))
	require.NoError(t, store.Set("ai.model", "gpt-4o"))
	require.NoError(t, store.Set("ai.temperature", 0.7))
	require.NoError(t, store.Set("ai.timeout_seconds", 12))
	require.NoError(t, store.Set("provider.serpapi_linkedin.enabled", false))
	require.NoError(t, store.Set("provider.serpapi_indeed.limit", 25))
	svc := NewSettingsService(store)

	settings, err := svc.Get()

	require.NoError(t, err)
	assert.Equal(t, []string{"Backend Engineer"}, settings.Roles)
	assert.Equal(t, []string{"Berlin", "Remote"}, settings.Locations)
	assert.Equal(t, 3, settings.MaxResultsPerRole)
	assert.Equal(t, domain.BackendSQLite, settings.Backend)
	assert.True(t, settings.AI.Enabled)
	assert.Equal(t, "gpt-4o", settings.AI.Model)
	assert.Equal(t, 0.7, settings.AI.Temperature)
	assert.Equal(t, 12*time.Second, settings.AI.Timeout)
	assert.False(t, settings.Providers["serpapi_linkedin"].Enabled)
	assert.Equal(t, 25, settings.Providers["serpapi_indeed"].Limit)
}

func TestSettingsService_InvalidBackendFallsBackToDefault(t *testing.T) {
	store := memory.NewConfigStore()
	require.NoError(t, store.Set("backend", "csv"))
	svc := NewSettingsService(store)

	settings, err := svc.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.BackendSheets, settings.Backend)
}

func TestSettingsService_SaveRoundTrip(t *testing.T) {
	store := memory.NewConfigStore()
	svc := NewSettingsService(store)

	original, err := svc.Get()
	require.NoError(t, err)
	original.Roles = []string{"Platform Engineer", "SRE"}
	original.MaxResultsPerRole = 5
	original.Backend = domain.BackendSQLite
	original.Sheet.SpreadsheetID = "sheet-123"
	original.AI.Enabled = true
	original.AI.APIKey = "sk-test"
	original.AI.Timeout = 45 * time.Second
	original.AI.AlertsEnabled = true
	original.AI.AlertThreshold = 8.5
	p := original.Providers["serpapi_linkedin"]
	p.APIKey = "serp-key"
	p.Limit = 7
	original.Providers["serpapi_linkedin"] = p

	require.NoError(t, svc.Save(original))

	reloaded, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, []string{"Platform Engineer", "SRE"}, reloaded.Roles)
	assert.Equal(t, 5, reloaded.MaxResultsPerRole)
	assert.Equal(t, domain.BackendSQLite, reloaded.Backend)
	assert.Equal(t, "sheet-123", reloaded.Sheet.SpreadsheetID)
	assert.True(t, reloaded.AI.Enabled)
	assert.Equal(t, "sk-test", reloaded.AI.APIKey)
	assert.Equal(t, 45*time.Second, reloaded.AI.Timeout)
	assert.True(t, reloaded.AI.AlertsEnabled)
	assert.Equal(t, 8.5, reloaded.AI.AlertThreshold)
	assert.Equal(t, "serp-key", reloaded.Providers["serpapi_linkedin"].APIKey)
	assert.Equal(t, 7, reloaded.Providers["serpapi_linkedin"].Limit)
}
