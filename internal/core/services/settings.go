package services

import (
	"fmt"
	"time"

	"github.com/custodia-labs/jobradar-cli/internal/core/domain"
	"github.com/custodia-labs/jobradar-cli/internal/core/ports/driven"
	"github.com/custodia-labs/jobradar-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyRoles             = "roles"
	keyLocations         = "locations"
	keyMaxResultsPerRole = "max_results_per_role"
	keyBackend           = "backend"
	keyDataDir           = "data_dir"
	keySheetID           = "sheet.spreadsheet_id"
	keySheetTab          = "sheet.tab"
	keySheetCredentials  = "sheet.credentials_file"
	keyAIEnabled         = "ai.enabled"
	keyAIProvider        = "ai.provider"
	keyAIModel           = "ai.model"
	keyAIAPIKey          = "ai.api_key"
	keyAIOrg             = "ai.org"
	keyAIBaseURL         = "ai.base_url"
	keyAICompletionsURL  = "ai.completions_url"
	keyAITemperature     = "ai.temperature"
	keyAITimeout         = "ai.timeout_seconds"
	keyAIMaxRetries      = "ai.max_retries"
	keyAIRetryBackoff    = "ai.retry_backoff_seconds"
	keyAIResponseJSON    = "ai.response_format_json"
	keyAIAlertsEnabled   = "ai.alerts_enabled"
	keyAIAlertThreshold  = "ai.alert_threshold"
)

// Per-provider config key suffixes under "provider.<id>.".
const (
	providerKeyEnabled = "enabled"
	providerKeyAPIKey  = "api_key"
	providerKeyLabel   = "label"
	providerKeyLimit   = "limit"
	providerKeyTimeout = "timeout_seconds"
)

// SettingsService maps the persisted configuration onto typed application
// settings, applying defaults for anything unset.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Roles:             s.getStringSlice(keyRoles, defaults.Roles),
		Locations:         s.getStringSlice(keyLocations, defaults.Locations),
		MaxResultsPerRole: s.getInt(keyMaxResultsPerRole, defaults.MaxResultsPerRole),
		Backend:           s.getBackend(defaults.Backend),
		DataDir:           s.configStore.GetString(keyDataDir),
		Sheet: domain.SheetSettings{
			SpreadsheetID:   s.configStore.GetString(keySheetID),
			Tab:             s.getString(keySheetTab, defaults.Sheet.Tab),
			CredentialsFile: s.getString(keySheetCredentials, defaults.Sheet.CredentialsFile),
		},
		Providers: make(map[string]domain.ProviderSettings, len(defaults.Providers)),
		AI: domain.AISettings{
			Enabled:            s.getBool(keyAIEnabled, defaults.AI.Enabled),
			Provider:           s.getString(keyAIProvider, defaults.AI.Provider),
			Model:              s.getString(keyAIModel, defaults.AI.Model),
			APIKey:             s.configStore.GetString(keyAIAPIKey),
			Org:                s.configStore.GetString(keyAIOrg),
			BaseURL:            s.getString(keyAIBaseURL, defaults.AI.BaseURL),
			CompletionsURL:     s.configStore.GetString(keyAICompletionsURL),
			Temperature:        s.getFloat(keyAITemperature, defaults.AI.Temperature),
			Timeout:            s.getSeconds(keyAITimeout, defaults.AI.Timeout),
			MaxRetries:         s.getInt(keyAIMaxRetries, defaults.AI.MaxRetries),
			RetryBackoff:       s.getSeconds(keyAIRetryBackoff, defaults.AI.RetryBackoff),
			ResponseFormatJSON: s.getBool(keyAIResponseJSON, defaults.AI.ResponseFormatJSON),
			AlertsEnabled:      s.getBool(keyAIAlertsEnabled, defaults.AI.AlertsEnabled),
			AlertThreshold:     s.getFloat(keyAIAlertThreshold, defaults.AI.AlertThreshold),
		},
	}

	for id, def := range defaults.Providers {
		settings.Providers[id] = s.getProviderSettings(id, def)
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := map[string]any{
		keyRoles:             settings.Roles,
		keyLocations:         settings.Locations,
		keyMaxResultsPerRole: settings.MaxResultsPerRole,
		keyBackend:           settings.Backend.String(),
		keyDataDir:           settings.DataDir,
		keySheetID:           settings.Sheet.SpreadsheetID,
		keySheetTab:          settings.Sheet.Tab,
		keySheetCredentials:  settings.Sheet.CredentialsFile,
		keyAIEnabled:         settings.AI.Enabled,
		keyAIProvider:        settings.AI.Provider,
		keyAIModel:           settings.AI.Model,
		keyAIAPIKey:          settings.AI.APIKey,
		keyAIOrg:             settings.AI.Org,
		keyAIBaseURL:         settings.AI.BaseURL,
		keyAICompletionsURL:  settings.AI.CompletionsURL,
		keyAITemperature:     settings.AI.Temperature,
		keyAITimeout:         int(settings.AI.Timeout / time.Second),
		keyAIMaxRetries:      settings.AI.MaxRetries,
		keyAIRetryBackoff:    int(settings.AI.RetryBackoff / time.Second),
		keyAIResponseJSON:    settings.AI.ResponseFormatJSON,
		keyAIAlertsEnabled:   settings.AI.AlertsEnabled,
		keyAIAlertThreshold:  settings.AI.AlertThreshold,
	}

	for id, p := range settings.Providers {
		values[providerKey(id, providerKeyEnabled)] = p.Enabled
		values[providerKey(id, providerKeyAPIKey)] = p.APIKey
		values[providerKey(id, providerKeyLabel)] = p.Label
		values[providerKey(id, providerKeyLimit)] = p.Limit
		values[providerKey(id, providerKeyTimeout)] = int(p.Timeout / time.Second)
	}

	for key, value := range values {
		if err := s.configStore.Set(key, value); err != nil {
			return fmt.Errorf("save setting %s: %w", key, err)
		}
	}
	return s.configStore.Save()
}

func (s *SettingsService) getProviderSettings(id string, def domain.ProviderSettings) domain.ProviderSettings {
	return domain.ProviderSettings{
		Enabled: s.getBool(providerKey(id, providerKeyEnabled), def.Enabled),
		APIKey:  s.configStore.GetString(providerKey(id, providerKeyAPIKey)),
		Label:   s.getString(providerKey(id, providerKeyLabel), def.Label),
		Limit:   s.getInt(providerKey(id, providerKeyLimit), def.Limit),
		Timeout: s.getSeconds(providerKey(id, providerKeyTimeout), def.Timeout),
	}
}

func providerKey(id, suffix string) string {
	return "provider." + id + "." + suffix
}

func (s *SettingsService) getString(key, def string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return def
}

func (s *SettingsService) getStringSlice(key string, def []string) []string {
	if v := s.configStore.GetStringSlice(key); v != nil {
		return v
	}
	return def
}

func (s *SettingsService) getInt(key string, def int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return def
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, def float64) float64 {
	if _, ok := s.configStore.Get(key); !ok {
		return def
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, def bool) bool {
	if _, ok := s.configStore.Get(key); !ok {
		return def
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getSeconds(key string, def time.Duration) time.Duration {
	if _, ok := s.configStore.Get(key); !ok {
		return def
	}
	return time.Duration(s.configStore.GetInt(key)) * time.Second
}

func (s *SettingsService) getBackend(def domain.BackendType) domain.BackendType {
	b := domain.BackendType(s.configStore.GetString(keyBackend))
	if !b.IsValid() {
		return def
	}
	return b
}
