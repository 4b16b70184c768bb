package domain

import "time"

// BackendType identifies the row store backend.
type BackendType string

// Available backends.
const (
	// BackendSheets persists rows to a Google Sheets worksheet.
	BackendSheets BackendType = "sheets"

	// BackendSQLite persists rows to a local SQLite database.
	BackendSQLite BackendType = "sqlite"
)

// IsValid returns true if the backend type is recognised.
func (b BackendType) IsValid() bool {
	switch b {
	case BackendSheets, BackendSQLite:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b BackendType) String() string {
	return string(b)
}

// ProviderSettings configures one job-search provider.
type ProviderSettings struct {
	// Enabled toggles the provider without removing its configuration.
	Enabled bool

	// APIKey authenticates against the provider API.
	APIKey string

	// Label is the human-readable source name stamped on postings.
	Label string

	// Limit is the per-call result count. Required for enabled providers.
	Limit int

	// Timeout bounds a single provider request.
	Timeout time.Duration
}

// AISettings configures the enrichment LLM.
type AISettings struct {
	// Enabled toggles enrichment. When false, Enrich is a no-op.
	Enabled bool

	// Provider selects the API dialect ("openai" or "azure"; both speak
	// the chat-completions protocol, they differ in the auth header).
	Provider string

	// Model is the chat model name.
	Model string

	// APIKey authenticates against the AI provider.
	APIKey string

	// Org is an optional OpenAI organisation ID.
	Org string

	// BaseURL is the API base URL (default https://api.openai.com/v1).
	BaseURL string

	// CompletionsURL overrides the full chat-completions endpoint.
	// When empty, BaseURL + "/chat/completions" is used.
	CompletionsURL string

	// Temperature controls sampling randomness.
	Temperature float64

	// Timeout bounds a single completion request.
	Timeout time.Duration

	// MaxRetries is the total attempt count for one enrichment call.
	MaxRetries int

	// RetryBackoff is the fixed sleep between attempts (not exponential).
	RetryBackoff time.Duration

	// ResponseFormatJSON requests strict-JSON output from the model.
	ResponseFormatJSON bool

	// AlertsEnabled toggles high-score alert notifications.
	AlertsEnabled bool

	// AlertThreshold is the minimum ai_fit_score that triggers an alert.
	AlertThreshold float64
}

// IsConfigured returns true if the enrichment service can be constructed.
func (s AISettings) IsConfigured() bool {
	return s.Enabled && s.APIKey != ""
}

// SheetSettings configures the Google Sheets backend.
type SheetSettings struct {
	// SpreadsheetID is the target spreadsheet.
	SpreadsheetID string

	// Tab is the worksheet name within the spreadsheet.
	Tab string

	// CredentialsFile is the path to a service-account JSON key.
	CredentialsFile string
}

// AppSettings is the full application configuration.
type AppSettings struct {
	// Roles are the job titles searched on each run.
	Roles []string

	// Locations are the locations searched for every role.
	Locations []string

	// MaxResultsPerRole caps newly created rows per role per run.
	MaxResultsPerRole int

	// Providers maps provider registry ID to its settings.
	Providers map[string]ProviderSettings

	// Backend selects the row store.
	Backend BackendType

	// Sheet configures the Google Sheets backend.
	Sheet SheetSettings

	// DataDir holds the SQLite backend database. Empty means the default
	// config directory.
	DataDir string

	// AI configures enrichment.
	AI AISettings
}

// Default configuration values.
const (
	DefaultProviderLimit     = 10
	DefaultProviderTimeout   = 10 * time.Second
	DefaultMaxResultsPerRole = 8
	DefaultAIModel           = "gpt-4o-mini"
	DefaultAIBaseURL         = "https://api.openai.com/v1"
	DefaultAITemperature     = 0.2
	DefaultAITimeout         = 30 * time.Second
	DefaultAIMaxRetries      = 3
	DefaultAIRetryBackoff    = 2 * time.Second
	DefaultSheetTab          = "jobs"
)

// DefaultAppSettings returns settings with all defaults applied.
func DefaultAppSettings() *AppSettings {
	return &AppSettings{
		Locations:         []string{"Canada"},
		MaxResultsPerRole: DefaultMaxResultsPerRole,
		Providers: map[string]ProviderSettings{
			"serpapi_linkedin": {
				Enabled: true,
				Label:   "LinkedIn (SerpAPI)",
				Limit:   DefaultProviderLimit,
				Timeout: DefaultProviderTimeout,
			},
			"serpapi_indeed": {
				Enabled: true,
				Label:   "Indeed (SerpAPI)",
				Limit:   DefaultProviderLimit,
				Timeout: DefaultProviderTimeout,
			},
		},
		Backend: BackendSheets,
		Sheet: SheetSettings{
			Tab:             DefaultSheetTab,
			CredentialsFile: "service_account.json",
		},
		AI: AISettings{
			Provider:           "openai",
			Model:              DefaultAIModel,
			BaseURL:            DefaultAIBaseURL,
			Temperature:        DefaultAITemperature,
			Timeout:            DefaultAITimeout,
			MaxRetries:         DefaultAIMaxRetries,
			RetryBackoff:       DefaultAIRetryBackoff,
			ResponseFormatJSON: true,
		},
	}
}
