package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/jobradar-cli/internal/core/domain"
)

func TestRunCmd_Use(t *testing.T) {
	assert.Equal(t, "run", runCmd.Use)
}

func TestRunCmd_Flags(t *testing.T) {
	assert.NotNil(t, runCmd.Flags().Lookup("non-interactive"))
	assert.NotNil(t, runCmd.Flags().Lookup("every"))
	assert.NotNil(t, runCmd.Flags().Lookup("locations"))
	assert.NotNil(t, runCmd.Flags().Lookup("date-posted"))
	assert.NotNil(t, runCmd.Flags().Lookup("job-type"))
	assert.NotNil(t, runCmd.Flags().Lookup("keywords"))
}

func TestParseDatePosted(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected domain.DatePosted
		wantErr  bool
	}{
		{"empty means any", "", domain.DatePostedAny, false},
		{"any", "any", domain.DatePostedAny, false},
		{"past day", "past_24_hours", domain.DatePostedPastDay, false},
		{"past week", "past_week", domain.DatePostedPastWeek, false},
		{"past month", "past_month", domain.DatePostedPastMonth, false},
		{"unknown", "yesterday", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDatePosted(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseJobType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected domain.JobType
		wantErr  bool
	}{
		{"empty means any", "", domain.JobTypeAny, false},
		{"full time", "full-time", domain.JobTypeFullTime, false},
		{"contract", "contract", domain.JobTypeContract, false},
		{"unknown", "freelance", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseJobType(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestBuildProviders_NoKeyRegistersNothing(t *testing.T) {
	registry, err := buildProviders(domain.DefaultAppSettings())

	require.NoError(t, err)
	assert.Empty(t, registry.IDs())
}

func TestBuildProviders_RegistersSerpAPIProviders(t *testing.T) {
	settings := domain.DefaultAppSettings()
	linkedin := settings.Providers["serpapi_linkedin"]
	linkedin.APIKey = "serp-key"
	settings.Providers["serpapi_linkedin"] = linkedin

	registry, err := buildProviders(settings)

	require.NoError(t, err)
	assert.Equal(t, []string{"serpapi_linkedin", "serpapi_indeed"}, registry.IDs())
}

func TestSerpAPICredentials_FallsBackToIndeed(t *testing.T) {
	settings := domain.DefaultAppSettings()
	indeed := settings.Providers["serpapi_indeed"]
	indeed.APIKey = "indeed-key"
	settings.Providers["serpapi_indeed"] = indeed

	key, timeout := serpAPICredentials(settings)

	assert.Equal(t, "indeed-key", key)
	assert.Equal(t, domain.DefaultProviderTimeout, timeout)
}
