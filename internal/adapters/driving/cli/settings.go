package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/jobradar-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/jobradar-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure roles, locations, providers, the storage backend,
and AI enrichment.

Use 'settings wizard' to configure everything step by step.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Roles: %s\n", joinOrNone(settings.Roles))
	cmd.Printf("  Locations: %s\n", joinOrNone(settings.Locations))
	cmd.Printf("  Max new rows per role: %d\n", settings.MaxResultsPerRole)
	cmd.Println()

	cmd.Println("[Providers]")
	ids := make([]string, 0, len(settings.Providers))
	for id := range settings.Providers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		ps := settings.Providers[id]
		status := "disabled"
		if ps.Enabled {
			status = "enabled"
		}
		cmd.Printf("  %s (%s): %s\n", ps.Label, id, status)
		if ps.APIKey != "" {
			cmd.Printf("    API Key: %s\n", maskAPIKey(ps.APIKey))
		} else {
			cmd.Printf("    API Key: (not set)\n")
		}
		cmd.Printf("    Limit: %d\n", ps.Limit)
	}
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", settings.Backend)
	switch settings.Backend {
	case domain.BackendSheets:
		cmd.Printf("  Spreadsheet ID: %s\n", orNotSet(settings.Sheet.SpreadsheetID))
		cmd.Printf("  Tab: %s\n", settings.Sheet.Tab)
		cmd.Printf("  Credentials file: %s\n", settings.Sheet.CredentialsFile)
	case domain.BackendSQLite:
		cmd.Printf("  Data directory: %s\n", orNotSet(settings.DataDir))
	}
	cmd.Println()

	cmd.Println("[AI]")
	if settings.AI.Enabled {
		cmd.Printf("  Enrichment: enabled\n")
		cmd.Printf("  Provider: %s\n", settings.AI.Provider)
		cmd.Printf("  Model: %s\n", settings.AI.Model)
		if settings.AI.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(settings.AI.APIKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
		status := "configured"
		if !settings.AI.IsConfigured() {
			status = "not configured"
		}
		cmd.Printf("  Status: %s\n", status)
		if settings.AI.AlertsEnabled {
			cmd.Printf("  Alerts: enabled (threshold %.1f)\n", settings.AI.AlertThreshold)
		} else {
			cmd.Printf("  Alerts: disabled\n")
		}
	} else {
		cmd.Printf("  Enrichment: disabled\n")
	}

	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	reader := bufio.NewReader(os.Stdin)

	cmd.Println("JobRadar Setup Wizard")
	cmd.Println("=====================")
	cmd.Println()

	// Roles and locations
	cmd.Printf("Roles to search, comma-separated [%s]: ", strings.Join(settings.Roles, ", "))
	if input := readLine(reader); input != "" {
		settings.Roles = splitList(input)
	}
	cmd.Printf("Locations, comma-separated [%s]: ", strings.Join(settings.Locations, ", "))
	if input := readLine(reader); input != "" {
		settings.Locations = splitList(input)
	}
	cmd.Printf("Max new rows per role per run [%d]: ", settings.MaxResultsPerRole)
	if input := readLine(reader); input != "" {
		if val, convErr := strconv.Atoi(input); convErr == nil && val > 0 {
			settings.MaxResultsPerRole = val
		}
	}
	cmd.Println()

	// Providers. Both SerpAPI providers share one key.
	cmd.Print("SerpAPI key (input hidden, Enter keeps current): ")
	serpKey := readPassword()
	cmd.Println()
	for _, id := range []string{"serpapi_linkedin", "serpapi_indeed"} {
		ps := settings.Providers[id]
		cmd.Printf("Enable %s? [%s]: ", ps.Label, yesNo(ps.Enabled))
		if input := readLine(reader); input != "" {
			ps.Enabled = parseYesNo(input, ps.Enabled)
		}
		if serpKey != "" {
			ps.APIKey = serpKey
		}
		settings.Providers[id] = ps
	}
	cmd.Println()

	// Backend
	backends := []domain.BackendType{domain.BackendSheets, domain.BackendSQLite}
	cmd.Println("Storage backend:")
	defaultBackend := 1
	for i, b := range backends {
		cmd.Printf("  %d. %s\n", i+1, b)
		if b == settings.Backend {
			defaultBackend = i + 1
		}
	}
	cmd.Printf("Choice [%d]: ", defaultBackend)
	settings.Backend = backends[parseChoice(readLine(reader), len(backends), defaultBackend)-1]

	if settings.Backend == domain.BackendSheets {
		cmd.Printf("Spreadsheet ID [%s]: ", settings.Sheet.SpreadsheetID)
		if input := readLine(reader); input != "" {
			settings.Sheet.SpreadsheetID = input
		}
		cmd.Printf("Worksheet tab [%s]: ", settings.Sheet.Tab)
		if input := readLine(reader); input != "" {
			settings.Sheet.Tab = input
		}
		cmd.Printf("Service account credentials file [%s]: ", settings.Sheet.CredentialsFile)
		if input := readLine(reader); input != "" {
			settings.Sheet.CredentialsFile = input
		}
	}
	cmd.Println()

	// AI enrichment
	cmd.Printf("Enable AI enrichment? [%s]: ", yesNo(settings.AI.Enabled))
	if input := readLine(reader); input != "" {
		settings.AI.Enabled = parseYesNo(input, settings.AI.Enabled)
	}
	if settings.AI.Enabled {
		cmd.Print("OpenAI API key (input hidden, Enter keeps current): ")
		if key := readPassword(); key != "" {
			settings.AI.APIKey = key
		}
		cmd.Println()
		cmd.Printf("Model [%s]: ", settings.AI.Model)
		if input := readLine(reader); input != "" {
			settings.AI.Model = input
		}
		cmd.Printf("Enable high-score alerts? [%s]: ", yesNo(settings.AI.AlertsEnabled))
		if input := readLine(reader); input != "" {
			settings.AI.AlertsEnabled = parseYesNo(input, settings.AI.AlertsEnabled)
		}
		if settings.AI.AlertsEnabled {
			cmd.Printf("Alert threshold [%.1f]: ", settings.AI.AlertThreshold)
			if input := readLine(reader); input != "" {
				if val, convErr := strconv.ParseFloat(input, 64); convErr == nil {
					settings.AI.AlertThreshold = val
				}
			}
		}
	}
	cmd.Println()

	if settings.AI.IsConfigured() {
		cmd.Print("Validating AI credentials... ")
		if err := validateAICredentials(settings.AI); err != nil {
			cmd.Printf("failed: %v\n", err)
			cmd.Println("Settings are saved anyway; fix the key and re-run the wizard.")
		} else {
			cmd.Println("ok")
		}
	}

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println("Settings saved.")
	return nil
}

// validateAICredentials pings the configured AI provider so a bad key
// surfaces in the wizard instead of on the first scheduled run.
func validateAICredentials(settings domain.AISettings) error {
	svc, err := ai.CreateAndValidateLLMService(settings)
	if err != nil {
		return err
	}
	if svc != nil {
		return svc.Close()
	}
	return nil
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}

func orNotSet(value string) string {
	if value == "" {
		return "(not set)"
	}
	return value
}

func splitList(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func yesNo(v bool) string {
	if v {
		return "y"
	}
	return "n"
}

func parseYesNo(input string, defaultVal bool) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return defaultVal
	}
}

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
