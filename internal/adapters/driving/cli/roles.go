package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "Manage searched job roles",
	Long: `List, add, or remove the job roles searched on every run.

Each role is queried against every enabled provider in every configured
location.`,
	RunE: runRolesList,
}

var rolesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured roles",
	RunE:  runRolesList,
}

var rolesAddCmd = &cobra.Command{
	Use:   "add <role>",
	Short: "Add a role",
	Args:  cobra.ExactArgs(1),
	RunE:  runRolesAdd,
}

var rolesRemoveCmd = &cobra.Command{
	Use:   "remove <role>",
	Short: "Remove a role",
	Args:  cobra.ExactArgs(1),
	RunE:  runRolesRemove,
}

func init() {
	rolesCmd.AddCommand(rolesListCmd)
	rolesCmd.AddCommand(rolesAddCmd)
	rolesCmd.AddCommand(rolesRemoveCmd)
	rootCmd.AddCommand(rolesCmd)
}

func runRolesList(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if len(settings.Roles) == 0 {
		cmd.Println("No roles configured. Add one with 'jobradar roles add <role>'.")
		return nil
	}

	cmd.Println("Configured roles:")
	for _, role := range settings.Roles {
		cmd.Printf("  - %s\n", role)
	}
	return nil
}

func runRolesAdd(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	role := strings.TrimSpace(args[0])
	if role == "" {
		return errors.New("role must not be empty")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	for _, existing := range settings.Roles {
		if strings.EqualFold(existing, role) {
			cmd.Printf("Role %q is already configured.\n", existing)
			return nil
		}
	}

	settings.Roles = append(settings.Roles, role)
	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("Added role %q.\n", role)
	return nil
}

func runRolesRemove(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	role := strings.TrimSpace(args[0])

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	kept := settings.Roles[:0]
	removed := false
	for _, existing := range settings.Roles {
		if strings.EqualFold(existing, role) {
			removed = true
			continue
		}
		kept = append(kept, existing)
	}
	if !removed {
		cmd.Printf("Role %q is not configured.\n", role)
		return nil
	}

	settings.Roles = kept
	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("Removed role %q.\n", role)
	return nil
}
