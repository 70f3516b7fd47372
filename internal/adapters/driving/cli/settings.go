package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change storage, export and print settings.

Settings live in config.toml inside the config directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change one setting. Recognised keys:

  storage.backend       sqlite | bolt | memory
  storage.path          data directory
  export.output_dir     where PDFs are written
  export.scale          raster scale, at least 2
  export.pagination     paginate | single
  print.teardown_delay  Go duration, e.g. 1s
  watermark.enabled     true | false
  log.verbose           true | false`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
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

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", settings.Storage.Backend.Description())
	if settings.Storage.Backend.IsDurable() {
		cmd.Printf("  Path: %s\n", settings.Storage.Path)
	}
	cmd.Println()

	cmd.Println("[Export]")
	cmd.Printf("  Output directory: %s\n", settings.Export.OutputDir)
	cmd.Printf("  Scale: %g\n", settings.Export.Scale)
	cmd.Printf("  Pagination: %s\n", settings.Export.Pagination)
	cmd.Println()

	cmd.Println("[Print]")
	cmd.Printf("  Teardown delay: %s\n", settings.Print.TeardownDelay)
	cmd.Println()

	cmd.Println("[Display]")
	cmd.Printf("  Watermark: %s\n", enabled(settings.WatermarkEnabled))
	cmd.Printf("  Verbose logging: %s\n", enabled(settings.Verbose))
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}

	cmd.Printf("%s set to %s\n", args[0], args[1])
	return nil
}

func enabled(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}
