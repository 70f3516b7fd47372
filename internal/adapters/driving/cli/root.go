// Package cli provides the docket command line interface.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docket/internal/core/ports/driving"
	"github.com/custodia-labs/docket/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services holds the core services the commands drive.
type Services struct {
	Documents driving.DocumentService
	Invoices  driving.InvoiceService
	Exports   driving.ExportService
	Settings  driving.SettingsService

	// RestoreError reports why persisted state was discarded at startup.
	RestoreError func() error
}

// Bootstrap builds the services for a config directory.
// The returned cleanup function releases storage.
type Bootstrap func(ctx context.Context, configDir string) (Services, func(), error)

var (
	documentService driving.DocumentService
	invoiceService  driving.InvoiceService
	exportService   driving.ExportService
	settingsService driving.SettingsService
	restoreError    func() error

	bootstrap Bootstrap
	cleanup   func()
)

// Flags shared by all commands.
var (
	verbose   bool
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "docket",
	Short: "Keep invoices and documents on your machine",
	Long: `Docket stores uploaded documents and invoices locally.

Invoices are written as TOML forms, rendered with a company watermark
and exported to PDF or sent to the browser's print dialog.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Configuration directory (default ~/.docket)")
}

// SetServices installs the services used by commands.
func SetServices(s Services) {
	documentService = s.Documents
	invoiceService = s.Invoices
	exportService = s.Exports
	settingsService = s.Settings
	restoreError = s.RestoreError
}

// SetBootstrap installs the function that builds services before a command runs.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// Execute runs the root command. Storage is released even when the
// command fails.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	_ = teardown(rootCmd, nil)
	return err
}

func setup(cmd *cobra.Command, _ []string) error {
	if verbose {
		logger.SetVerbose(true)
	}
	if bootstrap == nil || cmd == versionCmd {
		return nil
	}

	s, release, err := bootstrap(cmd.Context(), configDir)
	if err != nil {
		return err
	}
	SetServices(s)
	cleanup = release
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil && settings.Verbose {
			logger.SetVerbose(true)
		}
	}
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if cleanup != nil {
		cleanup()
		cleanup = nil
	}
	return nil
}
