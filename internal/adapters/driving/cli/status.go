package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show record counts and storage",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if invoiceService == nil {
		return errors.New("invoice service not configured")
	}

	summary, err := invoiceService.Summary(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get summary: %w", err)
	}

	cmd.Println("Docket Status")
	cmd.Println("=============")
	cmd.Printf("  Documents: %d\n", summary.Documents)
	cmd.Printf("  Invoices:  %d\n", summary.Invoices)

	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			cmd.Printf("  Storage:   %s\n", settings.Storage.Backend.Description())
		}
	}
	if restoreError != nil {
		if err := restoreError(); err != nil {
			cmd.Printf("\n  Saved data could not be read at startup: %v\n", err)
		}
	}
	return nil
}
