package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/docket/internal/render"
)

// defaultWrap is the preview width when stdout is not a terminal.
const defaultWrap = 80

var invoicePreviewCmd = &cobra.Command{
	Use:   "preview [invoice-id]",
	Short: "Preview an invoice in the terminal",
	Long: `Renders the invoice as styled Markdown in the terminal. With --html the
on-screen preview document, watermark included, is written to a file instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runInvoicePreview,
}

var invoiceExportCmd = &cobra.Command{
	Use:   "export [invoice-id]",
	Short: "Export an invoice to PDF",
	Long:  `Writes invoice-<customer>-<number>.pdf to the configured output directory.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInvoiceExport,
}

var invoicePrintCmd = &cobra.Command{
	Use:   "print [invoice-id]",
	Short: "Open an invoice in the browser's print dialog",
	Args:  cobra.ExactArgs(1),
	RunE:  runInvoicePrint,
}

var previewHTML string

func init() {
	invoicePreviewCmd.Flags().StringVar(&previewHTML, "html", "", "Write the HTML preview to this file")

	invoiceCmd.AddCommand(invoicePreviewCmd)
	invoiceCmd.AddCommand(invoiceExportCmd)
	invoiceCmd.AddCommand(invoicePrintCmd)
}

func runInvoicePreview(cmd *cobra.Command, args []string) error {
	if exportService == nil {
		return errors.New("export service not configured")
	}

	layout, err := exportService.Layout(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to render invoice: %w", err)
	}

	if previewHTML != "" {
		html, err := render.PreviewHTML(*layout)
		if err != nil {
			return fmt.Errorf("failed to render preview: %w", err)
		}
		if err := os.WriteFile(previewHTML, html, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", previewHTML, err)
		}
		cmd.Printf("Preview written to %s\n", previewHTML)
		return nil
	}

	out, err := renderMarkdown(cmd.OutOrStdout(), render.Markdown(*layout))
	if err != nil {
		return fmt.Errorf("failed to render preview: %w", err)
	}
	cmd.Print(out)
	return nil
}

// renderMarkdown styles md for w. Terminals get the auto style at their
// width; anything else gets plain output at defaultWrap columns.
func renderMarkdown(w io.Writer, md string) (string, error) {
	opts := []glamour.TermRendererOption{
		glamour.WithStandardStyle("notty"),
		glamour.WithWordWrap(defaultWrap),
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		width := defaultWrap
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
			width = cols
		}
		opts = []glamour.TermRendererOption{
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		}
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

func runInvoiceExport(cmd *cobra.Command, args []string) error {
	if exportService == nil {
		return errors.New("export service not configured")
	}

	run, err := exportService.ExportPDF(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to export invoice: %w", err)
	}

	artifact := run.Artifact()
	cmd.Printf("Exported %s\n", artifact.FileName)
	cmd.Printf("  Location: %s\n", artifact.Location)
	cmd.Printf("  Pages:    %d\n", artifact.Pages)
	cmd.Printf("  Size:     %d bytes\n", artifact.Size)
	return nil
}

func runInvoicePrint(cmd *cobra.Command, args []string) error {
	if exportService == nil {
		return errors.New("export service not configured")
	}

	if _, err := exportService.Print(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to print invoice: %w", err)
	}

	cmd.Println("Print dialog opened.")
	return nil
}
