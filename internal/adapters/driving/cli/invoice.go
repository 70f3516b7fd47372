package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docket/internal/adapters/driven/signature"
	"github.com/custodia-labs/docket/internal/core/domain"
	"github.com/custodia-labs/docket/internal/core/identity"
	"github.com/custodia-labs/docket/internal/render"
)

var invoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Manage invoices",
	Long:  `Create invoices from TOML forms, preview them and export them to PDF or print.`,
}

var invoiceTemplateCmd = &cobra.Command{
	Use:   "template",
	Short: "Print a blank invoice form",
	Long:  `Prints a TOML form with a generated invoice number and one empty line item.`,
	Args:  cobra.NoArgs,
	RunE:  runInvoiceTemplate,
}

var invoiceCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an invoice from a form",
	Args:  cobra.NoArgs,
	RunE:  runInvoiceCreate,
}

var invoiceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List invoices",
	Args:  cobra.NoArgs,
	RunE:  runInvoiceList,
}

var invoiceShowCmd = &cobra.Command{
	Use:   "show [invoice-id]",
	Short: "Show invoice details",
	Args:  cobra.ExactArgs(1),
	RunE:  runInvoiceShow,
}

var invoiceUpdateCmd = &cobra.Command{
	Use:   "update [invoice-id]",
	Short: "Replace an invoice's fields from a form",
	Long: `Replaces the editable fields of an invoice with the form's values.
The issue date is kept and the total is recomputed from the new items.`,
	Args: cobra.ExactArgs(1),
	RunE: runInvoiceUpdate,
}

var invoiceRemoveCmd = &cobra.Command{
	Use:   "remove [invoice-id]",
	Short: "Delete an invoice",
	Args:  cobra.ExactArgs(1),
	RunE:  runInvoiceRemove,
}

// Flags for create and update.
var (
	formFile      string
	logoFile      string
	signatureFile string
)

func init() {
	for _, c := range []*cobra.Command{invoiceCreateCmd, invoiceUpdateCmd} {
		c.Flags().StringVarP(&formFile, "file", "f", "", "TOML invoice form")
		c.Flags().StringVar(&logoFile, "logo", "", "Company logo image")
		c.Flags().StringVar(&signatureFile, "signature", "", "Signature image")
		_ = c.MarkFlagRequired("file")
	}

	invoiceCmd.AddCommand(invoiceTemplateCmd)
	invoiceCmd.AddCommand(invoiceCreateCmd)
	invoiceCmd.AddCommand(invoiceListCmd)
	invoiceCmd.AddCommand(invoiceShowCmd)
	invoiceCmd.AddCommand(invoiceUpdateCmd)
	invoiceCmd.AddCommand(invoiceRemoveCmd)
	rootCmd.AddCommand(invoiceCmd)
}

// templateClock is replaced in tests.
var templateClock = time.Now

func runInvoiceTemplate(cmd *cobra.Command, _ []string) error {
	data, err := toml.Marshal(domain.NewInvoiceForm(templateClock()))
	if err != nil {
		return fmt.Errorf("failed to encode form: %w", err)
	}
	cmd.Print(string(data))
	return nil
}

// readForm loads a TOML form and attaches the logo, if given.
func readForm(path, logo string) (domain.InvoiceForm, error) {
	var form domain.InvoiceForm
	data, err := os.ReadFile(path)
	if err != nil {
		return form, fmt.Errorf("failed to read form: %w", err)
	}
	if err := toml.Unmarshal(data, &form); err != nil {
		return form, fmt.Errorf("failed to parse form %s: %w", path, err)
	}
	if logo != "" {
		uri, err := imageDataURI(logo)
		if err != nil {
			return form, fmt.Errorf("failed to read logo: %w", err)
		}
		form.CompanyLogo = uri
	}
	return form, nil
}

func runInvoiceCreate(cmd *cobra.Command, _ []string) error {
	if invoiceService == nil {
		return errors.New("invoice service not configured")
	}

	form, err := readForm(formFile, logoFile)
	if err != nil {
		return err
	}

	inv, err := invoiceService.Create(cmd.Context(), form, signature.NewFilePad(signatureFile))
	if err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	cmd.Printf("Invoice %s created.\n", inv.InvoiceNumber)
	cmd.Printf("  ID:    %s\n", inv.ID)
	cmd.Printf("  Total: %s\n", render.FormatMoney(inv.Total))
	return nil
}

func runInvoiceList(cmd *cobra.Command, _ []string) error {
	if invoiceService == nil {
		return errors.New("invoice service not configured")
	}

	invoices, err := invoiceService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list invoices: %w", err)
	}

	if len(invoices) == 0 {
		cmd.Println("No invoices yet.")
		return nil
	}

	cmd.Println("Invoices:")
	cmd.Println()
	for i := range invoices {
		inv := &invoices[i]
		cmd.Printf("  %s\n", inv.ID)
		cmd.Printf("    Number:   %s\n", inv.InvoiceNumber)
		cmd.Printf("    Customer: %s\n", inv.CustomerName)
		cmd.Printf("    Total:    %s\n", render.FormatMoney(inv.Total))
		cmd.Println()
	}

	cmd.Printf("Total: %d invoices\n", len(invoices))
	return nil
}

func runInvoiceShow(cmd *cobra.Command, args []string) error {
	if invoiceService == nil {
		return errors.New("invoice service not configured")
	}

	inv, err := invoiceService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get invoice: %w", err)
	}

	issued := inv.IssueDate
	if t, err := identity.Parse(inv.IssueDate); err == nil {
		issued = t.Format(render.IssueDateLayout)
	}

	cmd.Printf("Invoice: %s\n\n", inv.InvoiceNumber)
	cmd.Printf("  ID:       %s\n", inv.ID)
	cmd.Printf("  Company:  %s\n", inv.CompanyName)
	cmd.Printf("  Customer: %s <%s>\n", inv.CustomerName, inv.Email)
	cmd.Printf("  Issued:   %s\n", issued)
	cmd.Printf("  Logo:     %s\n", yesNo(inv.CompanyLogo != ""))
	cmd.Printf("  Signed:   %s\n", yesNo(inv.Signature != ""))
	cmd.Println("\n  Items:")
	for _, item := range inv.Items {
		cmd.Printf("    %d × %s @ %s = %s\n", item.Quantity, item.Description,
			render.FormatMoney(item.Price), render.FormatMoney(item.LineTotal()))
	}
	cmd.Printf("\n  Total:    %s\n", render.FormatMoney(inv.Total))
	cmd.Printf("  PDF name: %s\n", inv.PDFFileName())
	return nil
}

func runInvoiceUpdate(cmd *cobra.Command, args []string) error {
	if invoiceService == nil {
		return errors.New("invoice service not configured")
	}

	ctx := cmd.Context()
	existing, err := invoiceService.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get invoice: %w", err)
	}
	form, err := readForm(formFile, logoFile)
	if err != nil {
		return err
	}

	updated := form.Invoice()
	updated.ID = existing.ID
	updated.IssueDate = existing.IssueDate
	updated.Signature = existing.Signature
	if form.CompanyLogo == "" {
		updated.CompanyLogo = existing.CompanyLogo
	}
	if signatureFile != "" {
		sig, err := signature.NewFilePad(signatureFile).Image()
		if err != nil {
			return fmt.Errorf("failed to read signature: %w", err)
		}
		updated.Signature = sig
	}

	if err := invoiceService.Update(ctx, updated); err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}

	cmd.Printf("Invoice %s updated.\n", updated.InvoiceNumber)
	return nil
}

func runInvoiceRemove(cmd *cobra.Command, args []string) error {
	if invoiceService == nil {
		return errors.New("invoice service not configured")
	}

	ctx := cmd.Context()
	if _, err := invoiceService.Get(ctx, args[0]); errors.Is(err, domain.ErrNotFound) {
		cmd.Printf("Invoice %s not found, nothing removed.\n", args[0])
		return nil
	}
	if err := invoiceService.Remove(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to remove invoice: %w", err)
	}

	cmd.Printf("Invoice %s removed.\n", args[0])
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
