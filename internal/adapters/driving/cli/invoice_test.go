package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docket/internal/core/domain"
)

func TestInvoiceTemplateCmd(t *testing.T) {
	original := templateClock
	templateClock = func() time.Time { return testTime }
	defer func() { templateClock = original }()

	out, err := execute(t, "invoice", "template")
	require.NoError(t, err)

	var form domain.InvoiceForm
	require.NoError(t, toml.Unmarshal([]byte(out), &form))
	assert.Equal(t, domain.DefaultInvoiceNumber(testTime), form.InvoiceNumber)
	assert.True(t, strings.HasPrefix(form.InvoiceNumber, "INV-"))
	assert.Equal(t, "2024-02-14", form.IssueDate)
	require.Len(t, form.Items, 1)
	assert.Equal(t, 1, form.Items[0].Quantity)
}

func TestInvoiceCreateCmd(t *testing.T) {
	env := setupTestServices(t)
	form := writeFile(t, env.dir, "form.toml", []byte(sampleForm))

	out, err := execute(t, "invoice", "create", "--file", form)

	require.NoError(t, err)
	assert.Contains(t, out, "Invoice INV-1 created.")
	assert.Contains(t, out, "ID:    inv-1")
	assert.Contains(t, out, "Total: $69.98")

	inv, err := env.invoices.Get(t.Context(), "inv-1")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15T10:30:00.000Z", inv.IssueDate)
	assert.Empty(t, inv.Signature)
}

func TestInvoiceCreateCmd_WithLogoAndSignature(t *testing.T) {
	env := setupTestServices(t)
	form := writeFile(t, env.dir, "form.toml", []byte(sampleForm))
	logo := writeFile(t, env.dir, "logo.png", pngBytes(t, 8, 8))
	sig := writeFile(t, env.dir, "sig.png", pngBytes(t, 20, 10))

	_, err := execute(t, "invoice", "create", "-f", form, "--logo", logo, "--signature", sig)
	require.NoError(t, err)

	inv, err := env.invoices.Get(t.Context(), "inv-1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(inv.CompanyLogo, "data:image/png;base64,"))
	assert.True(t, strings.HasPrefix(inv.Signature, "data:image/png;base64,"))
}

func TestInvoiceCreateCmd_RequiresFile(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "invoice", "create")

	assert.ErrorContains(t, err, `required flag(s) "file" not set`)
}

func TestInvoiceCreateCmd_InvalidForm(t *testing.T) {
	env := setupTestServices(t)
	noItems := strings.Split(sampleForm, "[[items]]")[0]
	form := writeFile(t, env.dir, "form.toml", []byte(noItems))

	_, err := execute(t, "invoice", "create", "--file", form)

	assert.ErrorIs(t, err, domain.ErrInvalidInvoice)
	assert.ErrorContains(t, err, "items must not be empty")

	invoices, err := env.invoices.List(t.Context())
	require.NoError(t, err)
	assert.Empty(t, invoices)
}

func TestInvoiceCreateCmd_MalformedTOML(t *testing.T) {
	env := setupTestServices(t)
	form := writeFile(t, env.dir, "form.toml", []byte("company_name = "))

	_, err := execute(t, "invoice", "create", "--file", form)

	assert.ErrorContains(t, err, "failed to parse form")
}

func TestInvoiceCreateCmd_LogoNotAnImage(t *testing.T) {
	env := setupTestServices(t)
	form := writeFile(t, env.dir, "form.toml", []byte(sampleForm))
	logo := writeFile(t, env.dir, "logo.txt", []byte("not an image"))

	_, err := execute(t, "invoice", "create", "--file", form, "--logo", logo)

	assert.ErrorContains(t, err, "is not an image")
}

func TestInvoiceListCmd(t *testing.T) {
	env := setupTestServices(t)

	out, err := execute(t, "invoice", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No invoices yet.")

	createSampleInvoice(t, env)

	out, err = execute(t, "invoice", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "inv-1")
	assert.Contains(t, out, "Number:   INV-1")
	assert.Contains(t, out, "Customer: Jane Doe")
	assert.Contains(t, out, "Total: 1 invoices")
}

func TestInvoiceShowCmd(t *testing.T) {
	env := setupTestServices(t)
	createSampleInvoice(t, env)

	out, err := execute(t, "invoice", "show", "inv-1")

	require.NoError(t, err)
	assert.Contains(t, out, "Invoice: INV-1")
	assert.Contains(t, out, "Customer: Jane Doe <jane@example.com>")
	assert.Contains(t, out, "Issued:   Jan 15, 2024")
	assert.Contains(t, out, "Logo:     no")
	assert.Contains(t, out, "2 × Widget @ $9.99 = $19.98")
	assert.Contains(t, out, "1 × Service @ $50.00 = $50.00")
	assert.Contains(t, out, "Total:    $69.98")
	assert.Contains(t, out, "PDF name: invoice-Jane Doe-INV-1.pdf")

	_, err = execute(t, "invoice", "show", "inv-9")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoiceUpdateCmd(t *testing.T) {
	env := setupTestServices(t)
	logo := writeFile(t, env.dir, "logo.png", pngBytes(t, 8, 8))
	form := writeFile(t, env.dir, "form.toml", []byte(sampleForm))
	_, err := execute(t, "invoice", "create", "-f", form, "--logo", logo)
	require.NoError(t, err)

	changed := strings.Replace(sampleForm, "quantity = 2", "quantity = 5", 1)
	changed = strings.Replace(changed, `customer_name = "Jane Doe"`, `customer_name = "John Roe"`, 1)
	updatedForm := writeFile(t, env.dir, "updated.toml", []byte(changed))

	out, err := execute(t, "invoice", "update", "inv-1", "--file", updatedForm)
	require.NoError(t, err)
	assert.Contains(t, out, "Invoice INV-1 updated.")

	inv, err := env.invoices.Get(t.Context(), "inv-1")
	require.NoError(t, err)
	assert.Equal(t, "John Roe", inv.CustomerName)
	assert.InDelta(t, 99.95, inv.Total, 1e-9)
	assert.Equal(t, "2024-01-15T10:30:00.000Z", inv.IssueDate)
	assert.NotEmpty(t, inv.CompanyLogo, "logo is kept when not overridden")
}

func TestInvoiceUpdateCmd_Unknown(t *testing.T) {
	env := setupTestServices(t)
	form := writeFile(t, env.dir, "form.toml", []byte(sampleForm))

	_, err := execute(t, "invoice", "update", "inv-9", "--file", form)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoiceRemoveCmd(t *testing.T) {
	env := setupTestServices(t)
	createSampleInvoice(t, env)

	out, err := execute(t, "invoice", "remove", "inv-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Invoice inv-1 removed.")

	out, err = execute(t, "invoice", "remove", "inv-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Invoice inv-1 not found, nothing removed.")
}
