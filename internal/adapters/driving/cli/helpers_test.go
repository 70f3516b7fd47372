package cli

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docket/internal/adapters/driven/artifact/filesystem"
	"github.com/custodia-labs/docket/internal/adapters/driven/pdf"
	"github.com/custodia-labs/docket/internal/adapters/driven/raster"
	"github.com/custodia-labs/docket/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docket/internal/core/domain"
	"github.com/custodia-labs/docket/internal/core/ports/driven"
	"github.com/custodia-labs/docket/internal/core/services"
)

const sampleForm = `
company_name = "Acme Corp"
company_address = "1 Main St"
customer_name = "Jane Doe"
email = "jane@example.com"
invoice_number = "INV-1"
notes = "Thanks!"

[[items]]
description = "Widget"
quantity = 2
price = 9.99

[[items]]
description = "Service"
quantity = 1
price = 50.0
`

var testTime = time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC)

func sequentialIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// recordingSink is a print sink that records opened documents.
type recordingSink struct {
	mu     sync.Mutex
	docs   []driven.PrintDocument
	prints int
	closes int
}

func (s *recordingSink) Open(_ context.Context, doc driven.PrintDocument) (driven.PrintSurface, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, doc)
	return recordingSurface{s}, nil
}

type recordingSurface struct{ s *recordingSink }

func (r recordingSurface) Print(context.Context) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.prints++
	return nil
}

func (r recordingSurface) Close() error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.closes++
	return nil
}

type testEnv struct {
	dir       string
	outDir    string
	config    *memory.ConfigStore
	notifier  *memory.Notifier
	sink      *recordingSink
	documents *services.DocumentService
	invoices  *services.InvoiceService
}

// setupTestServices wires real services over memory adapters and
// installs them for the commands.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		dir:      t.TempDir(),
		config:   memory.NewConfigStore(),
		notifier: memory.NewNotifier(),
		sink:     &recordingSink{},
	}
	env.outDir = filepath.Join(env.dir, "out")

	docStore := memory.NewDocumentStore()
	invoiceStore := memory.NewInvoiceStore()
	persistence := services.NewPersistence(memory.NewStateSlot(), docStore, invoiceStore, env.notifier)
	clock := func() time.Time { return testTime }

	env.documents = services.NewDocumentService(docStore, persistence, env.notifier,
		services.WithIDGenerator(sequentialIDs("doc")), services.WithClock(clock))
	env.invoices = services.NewInvoiceService(invoiceStore, docStore, persistence, env.notifier,
		services.WithIDGenerator(sequentialIDs("inv")), services.WithClock(clock))

	rasterizer, err := raster.New()
	require.NoError(t, err)
	artifacts, err := filesystem.NewStore(env.outDir)
	require.NoError(t, err)
	settings := domain.DefaultSettings()
	settings.Print.TeardownDelay = 0
	exports := services.NewExportService(invoiceStore, rasterizer, pdf.NewEncoder(), artifacts,
		env.sink, env.notifier, settings, services.WithIDGenerator(sequentialIDs("run")))

	SetServices(Services{
		Documents:    env.documents,
		Invoices:     env.invoices,
		Exports:      exports,
		Settings:     services.NewSettingsService(env.config),
		RestoreError: persistence.LastRestoreError,
	})
	t.Cleanup(func() { SetServices(Services{}) })
	return env
}

// resetFlags restores every flag to its default so runs do not leak.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

// writeFile writes content into dir and returns the path.
func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

// createSampleInvoice creates the sample form through the CLI.
func createSampleInvoice(t *testing.T, env *testEnv) {
	t.Helper()
	form := writeFile(t, env.dir, "form.toml", []byte(sampleForm))
	_, err := execute(t, "invoice", "create", "--file", form)
	require.NoError(t, err)
}
