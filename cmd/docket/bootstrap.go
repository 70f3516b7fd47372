package main

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/docket/internal/adapters/driven/artifact/filesystem"
	"github.com/custodia-labs/docket/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docket/internal/adapters/driven/notify"
	"github.com/custodia-labs/docket/internal/adapters/driven/pdf"
	"github.com/custodia-labs/docket/internal/adapters/driven/printer"
	"github.com/custodia-labs/docket/internal/adapters/driven/raster"
	"github.com/custodia-labs/docket/internal/adapters/driven/storage/bolt"
	"github.com/custodia-labs/docket/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docket/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docket/internal/adapters/driving/cli"
	"github.com/custodia-labs/docket/internal/core/domain"
	"github.com/custodia-labs/docket/internal/core/ports/driven"
	"github.com/custodia-labs/docket/internal/core/services"
	"github.com/custodia-labs/docket/internal/logger"
)

// bootstrap wires the adapters selected by the settings in configDir.
func bootstrap(ctx context.Context, configDir string) (cli.Services, func(), error) {
	cfg, err := file.NewConfigStore(configDir)
	if err != nil {
		return cli.Services{}, nil, fmt.Errorf("failed to load config: %w", err)
	}
	settings, err := services.LoadSettings(cfg)
	if err != nil {
		return cli.Services{}, nil, fmt.Errorf("invalid settings in %s: %w", cfg.Path(), err)
	}
	logger.Section("Bootstrap")

	slot, err := openSlot(settings.Storage)
	if err != nil {
		return cli.Services{}, nil, err
	}
	release := func() {
		if err := slot.Close(); err != nil {
			logger.Warn("closing storage: %v", err)
		}
	}

	notifier := notify.NewConsole(os.Stderr, notify.DefaultTheme())
	docStore := memory.NewDocumentStore()
	invoiceStore := memory.NewInvoiceStore()
	persistence := services.NewPersistence(slot, docStore, invoiceStore, notifier)
	if err := persistence.Restore(ctx); err != nil {
		release()
		return cli.Services{}, nil, fmt.Errorf("failed to restore state: %w", err)
	}

	rasterizer, err := raster.New()
	if err != nil {
		release()
		return cli.Services{}, nil, fmt.Errorf("failed to load fonts: %w", err)
	}
	artifacts, err := filesystem.NewStore(settings.Export.OutputDir)
	if err != nil {
		release()
		return cli.Services{}, nil, err
	}

	return cli.Services{
		Documents: services.NewDocumentService(docStore, persistence, notifier),
		Invoices:  services.NewInvoiceService(invoiceStore, docStore, persistence, notifier),
		Exports: services.NewExportService(invoiceStore, rasterizer, pdf.NewEncoder(), artifacts,
			printer.NewBrowserSink("", nil), notifier, settings),
		Settings:     services.NewSettingsService(cfg),
		RestoreError: persistence.LastRestoreError,
	}, release, nil
}

// openSlot opens the durable slot for the configured backend.
func openSlot(storage domain.StorageSettings) (driven.StateSlot, error) {
	switch storage.Backend {
	case domain.StorageBolt:
		slot, err := bolt.Open(storage.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open bolt storage: %w", err)
		}
		logger.Debug("using bolt storage at %s", slot.Path())
		return slot, nil
	case domain.StorageMemory:
		logger.Debug("using in-memory storage, nothing will be saved")
		return memory.NewStateSlot(), nil
	default:
		store, err := sqlite.NewStore(storage.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite storage: %w", err)
		}
		logger.Debug("using sqlite storage at %s", store.Path())
		return store.StateSlot(), nil
	}
}
