// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - DocumentStore: Ordered in-memory document records
//   - InvoiceStore: Ordered in-memory invoice records
//   - StateSlot: Durable key-value slot holding the persisted snapshot
//   - ConfigStore: Application configuration
//   - Rasterizer: Layout to raster image
//   - PDFEncoder: Raster image to PDF bytes
//   - ArtifactStore: Atomic placement of exported files
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Notifier: User-facing notifications. Without it, events are only logged.
//   - PrintSink: Platform print surface. Without it, print export fails.
//   - SignaturePad: Signature capture. Without it, invoices carry no signature.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
