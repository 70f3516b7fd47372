// Package domain defines the core business entities for docket.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An uploaded file kept as a self-contained data URI
//   - Invoice: A submitted invoice with its line items and frozen total
//   - LayoutDocument: The positioned block tree produced by the renderer
//   - ExportRun: One invocation of the PDF or print export pipeline
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
