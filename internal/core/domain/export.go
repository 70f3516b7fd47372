package domain

import (
	"sync"
	"time"
)

// ExportKind names an export path.
type ExportKind string

// Export paths.
const (
	ExportPDF   ExportKind = "pdf"
	ExportPrint ExportKind = "print"
)

// ExportState is a stage of one export invocation.
type ExportState string

// Export states.
const (
	ExportIdle                ExportState = "idle"
	ExportRendering           ExportState = "rendering"
	ExportRasterizing         ExportState = "rasterizing"
	ExportAwaitingPrintDialog ExportState = "awaiting_print_dialog"
	ExportComplete            ExportState = "complete"
	ExportFailed              ExportState = "failed"
)

var exportTransitions = map[ExportKind]map[ExportState]map[ExportState]struct{}{
	ExportPDF: {
		ExportIdle:        {ExportRendering: {}},
		ExportRendering:   {ExportRasterizing: {}, ExportFailed: {}},
		ExportRasterizing: {ExportComplete: {}, ExportFailed: {}},
		ExportComplete:    {},
		ExportFailed:      {},
	},
	ExportPrint: {
		ExportIdle:                {ExportRendering: {}},
		ExportRendering:           {ExportAwaitingPrintDialog: {}, ExportFailed: {}},
		ExportAwaitingPrintDialog: {ExportComplete: {}, ExportFailed: {}},
		ExportComplete:            {},
		ExportFailed:              {},
	},
}

// CanTransition reports whether an export of the given kind may move
// from one state to another.
func CanTransition(kind ExportKind, from, to ExportState) bool {
	allowed, ok := exportTransitions[kind][from]
	if !ok {
		return false
	}
	_, ok = allowed[to]
	return ok
}

// IsTerminal reports whether no further transition is possible.
func (s ExportState) IsTerminal() bool {
	return s == ExportComplete || s == ExportFailed
}

// String returns the string representation.
func (s ExportState) String() string {
	return string(s)
}

// ExportTransition records one state change of a run.
type ExportTransition struct {
	From ExportState
	To   ExportState
	At   time.Time
}

// ExportArtifact describes a produced PDF.
type ExportArtifact struct {
	// FileName is the deterministic name derived from the invoice.
	FileName string

	// Location is where the artifact store placed the file.
	Location string

	// PageWidth and PageHeight are the PDF page size in millimetres.
	PageWidth  float64
	PageHeight float64

	// ImageHeight is the placed raster height in millimetres.
	ImageHeight float64

	// Pages is the number of pages written.
	Pages int

	// Size is the encoded byte count.
	Size int
}

// ExportRun tracks one export invocation. Runs are never shared between
// invocations, so concurrent exports of the same invoice stay independent.
type ExportRun struct {
	mu sync.Mutex

	ID        string
	InvoiceID string
	Kind      ExportKind
	state     ExportState
	history   []ExportTransition
	artifact  *ExportArtifact
	err       error
}

// NewExportRun returns a run in the Idle state.
func NewExportRun(id, invoiceID string, kind ExportKind) *ExportRun {
	return &ExportRun{ID: id, InvoiceID: invoiceID, Kind: kind, state: ExportIdle}
}

// State returns the current state.
func (r *ExportRun) State() ExportState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// History returns the transitions applied so far.
func (r *ExportRun) History() []ExportTransition {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ExportTransition(nil), r.history...)
}

// Artifact returns the produced artifact, if any.
func (r *ExportRun) Artifact() *ExportArtifact {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.artifact
}

// Err returns the failure cause, if any.
func (r *ExportRun) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Advance moves the run to the next state.
func (r *ExportRun) Advance(to ExportState, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !CanTransition(r.Kind, r.state, to) {
		return ErrInvalidTransition
	}
	r.history = append(r.history, ExportTransition{From: r.state, To: to, At: at})
	r.state = to
	return nil
}

// Complete marks the run complete with an optional artifact.
func (r *ExportRun) Complete(artifact *ExportArtifact, at time.Time) error {
	if err := r.Advance(ExportComplete, at); err != nil {
		return err
	}
	r.mu.Lock()
	r.artifact = artifact
	r.mu.Unlock()
	return nil
}

// Fail marks the run failed and returns the typed failure.
func (r *ExportRun) Fail(cause error, at time.Time) *ExportFailedError {
	r.mu.Lock()
	defer r.mu.Unlock()
	stage := r.state
	if CanTransition(r.Kind, r.state, ExportFailed) {
		r.history = append(r.history, ExportTransition{From: r.state, To: ExportFailed, At: at})
		r.state = ExportFailed
	}
	failure := &ExportFailedError{InvoiceID: r.InvoiceID, Kind: r.Kind, Stage: stage, Err: cause}
	r.err = failure
	return failure
}
