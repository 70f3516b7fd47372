package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an upload with a MIME type that is not accepted.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrInvalidInvoice indicates an invoice failed field validation.
	ErrInvalidInvoice = errors.New("invalid invoice")

	// ErrPersistenceRead indicates the persisted state could not be restored.
	ErrPersistenceRead = errors.New("persisted state unreadable")

	// ErrExportFailed indicates a PDF or print export did not complete.
	ErrExportFailed = errors.New("export failed")

	// ErrInvalidTransition indicates an export state change that is not allowed.
	ErrInvalidTransition = errors.New("invalid export state transition")
)

// UnsupportedTypeError is returned when an upload is rejected for its MIME type.
type UnsupportedTypeError struct {
	Name string
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported file type %q for %s: only images and documents are allowed", e.Type, e.Name)
}

func (e *UnsupportedTypeError) Unwrap() error { return ErrUnsupportedType }

// InvalidInvoiceError names the first field that failed validation.
type InvalidInvoiceError struct {
	Field  string
	Reason string
}

func (e *InvalidInvoiceError) Error() string {
	return fmt.Sprintf("invalid invoice: %s %s", e.Field, e.Reason)
}

func (e *InvalidInvoiceError) Unwrap() error { return ErrInvalidInvoice }

// PersistenceReadError records why persisted state was discarded at startup.
type PersistenceReadError struct {
	Key string
	Err error
}

func (e *PersistenceReadError) Error() string {
	return fmt.Sprintf("reading persisted state %q: %v", e.Key, e.Err)
}

// Is matches ErrPersistenceRead as well as the underlying cause.
func (e *PersistenceReadError) Is(target error) bool { return target == ErrPersistenceRead }

func (e *PersistenceReadError) Unwrap() error { return e.Err }

// ExportFailedError reports a failed export run.
type ExportFailedError struct {
	InvoiceID string
	Kind      ExportKind
	Stage     ExportState
	Err       error
}

func (e *ExportFailedError) Error() string {
	return fmt.Sprintf("%s export of invoice %s failed while %s: %v", e.Kind, e.InvoiceID, e.Stage, e.Err)
}

// Is matches ErrExportFailed as well as the underlying cause.
func (e *ExportFailedError) Is(target error) bool { return target == ErrExportFailed }

func (e *ExportFailedError) Unwrap() error { return e.Err }
