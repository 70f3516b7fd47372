package driven

import "context"

// StateSlot is a durable key-value slot for serialized application state.
// Implementations return domain.ErrNotFound when a key has never been written.
type StateSlot interface {
	// Read returns the value stored under key.
	Read(ctx context.Context, key string) ([]byte, error)

	// Write stores value under key, replacing any previous value.
	Write(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the underlying storage.
	Close() error
}
