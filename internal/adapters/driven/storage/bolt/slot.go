package bolt

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "github.com/boltdb/bolt"

	"github.com/custodia-labs/docket/internal/core/domain"
	"github.com/custodia-labs/docket/internal/core/ports/driven"
)

// DatabaseFile is the database file name inside the data directory.
const DatabaseFile = "docket.bolt"

const bucketName = "state"

// Slot is a driven.StateSlot stored in a BoltDB file.
type Slot struct {
	db *bolt.DB
}

var _ driven.StateSlot = (*Slot)(nil)

// Open opens (or creates) the slot database inside dataDir and ensures
// the state bucket exists. Another process holding the file lock makes
// Open fail after one second.
func Open(dataDir string) (*Slot, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := bolt.Open(filepath.Join(dataDir, DatabaseFile), 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bolt database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	return &Slot{db: db}, nil
}

// Path returns the database file path.
func (s *Slot) Path() string {
	return s.db.Path()
}

// Read returns the value stored under key.
func (s *Slot) Read(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketName)).Cursor()
		k, v := c.Seek([]byte(key))
		if !bytes.Equal(k, []byte(key)) {
			return domain.ErrNotFound
		}
		// v is only valid while the transaction is open
		value = append([]byte{}, v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Write stores value under key, replacing any previous value.
func (s *Slot) Write(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("writing slot %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Slot) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Delete([]byte(key))
	})
}

// Close releases the database file lock.
func (s *Slot) Close() error {
	return s.db.Close()
}
