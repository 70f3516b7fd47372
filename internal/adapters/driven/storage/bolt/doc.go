// Package bolt provides a BoltDB-backed StateSlot.
//
// The whole database is a single file holding one bucket of key/value
// pairs, which maps directly onto the slot model used for persisted state.
package bolt
