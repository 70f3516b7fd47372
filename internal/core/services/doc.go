// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Every mutation of the record stores runs inside a Persistence commit,
// so the persisted snapshot always reflects the latest applied change.
package services
