// Package contract provides interfaces and shared utilities for athome's internal architecture.
package contract

import (
	"context"
	"errors"

	"github.com/huangsam/athome/schema"
)

var (
	// ErrProfileNotFound is returned when a client has no stored profile.
	ErrProfileNotFound = errors.New("contract: profile not found")
	// ErrNoProfileSource is returned when neither a profile file nor a client ID was given.
	ErrNoProfileSource = errors.New("contract: no profile file or client given")
	// ErrStoreUnavailable is returned when a store operation needs a real backend.
	ErrStoreUnavailable = errors.New("contract: profile store is not configured")
)

// ProfileStore persists client availability profiles and their presence history.
// Implementations must be safe for concurrent use.
type ProfileStore interface {
	// Get returns the profile for a client, or ErrProfileNotFound.
	Get(ctx context.Context, clientID string) (schema.ClientProfile, error)

	// Put replaces the profile and presence history of a client.
	Put(ctx context.Context, profile schema.ClientProfile) error

	// Delete removes a client and its presence history.
	Delete(ctx context.Context, clientID string) error

	// List returns the stored profiles that match the filter, best score first.
	List(ctx context.Context, filter schema.ProfileFilter) ([]schema.ClientProfile, error)

	// History returns every stored presence record, for export.
	History(ctx context.Context) ([]schema.PresenceRow, error)

	// GetStatus returns status information about the store.
	GetStatus() (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// StoreManager hands out the active profile store.
// This allows the store layer to be mocked for testing.
type StoreManager interface {
	GetProfileStore() ProfileStore
}
