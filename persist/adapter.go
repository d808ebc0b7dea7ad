package persist

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Restore helpers that require saved state.
var ErrNotFound = errors.New("persist: no saved state")

// Adapter defines the interface for persistence backends.
// Implementations must be thread-safe.
type Adapter interface {
	// Load retrieves the saved state. Returns nil, false, nil if nothing
	// has been saved.
	Load(ctx context.Context) (map[string]any, bool, error)

	// Save stores data, replacing anything saved before.
	Save(ctx context.Context, data map[string]any) error

	// Clear removes the saved state. No error if nothing was saved.
	Clear(ctx context.Context) error
}
