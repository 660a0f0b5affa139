package listservice

import (
	"context"

	"github.com/asecurityteam/runhttp"
)

// Logger is an alias for the chosen project logging library
// which is, currently, logevent. All references in the project
// should be to this name rather than logevent directly.
type Logger = runhttp.Logger

// LogFn extracts a logger from the context.
type LogFn = runhttp.LogFn

// Stat is an alias for the chosen project metrics library
// which is, currently, xstats. All references in the project
// should be to this name rather than xstats directly.
type Stat = runhttp.Stat

// StatFn extracts a metrics client from the context.
type StatFn = runhttp.StatFn

// LoggerFromContext extracts the request logger from the context.
var LoggerFromContext = runhttp.LoggerFromContext

// StatFromContext extracts the request stat client from the context.
var StatFromContext = runhttp.StatFromContext

// URLParamFn should be accepted by HTTP handlers that need
// to interface with the mux in use in order to extract request
// parameters from the URL. This defines the contract between
// any given mux and a handler so that the two do not need to
// be coupled.
type URLParamFn func(ctx context.Context, name string) string

// Storage is the persistence adapter for list records. All operations are
// keyed by list identifier. Absence of a record is reported as a nil record
// rather than an error; errors indicate backend failures only.
type Storage interface {
	// Get returns the stored record or nil if no record exists for the id.
	Get(ctx context.Context, listID string) (*Record, error)
	// Put upserts a record. It preserves the original created_at when the
	// record already exists and refreshes updated_at on every write.
	Put(ctx context.Context, listID string, items []string) (*Record, error)
	// Create stores a new record under a generated identifier.
	Create(ctx context.Context, items []string) (*Record, error)
	// Update replaces the items of an existing record. It returns nil
	// without writing when no record exists for the id.
	Update(ctx context.Context, listID string, items []string) (*Record, error)
	// ScanAll returns every stored record with no ordering guarantee.
	ScanAll(ctx context.Context) ([]Record, error)
	// Delete removes the record if present and reports whether it existed.
	Delete(ctx context.Context, listID string) (bool, error)
}

// ValidationError represents a rejected request input. Handlers map it to
// a 400 response before any persistence call is issued.
type ValidationError struct {
	// Message describes the rejected input.
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}
