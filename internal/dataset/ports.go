// Package dataset defines the ports between the dashboard and its tabular
// data sources.
package dataset

import (
	"context"

	"txdash/internal/core"
)

// Source loads the full transaction dataset. Implementations are read-only
// from the dashboard's point of view; a fresh Dataset value is returned on
// every call.
type Source interface {
	Load(ctx context.Context) (*core.Dataset, error)
}

// Fingerprinter is an optional Source capability: a cheap identity of the
// underlying data used as the dashboard view cache key. Sources that cannot
// fingerprint themselves are cached under a fixed key for the TTL window.
type Fingerprinter interface {
	Fingerprint(ctx context.Context) (string, error)
}
