// Package cache stores planned charts and rendered artifacts.
//
// # Backends
//
//   - [NullCache] never stores anything (caching disabled).
//   - [FileCache] keeps JSON entries with expiry under a directory; the CLI
//     uses it in $XDG_CACHE_HOME/seatchart.
//   - [MemoryCache] keeps entries in process; the server uses it when no
//     Redis address is configured.
//   - [RedisCache] shares entries between server replicas.
//
// # Keys
//
// A [Keyer] derives keys from content hashes and the options that affect the
// result, so the same roster planned with the same options hits the cache:
//
//	key := keyer.ChartKey(cache.Hash(rosterJSON), cache.ChartKeyOpts{Layout: "stacked"})
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry. Implementations are safe for
// concurrent use.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Default time-to-live values.
const (
	TTLChart    = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// ChartKeyOpts are the planning options that change a chart.
type ChartKeyOpts struct {
	Layout    string   `json:"layout"`
	PartOrder []string `json:"part_order"`
	Rows      int      `json:"rows,omitempty"`
	MaxPerRow int      `json:"max_per_row,omitempty"`
	RowSizes  []int    `json:"row_sizes,omitempty"`
	Strict    bool     `json:"strict,omitempty"`
}

// ArtifactKeyOpts are the rendering options that change an artifact.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
}

// Keyer derives cache keys.
type Keyer interface {
	// ChartKey keys a planned chart by roster hash and options.
	ChartKey(rosterHash string, opts ChartKeyOpts) string

	// ArtifactKey keys a rendered artifact by document hash and options.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ChartKey implements [Keyer].
func (DefaultKeyer) ChartKey(rosterHash string, opts ChartKeyOpts) string {
	return hashKey("chart", rosterHash, opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", docHash, opts)
}
