// Package cache stores pipeline results keyed by their inputs.
//
// Layer synthesis is the expensive step: the search space grows as a product
// of binomials, so repeating a request should not repeat the search. Rendered
// artifacts are cached too, keyed by the knot they show.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [NullCache]: stores nothing, for tests or --no-cache
//
// Wrap any backend with [Instrument] to report hits and misses to
// observability.CacheHooks.
//
// # Keys
//
// A [Keyer] derives cache keys from request parameters. Keys are
// "prefix:sha256(params)" so that any parameter change produces a new key.
// [NewScopedKeyer] prepends a namespace, which the pipeline uses to separate
// entries written by different program versions.
package cache

import (
	"context"
	"strings"
	"time"
)

// Default TTLs per entry kind. Results never change for a given key, so TTLs
// only bound disk and memory use.
const (
	SynthesisTTL = 7 * 24 * time.Hour
	ArtifactTTL  = 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiration.
type Cache interface {
	// Get returns the value for key. hit is false for missing or expired
	// entries; err is reserved for backend failures.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl <= 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// SynthesisKeyOpts holds the search options that change synthesis output.
type SynthesisKeyOpts struct {
	SingleStrand bool `json:"single_strand"`
}

// ArtifactKeyOpts holds the render options that change an artifact.
type ArtifactKeyOpts struct {
	Format    string  `json:"format"`
	Scale     float64 `json:"scale,omitempty"`
	Crossings bool    `json:"crossings,omitempty"`
	Grid      bool    `json:"grid,omitempty"`
	Title     string  `json:"title,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// SynthesisKey keys a layer search by its layer list ("3@1,3@2").
	SynthesisKey(layers string, opts SynthesisKeyOpts) string

	// ArtifactKey keys a rendered artifact by the canonical key of its knot.
	ArtifactKey(knotKey string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes all parameters into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// SynthesisKey implements Keyer.
func (DefaultKeyer) SynthesisKey(layers string, opts SynthesisKeyOpts) string {
	return hashKey("synthesis", layers, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(knotKey string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", knotKey, opts)
}

// ScopedKeyer wraps a Keyer with a prefix so that separate namespaces never
// share entries.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// A nil inner keyer means DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// SynthesisKey implements Keyer.
func (k *ScopedKeyer) SynthesisKey(layers string, opts SynthesisKeyOpts) string {
	return k.prefix + k.inner.SynthesisKey(layers, opts)
}

// ArtifactKey implements Keyer.
func (k *ScopedKeyer) ArtifactKey(knotKey string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(knotKey, opts)
}

// KeyType returns the entry kind of a key produced by a Keyer ("synthesis",
// "artifact"), skipping any scope prefix. Unknown keys return "other".
func KeyType(key string) string {
	for _, kind := range []string{"synthesis", "artifact"} {
		if strings.HasPrefix(key, kind+":") || strings.Contains(key, ":"+kind+":") {
			return kind
		}
	}
	return "other"
}
