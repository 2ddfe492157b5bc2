package modules

import (
	"fmt"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ahrav/go-splitchunks/internal/domain"
)

var _ domain.Module = (*SourceModule)(nil)

// sizeKey addresses one (module, source type) size in the cache.
type sizeKey struct {
	id domain.ModuleIdentifier
	ty domain.SourceType
}

// SizeCache memoizes per-source-type size computations across modules.
// During a pass the optimizer queries the same module's size once per
// candidate it joins, so sharing one cache across all SourceModules keeps
// repeated queries cheap.
//
// SizeCache is safe for concurrent use; the underlying LRU serializes
// access internally.
type SizeCache struct {
	cache *lru.Cache[sizeKey, float64]
}

// NewSizeCache creates a cache holding up to capacity size entries.
func NewSizeCache(capacity int) (*SizeCache, error) {
	c, err := lru.New[sizeKey, float64](capacity)
	if err != nil {
		return nil, fmt.Errorf("failed to create size cache: %w", err)
	}
	return &SizeCache{cache: c}, nil
}

// SourceModule derives its sizes from raw source content: the size estimate
// for a source type is the byte length of the content registered for it.
// Computed sizes are memoized in a shared SizeCache keyed by identifier and
// source type.
//
// The identifier must be unique per content; reusing an identifier for
// different content would serve stale cached sizes.
type SourceModule struct {
	id      domain.ModuleIdentifier
	sources map[domain.SourceType][]byte
	cache   *SizeCache
}

// NewSourceModule creates a module whose sizes derive from the given
// per-source-type content. A nil cache disables memoization.
func NewSourceModule(
	id domain.ModuleIdentifier,
	sources map[domain.SourceType][]byte,
	cache *SizeCache,
) *SourceModule {
	return &SourceModule{id: id, sources: sources, cache: cache}
}

// Identifier returns the module's stable identity.
func (m *SourceModule) Identifier() domain.ModuleIdentifier { return m.id }

// SourceTypes enumerates the source types with registered content, in
// ascending order for reproducibility.
func (m *SourceModule) SourceTypes() []domain.SourceType {
	types := make([]domain.SourceType, 0, len(m.sources))
	for ty := range m.sources {
		types = append(types, ty)
	}
	slices.Sort(types)
	return types
}

// Size reports the byte length of the content registered for the source
// type, zero if absent. Results are served from the shared cache when one
// is configured.
func (m *SourceModule) Size(ty domain.SourceType) float64 {
	if m.cache != nil {
		if size, ok := m.cache.cache.Get(sizeKey{id: m.id, ty: ty}); ok {
			return size
		}
	}

	size := float64(len(m.sources[ty]))

	if m.cache != nil {
		m.cache.cache.Add(sizeKey{id: m.id, ty: ty}, size)
	}
	return size
}
