// Package modules provides concrete implementations of the domain.Module
// capability for use by optimizer callers and tests.
package modules

import (
	"slices"

	"github.com/ahrav/go-splitchunks/internal/domain"
)

var _ domain.Module = (*StaticModule)(nil)

// StaticModule is a module with a fixed identity and precomputed
// per-source-type sizes. Use it when sizes are already known, such as
// fixtures or graphs built from a previous pass.
//
// StaticModule is immutable after creation and safe for concurrent reads.
type StaticModule struct {
	id    domain.ModuleIdentifier
	sizes domain.SplitChunkSizes
	types []domain.SourceType
}

// NewStaticModule creates a module with the given identifier and size
// table. The table is cloned, so later mutation by the caller does not
// leak into the module.
func NewStaticModule(id domain.ModuleIdentifier, sizes domain.SplitChunkSizes) *StaticModule {
	m := &StaticModule{
		id:    id,
		sizes: sizes.Clone(),
		types: make([]domain.SourceType, 0, len(sizes)),
	}
	for ty := range m.sizes {
		m.types = append(m.types, ty)
	}
	// Sorted once so SourceTypes is stable across calls.
	slices.Sort(m.types)
	return m
}

// Identifier returns the module's stable identity.
func (m *StaticModule) Identifier() domain.ModuleIdentifier { return m.id }

// SourceTypes enumerates the source types in ascending order.
func (m *StaticModule) SourceTypes() []domain.SourceType {
	return slices.Clone(m.types)
}

// Size reports the precomputed size for the source type, zero if the
// module does not emit it.
func (m *StaticModule) Size(ty domain.SourceType) float64 { return m.sizes[ty] }
