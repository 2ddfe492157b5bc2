package domain

// ModuleIdentifier uniquely names a module within the module graph.
// Identifiers must be stable across builds so that candidate ordering is
// reproducible run to run.
type ModuleIdentifier string

// ChunkKey is an opaque token identifying a chunk that requests a candidate
// group. Only distinctness matters to this package; the comparator counts
// chunks, it never inspects them.
type ChunkKey uint32

// Module is the capability a module representation must expose to take part
// in grouping: a stable identity, the source types it emits, and a
// non-negative size estimate per type. Any concrete module satisfies the
// interface; no hierarchy is required.
type Module interface {
	// Identifier returns the module's stable identity, suitable for set
	// membership and total ordering.
	Identifier() ModuleIdentifier

	// SourceTypes enumerates the output categories this module contributes to.
	SourceTypes() []SourceType

	// Size reports the estimated byte count the module contributes to the
	// given source type. The estimate must be non-negative.
	Size(ty SourceType) float64
}

// ModuleGroup is the middle step of splitting chunks: it captures the
// modules a cache group rule wants to pull into a shared chunk, together
// with the accumulated output size per source type. A winning ModuleGroup
// is promoted into a chunk; a losing one is discarded after its modules are
// reassigned elsewhere.
//
// Sizes are maintained incrementally by AddModule and RemoveModule in
// O(source types of the module) per call, never by rescanning members.
// Mutating Modules or Sizes directly desynchronizes the two; all membership
// changes must go through the methods.
//
// A ModuleGroup has a single owner. Concurrent mutation is not supported;
// read-only concurrent access (comparison included) is safe.
type ModuleGroup struct {
	// Modules holds the identifiers of the member modules. Set semantics:
	// no duplicates, insertion order irrelevant.
	Modules map[ModuleIdentifier]struct{}

	// CacheGroupIndex records which cache group rule, in declared order,
	// produced this candidate. Immutable after creation.
	CacheGroupIndex int

	// CacheGroupPriority is copied from the producing cache group rule.
	// Higher outranks lower. Immutable after creation.
	CacheGroupPriority float64

	// Name labels the eventual chunk. It plays no part in comparison.
	Name string

	// Sizes is the per-source-type byte total over the current members,
	// kept in lockstep with Modules by AddModule and RemoveModule.
	Sizes SplitChunkSizes

	// Chunks holds the keys of the chunks that currently request this
	// candidate, i.e. how broadly the extracted group would be shared.
	Chunks map[ChunkKey]struct{}
}

// NewModuleGroup creates an empty candidate for the cache group rule at the
// given declared index with the given priority.
func NewModuleGroup(name string, cacheGroupIndex int, priority float64) *ModuleGroup {
	return &ModuleGroup{
		Modules:            make(map[ModuleIdentifier]struct{}),
		CacheGroupIndex:    cacheGroupIndex,
		CacheGroupPriority: priority,
		Name:               name,
		Sizes:              NewSplitChunkSizes(),
		Chunks:             make(map[ChunkKey]struct{}),
	}
}

// AddModule inserts the module into the group. If the module was already a
// member the call is a no-op, so sizes are never double-counted. On actual
// insertion every source type the module emits is credited with the
// module's size estimate, creating the entry at zero when absent.
func (mg *ModuleGroup) AddModule(module Module) {
	oldLen := len(mg.Modules)
	mg.Modules[module.Identifier()] = struct{}{}

	if len(mg.Modules) == oldLen {
		return
	}
	for _, ty := range module.SourceTypes() {
		mg.Sizes[ty] += module.Size(ty)
	}
}

// RemoveModule removes the module from the group. Removing a non-member is
// a no-op. On actual removal every source type the module emits is debited
// by the module's size estimate; results are clamped at zero to absorb
// floating-point drift, which is accounting noise rather than an error.
func (mg *ModuleGroup) RemoveModule(module Module) {
	oldLen := len(mg.Modules)
	delete(mg.Modules, module.Identifier())

	if len(mg.Modules) == oldLen {
		return
	}
	for _, ty := range module.SourceTypes() {
		size := mg.Sizes[ty] - module.Size(ty)
		if size < 0 {
			size = 0
		}
		mg.Sizes[ty] = size
	}
}

// AddChunk records that the chunk with the given key requests this
// candidate. Idempotent.
func (mg *ModuleGroup) AddChunk(key ChunkKey) {
	mg.Chunks[key] = struct{}{}
}

// RemoveChunk drops the chunk with the given key from the requesting set.
// Removing an absent key is a no-op.
func (mg *ModuleGroup) RemoveChunk(key ChunkKey) {
	delete(mg.Chunks, key)
}
