package domain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeModule is a minimal Module implementation for exercising membership
// and size accounting.
type fakeModule struct {
	id    ModuleIdentifier
	sizes map[SourceType]float64
}

func (m *fakeModule) Identifier() ModuleIdentifier { return m.id }

func (m *fakeModule) SourceTypes() []SourceType {
	types := make([]SourceType, 0, len(m.sizes))
	for ty := range m.sizes {
		types = append(types, ty)
	}
	return types
}

func (m *fakeModule) Size(ty SourceType) float64 { return m.sizes[ty] }

func newFakeModule(id string, sizes map[SourceType]float64) *fakeModule {
	return &fakeModule{id: ModuleIdentifier(id), sizes: sizes}
}

func TestNewModuleGroup(t *testing.T) {
	mg := NewModuleGroup("vendors", 3, 10.5)

	assert.Equal(t, "vendors", mg.Name)
	assert.Equal(t, 3, mg.CacheGroupIndex)
	assert.Equal(t, 10.5, mg.CacheGroupPriority)
	assert.Empty(t, mg.Modules)
	assert.Empty(t, mg.Sizes)
	assert.Empty(t, mg.Chunks)
}

func TestModuleGroupAddModule(t *testing.T) {
	t.Run("accumulates sizes per source type", func(t *testing.T) {
		mg := NewModuleGroup("vendors", 0, 0)
		mg.AddModule(newFakeModule("a.js", map[SourceType]float64{
			SourceTypeJavaScript: 100,
		}))
		mg.AddModule(newFakeModule("b.js", map[SourceType]float64{
			SourceTypeJavaScript: 50,
			SourceTypeCSS:        25,
		}))

		require.Len(t, mg.Modules, 2)
		assert.Equal(t, 150.0, mg.Sizes[SourceTypeJavaScript])
		assert.Equal(t, 25.0, mg.Sizes[SourceTypeCSS])
	})

	t.Run("adding the same module twice is idempotent", func(t *testing.T) {
		mg := NewModuleGroup("vendors", 0, 0)
		mod := newFakeModule("a.js", map[SourceType]float64{SourceTypeJavaScript: 100})

		mg.AddModule(mod)
		mg.AddModule(mod)

		assert.Len(t, mg.Modules, 1)
		assert.Equal(t, 100.0, mg.Sizes[SourceTypeJavaScript],
			"re-adding a member must not double-count its size")
	})

	t.Run("creates absent size entries at zero before crediting", func(t *testing.T) {
		mg := NewModuleGroup("styles", 0, 0)
		mg.AddModule(newFakeModule("a.css", map[SourceType]float64{SourceTypeCSS: 0}))

		size, ok := mg.Sizes[SourceTypeCSS]
		require.True(t, ok, "the category entry should exist even for a zero-size module")
		assert.Equal(t, 0.0, size)
	})
}

func TestModuleGroupRemoveModule(t *testing.T) {
	t.Run("add then remove restores sizes exactly", func(t *testing.T) {
		mg := NewModuleGroup("vendors", 0, 0)
		mg.AddModule(newFakeModule("base.js", map[SourceType]float64{SourceTypeJavaScript: 33.5}))
		before := mg.Sizes.Clone()

		mod := newFakeModule("extra.js", map[SourceType]float64{
			SourceTypeJavaScript: 100.25,
			SourceTypeCSS:        7,
		})
		mg.AddModule(mod)
		mg.RemoveModule(mod)

		assert.Equal(t, before[SourceTypeJavaScript], mg.Sizes[SourceTypeJavaScript])
		assert.Equal(t, before[SourceTypeCSS], mg.Sizes[SourceTypeCSS])
		assert.Len(t, mg.Modules, 1)
	})

	t.Run("removing an absent module is a no-op", func(t *testing.T) {
		mg := NewModuleGroup("vendors", 0, 0)
		mg.AddModule(newFakeModule("a.js", map[SourceType]float64{SourceTypeJavaScript: 100}))

		mg.RemoveModule(newFakeModule("missing.js", map[SourceType]float64{SourceTypeJavaScript: 999}))

		assert.Len(t, mg.Modules, 1)
		assert.Equal(t, 100.0, mg.Sizes[SourceTypeJavaScript],
			"sizes must not change when membership did not change")
	})

	t.Run("clamps floating-point drift at zero", func(t *testing.T) {
		mg := NewModuleGroup("vendors", 0, 0)
		mod := newFakeModule("a.js", map[SourceType]float64{SourceTypeJavaScript: 40})
		mg.AddModule(mod)

		// Simulate accumulated rounding error that would push the total
		// slightly below the module's own size.
		mg.Sizes[SourceTypeJavaScript] = 40 - 1e-9

		mg.RemoveModule(mod)

		assert.Equal(t, 0.0, mg.Sizes[SourceTypeJavaScript],
			"a negative remainder is accounting noise and must clamp to zero")
	})
}

// TestModuleGroupSizeInvariant drives a randomized add/remove sequence and
// checks after every step that the size table equals an independently
// recomputed per-category sum over the current members, and that no value
// ever goes negative.
func TestModuleGroupSizeInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	mods := make([]*fakeModule, 0, 16)
	for i := 0; i < 16; i++ {
		sizes := map[SourceType]float64{
			SourceTypeJavaScript: float64(rng.Intn(5000)) + rng.Float64(),
		}
		if i%3 == 0 {
			sizes[SourceTypeCSS] = float64(rng.Intn(500)) + rng.Float64()
		}
		mods = append(mods, &fakeModule{
			id:    ModuleIdentifier(string(rune('a' + i)) + ".js"),
			sizes: sizes,
		})
	}

	mg := NewModuleGroup("app", 0, 0)
	for step := 0; step < 500; step++ {
		mod := mods[rng.Intn(len(mods))]
		if rng.Intn(2) == 0 {
			mg.AddModule(mod)
		} else {
			mg.RemoveModule(mod)
		}

		expected := NewSplitChunkSizes()
		for _, m := range mods {
			if _, ok := mg.Modules[m.id]; !ok {
				continue
			}
			for ty, size := range m.sizes {
				expected[ty] += size
			}
		}
		for ty, size := range mg.Sizes {
			assert.GreaterOrEqual(t, size, 0.0, "step %d: %s went negative", step, ty)
			assert.InDelta(t, expected[ty], size, 1e-6,
				"step %d: %s diverged from the membership sum", step, ty)
		}
	}
}

func TestModuleGroupChunks(t *testing.T) {
	mg := NewModuleGroup("shared", 0, 0)

	mg.AddChunk(1)
	mg.AddChunk(2)
	mg.AddChunk(1)
	assert.Len(t, mg.Chunks, 2, "chunk registration is idempotent")

	mg.RemoveChunk(2)
	mg.RemoveChunk(99)
	assert.Len(t, mg.Chunks, 1)
}

func TestModuleGroupSummary(t *testing.T) {
	mg := NewModuleGroup("vendors", 0, 20)
	mg.AddModule(newFakeModule("a.js", map[SourceType]float64{SourceTypeJavaScript: 1234.5}))
	mg.AddChunk(7)

	out := mg.Summary()

	assert.Contains(t, out, `"vendors"`)
	assert.Contains(t, out, "20")
	assert.Contains(t, out, "javascript")
	assert.NotContains(t, out, "a.js", "the module set must stay out of diagnostics")
}
