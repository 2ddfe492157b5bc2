package ports

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ahrav/go-splitchunks/internal/domain"
)

// stubGraph is a minimal ModuleGraph used to verify the interface contract.
type stubGraph struct {
	chunks map[domain.ModuleIdentifier][]domain.ChunkKey
}

func (g *stubGraph) Modules() []domain.Module { return nil }

func (g *stubGraph) ChunksOf(id domain.ModuleIdentifier) []domain.ChunkKey {
	return g.chunks[id]
}

var _ ModuleGraph = (*stubGraph)(nil)

func TestModuleGraphContract(t *testing.T) {
	g := &stubGraph{chunks: map[domain.ModuleIdentifier][]domain.ChunkKey{
		"src/app.js": {1, 2},
	}}

	assert.Equal(t, []domain.ChunkKey{1, 2}, g.ChunksOf("src/app.js"))
	assert.Empty(t, g.ChunksOf("unknown"),
		"unknown identifiers must yield an empty slice, not an error")
}
