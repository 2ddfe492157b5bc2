// Package ports defines the interfaces the split-chunks optimizer requires
// from its collaborators and offers to its infrastructure.
package ports

import "github.com/ahrav/go-splitchunks/internal/domain"

// ModuleGraph is the read-only view of the build's module and chunk graphs
// that the optimizer consumes. The graph itself is owned by the caller; the
// optimizer never mutates it and holds no reference past a single pass.
type ModuleGraph interface {
	// Modules enumerates every module eligible for splitting. The order of
	// the returned slice carries no meaning; the optimizer canonicalizes it.
	Modules() []domain.Module

	// ChunksOf reports the keys of the chunks that currently contain the
	// module. An unknown identifier yields an empty slice.
	ChunksOf(id domain.ModuleIdentifier) []domain.ChunkKey
}
