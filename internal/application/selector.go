package application

import "github.com/ahrav/go-splitchunks/internal/domain"

// bestEntry returns the index of the highest-ranked candidate under
// domain.CompareEntries, or -1 for an empty slice.
//
// Candidates are scanned in slice order and a later candidate replaces the
// incumbent only on a strictly positive comparison. A zero comparison means
// "no preference" (identical module sets), so the first-seen candidate is
// kept and selection stays stable regardless of how the slice was produced.
func bestEntry(groups []*domain.ModuleGroup) int {
	best := -1
	for i, g := range groups {
		if best < 0 || domain.CompareEntries(g, groups[best]) > 0 {
			best = i
		}
	}
	return best
}
