package domain

import "slices"

// CompareEntries imposes a deterministic total order over candidate module
// groups. It returns a positive value when a outranks b, a negative value
// when b outranks a, and zero only when the two candidates are truly
// indistinguishable, which requires identical module sets. Callers must
// treat a zero result as "no preference" and keep their first-seen
// candidate so consumption stays stable.
//
// Tie-breaks run in fixed order; the first non-zero rung decides:
//
//  1. higher cache group priority
//  2. more distinct requesting chunks
//  3. earlier-declared cache group (smaller index)
//  4. more member modules
//  5. lexicographically greater sorted identifier sequence
//
// The final rung exists purely to force a total order over candidates with
// distinct module sets: without it, two candidates with identical aggregate
// statistics would be unorderable and any downstream sort or priority queue
// would become iteration-order dependent. All rungs compare exactly; no
// epsilon tolerance is applied, since priorities and sizes are exact
// configuration literals or exact sums of discrete estimates.
//
// CompareEntries never mutates its arguments. Its only allocations are the
// two sorted identifier slices in the final rung.
func CompareEntries(a, b *ModuleGroup) float64 {
	// 1. by priority
	if diff := a.CacheGroupPriority - b.CacheGroupPriority; diff != 0 {
		return diff
	}

	// 2. by number of requesting chunks
	if diff := float64(len(a.Chunks)) - float64(len(b.Chunks)); diff != 0 {
		return diff
	}

	// 3. by cache group index, inverted: the earlier declaration outranks
	if diff := float64(b.CacheGroupIndex) - float64(a.CacheGroupIndex); diff != 0 {
		return diff
	}

	// 4. by number of modules, so rung 5 compares equal-length sequences
	if diff := float64(len(a.Modules)) - float64(len(b.Modules)); diff != 0 {
		return diff
	}

	// 5. by canonical identifier order
	return float64(slices.Compare(a.sortedIdentifiers(), b.sortedIdentifiers()))
}

// sortedIdentifiers returns the member identifiers in ascending order,
// giving the set a canonical sequence independent of map iteration order.
func (mg *ModuleGroup) sortedIdentifiers() []ModuleIdentifier {
	ids := make([]ModuleIdentifier, 0, len(mg.Modules))
	for id := range mg.Modules {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
