// Package domain contains pure, dependency-free domain models for the
// split-chunks optimizer: candidate module groups, incremental size
// accounting, and the deterministic comparator that ranks competing
// candidates.
package domain

// SourceType classifies the output a module contributes to, such as
// JavaScript or CSS. Sizes are tracked per source type because a single
// module can emit more than one kind of output.
type SourceType string

// Source types commonly emitted by bundled modules. The type is open:
// callers may introduce their own categories and the accounting treats them
// uniformly.
const (
	SourceTypeJavaScript SourceType = "javascript"
	SourceTypeCSS        SourceType = "css"
)

// SplitChunkSizes accumulates an estimated byte count per source type.
// Values are float64 because upstream module sizes are estimates rather than
// exact integral byte counts; switching to integers would silently change
// comparator results downstream.
type SplitChunkSizes map[SourceType]float64

// NewSplitChunkSizes returns an empty size table.
func NewSplitChunkSizes() SplitChunkSizes {
	return make(SplitChunkSizes)
}

// Clone returns an independent copy of the size table.
// Mutating the copy never affects the original.
func (s SplitChunkSizes) Clone() SplitChunkSizes {
	out := make(SplitChunkSizes, len(s))
	for ty, size := range s {
		out[ty] = size
	}
	return out
}

// Total returns the sum of sizes across every source type.
func (s SplitChunkSizes) Total() float64 {
	var total float64
	for _, size := range s {
		total += size
	}
	return total
}

// Combine adds every entry of other into s, creating entries as needed.
func (s SplitChunkSizes) Combine(other SplitChunkSizes) {
	for ty, size := range other {
		s[ty] += size
	}
}
