// Package report turns the layout engine's weighted words into a ranked
// frequency table.
package report

import (
	"sort"

	"github.com/hazyhaar/nuage/cloud"
)

// Report is an ordered frequency table: weight descending, ties in the
// order the engine emitted them.
type Report struct {
	Words []cloud.WeightedWord `json:"words"`
}

// Summarize sorts the engine output by weight descending. The sort is
// stable, so equal weights keep their input (engine emission) order. No
// entry is dropped and no weight is recomputed — summarization orders,
// nothing more.
func Summarize(words []cloud.WeightedWord) Report {
	sorted := make([]cloud.WeightedWord, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Weight > sorted[j].Weight
	})
	return Report{Words: sorted}
}

// Top returns the first n rows (or all of them when fewer).
func (r Report) Top(n int) []cloud.WeightedWord {
	if n < 0 {
		n = 0
	}
	if n > len(r.Words) {
		n = len(r.Words)
	}
	return r.Words[:n]
}
