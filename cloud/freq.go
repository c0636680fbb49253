package cloud

import (
	"sort"
	"strings"
)

// WordCount is a raw occurrence count for one word.
type WordCount struct {
	Word  string
	Count int
}

// Frequencies counts whitespace-delimited words in text. Counting is
// case-insensitive; the first-seen casing of each word is surfaced. The
// result is ordered by count descending, ties by first occurrence in the
// text, and capped at maxWords entries. This emission order is what
// downstream summarization relies on for stable tie-breaking.
func Frequencies(text string, maxWords int) []WordCount {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return nil
	}

	counts := make(map[string]int, len(tokens))
	casing := make(map[string]string, len(tokens))
	var order []string

	for _, tok := range tokens {
		key := strings.ToLower(tok)
		if _, seen := counts[key]; !seen {
			order = append(order, key)
			casing[key] = tok
		}
		counts[key]++
	}

	out := make([]WordCount, 0, len(order))
	for _, key := range order {
		out = append(out, WordCount{Word: casing[key], Count: counts[key]})
	}

	// Stable: ties keep first-occurrence order.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})

	if maxWords > 0 && len(out) > maxWords {
		out = out[:maxWords]
	}
	return out
}

// Weights normalizes counts to relative frequencies in (0, 1]: each count
// divided by the largest count. Order is preserved.
func Weights(counts []WordCount) []WeightedWord {
	if len(counts) == 0 {
		return nil
	}
	max := counts[0].Count
	for _, c := range counts {
		if c.Count > max {
			max = c.Count
		}
	}
	out := make([]WeightedWord, len(counts))
	for i, c := range counts {
		out[i] = WeightedWord{Word: c.Word, Weight: float64(c.Count) / float64(max)}
	}
	return out
}
