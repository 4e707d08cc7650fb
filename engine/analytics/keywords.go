package analytics

import "sort"

// WordCount pairs a word with its frequency.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// KeywordOpts tunes keyword extraction.
type KeywordOpts struct {
	// TopN bounds the number of keywords returned. Defaults to 10.
	TopN int
	// MinLength drops tokens shorter than this many runes.
	MinLength int
}

// Keywords extracts the TopN most frequent non-stopword tokens, ordered by
// descending count. Ties are broken by first-encountered order in the text;
// this is the documented deterministic tie-break.
func Keywords(text string, opts KeywordOpts) []WordCount {
	if opts.TopN <= 0 {
		opts.TopN = 10
	}
	counts := countTokens(text, opts.MinLength)
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if len(counts) > opts.TopN {
		counts = counts[:opts.TopN]
	}
	return counts
}

// WordFrequency returns every (word, count) pair with count >= minCount.
// Order is not part of the contract; in practice pairs appear in
// first-encountered order.
func WordFrequency(text string, minCount int) []WordCount {
	var out []WordCount
	for _, wc := range countTokens(text, 0) {
		if wc.Count >= minCount {
			out = append(out, wc)
		}
	}
	return out
}

// countTokens counts non-stopword tokens in first-encountered order.
func countTokens(text string, minLength int) []WordCount {
	index := make(map[string]int)
	var counts []WordCount
	for _, t := range ContentTokens(text, minLength) {
		if i, ok := index[t]; ok {
			counts[i].Count++
			continue
		}
		index[t] = len(counts)
		counts = append(counts, WordCount{Word: t, Count: 1})
	}
	return counts
}
