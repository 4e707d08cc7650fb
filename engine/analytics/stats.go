package analytics

import "strings"

// Stats summarizes a transcript's basic word statistics.
type Stats struct {
	WordCount           int     `json:"word_count"`
	SentenceCount       int     `json:"sentence_count"`
	AvgWordsPerSentence float64 `json:"avg_words_per_sentence"`
	UniqueWords         int     `json:"unique_words"`
}

// WordStats computes word and sentence counts for text. WordCount counts all
// whitespace-separated tokens before any filtering; UniqueWords counts
// distinct non-stopword alphanumeric tokens. Zero sentences yields Avg 0.
func WordStats(text string) Stats {
	words := strings.Fields(text)
	sentences := SplitSentences(text)

	unique := make(map[string]struct{})
	for _, t := range Tokenize(text) {
		if IsStopword(t) {
			continue
		}
		unique[t] = struct{}{}
	}

	var avg float64
	if len(sentences) > 0 {
		avg = float64(len(words)) / float64(len(sentences))
	}

	return Stats{
		WordCount:           len(words),
		SentenceCount:       len(sentences),
		AvgWordsPerSentence: avg,
		UniqueWords:         len(unique),
	}
}
