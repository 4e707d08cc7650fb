package analytics

import (
	"sort"
	"strings"
	"unicode"
)

// phraseTopN bounds the number of key phrases returned.
const phraseTopN = 10

// PhraseCount pairs a phrase with its document frequency.
type PhraseCount struct {
	Phrase string `json:"phrase"`
	Count  int    `json:"count"`
}

// KeyPhrases extracts contiguous runs of non-stopword tokens within each
// sentence. A run is emitted when broken by a stopword or punctuation, or at
// sentence end, provided its length is within [minWords, maxWords] inclusive.
// Frequencies aggregate across the whole document; the top 10 by count are
// returned with first-encountered tie-break.
func KeyPhrases(text string, minWords, maxWords int) []PhraseCount {
	if minWords <= 0 {
		minWords = 1
	}
	if maxWords < minWords {
		return nil
	}

	index := make(map[string]int)
	var counts []PhraseCount

	emit := func(run []string) {
		if len(run) < minWords || len(run) > maxWords {
			return
		}
		p := strings.Join(run, " ")
		if i, ok := index[p]; ok {
			counts[i].Count++
			return
		}
		index[p] = len(counts)
		counts = append(counts, PhraseCount{Phrase: p, Count: 1})
	}

	for _, sentence := range SplitSentences(text) {
		// Punctuation flushes a run the same way a stopword does, so
		// "amazing grace, wonderful mercy" yields two phrases, not one.
		for _, clause := range splitOnPunct(sentence) {
			var run []string
			for _, t := range Tokenize(clause) {
				if IsStopword(t) {
					emit(run)
					run = nil
					continue
				}
				run = append(run, t)
			}
			emit(run)
		}
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if len(counts) > phraseTopN {
		counts = counts[:phraseTopN]
	}
	return counts
}

// splitOnPunct splits a sentence at punctuation. Whitespace and apostrophes
// are not breaks; Tokenize handles those within a clause.
func splitOnPunct(sentence string) []string {
	return strings.FieldsFunc(sentence, func(r rune) bool {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return false
		}
		return r != '\'' && r != '’'
	})
}
