// Package analytics derives statistics, keywords, key phrases, and segments
// from transcript text. All functions are pure and degrade to zeroed or empty
// results on empty input.
package analytics

import (
	"strings"
	"unicode"
)

// Tokenize lower-cases text and extracts alphanumeric word tokens. Internal
// apostrophes are stripped ("don't" → "dont") so contractions survive as one
// token; every other non-alphanumeric rune is a separator. Stopwords are kept;
// callers filter as needed.
func Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			current.WriteRune(r)
		case r == '\'' || r == '’':
			// Strip apostrophes without breaking the token.
		default:
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}

// ContentTokens returns non-stopword tokens of at least minLength runes.
func ContentTokens(text string, minLength int) []string {
	var out []string
	for _, t := range Tokenize(text) {
		if IsStopword(t) {
			continue
		}
		if len([]rune(t)) < minLength {
			continue
		}
		out = append(out, t)
	}
	return out
}

// SplitSentences splits text into sentences on ./!/?/newline, using a
// lookahead so abbreviating periods mid-token do not split.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' || r == '\n' {
			if r == '\n' || i == len(text)-1 || (i+1 < len(text) && unicode.IsSpace(rune(text[i+1]))) {
				if s := strings.TrimSpace(current.String()); s != "" {
					sentences = append(sentences, s)
				}
				current.Reset()
			}
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}
