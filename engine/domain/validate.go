package domain

import "strings"

// videoIDLen is the fixed length of a YouTube video identifier.
const videoIDLen = 11

// ValidVideoID reports whether s is a well-formed 11-char YouTube video ID.
func ValidVideoID(s string) bool {
	if len(s) != videoIDLen {
		return false
	}
	for _, r := range s {
		if !isIDChar(r) {
			return false
		}
	}
	return true
}

func isIDChar(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_' || r == '-':
		return true
	}
	return false
}

// FilterCategories keeps only entries present in the fixed vocabulary for each
// axis, preserving order and dropping duplicates case-insensitively.
func FilterCategories(cs CategorySet) CategorySet {
	return CategorySet{
		ChristianLife:  filterAgainst(cs.ChristianLife, ChristianLifeCategories),
		ChurchMinistry: filterAgainst(cs.ChurchMinistry, ChurchMinistryCategories),
		Theology:       filterAgainst(cs.Theology, TheologyCategories),
	}
}

func filterAgainst(got, vocab []string) []string {
	canonical := make(map[string]string, len(vocab))
	for _, v := range vocab {
		canonical[strings.ToLower(v)] = v
	}
	seen := make(map[string]struct{})
	var out []string
	for _, g := range got {
		key := strings.ToLower(strings.TrimSpace(g))
		c, ok := canonical[key]
		if !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}
