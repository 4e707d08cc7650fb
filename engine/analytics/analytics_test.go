package analytics

import (
	"strings"
	"testing"
)

func TestTokenize(t *testing.T) {
	tokens := Tokenize("Don't stop -- Believing! (circa 1981)")
	want := []string{"dont", "stop", "believing", "circa", "1981"}
	if len(tokens) != len(want) {
		t.Fatalf("tokens = %v", tokens)
	}
	for i, w := range want {
		if tokens[i] != w {
			t.Fatalf("token[%d] = %q, want %q", i, tokens[i], w)
		}
	}
}

func TestTokenizeEmpty(t *testing.T) {
	if got := Tokenize(""); got != nil {
		t.Fatalf("empty input should yield nil, got %v", got)
	}
}

func TestIsStopwordApostropheStripped(t *testing.T) {
	// Tokenize produces "dont"; the stopword set must match that form.
	if !IsStopword("dont") {
		t.Fatal("dont should be a stopword")
	}
	if IsStopword("grace") {
		t.Fatal("grace should not be a stopword")
	}
}

func TestSplitSentences(t *testing.T) {
	got := SplitSentences("First one. Second one! Third one?\nFourth")
	if len(got) != 4 {
		t.Fatalf("sentences = %v", got)
	}
	if got[3] != "Fourth" {
		t.Fatalf("trailing sentence = %q", got[3])
	}
}

func TestSplitSentencesNoFalseSplit(t *testing.T) {
	// A period not followed by whitespace does not end a sentence.
	got := SplitSentences("Visit example.com for details. Done.")
	if len(got) != 2 {
		t.Fatalf("sentences = %v", got)
	}
}

func TestWordStatsZeroSentences(t *testing.T) {
	s := WordStats("")
	if s.WordCount != 0 || s.SentenceCount != 0 || s.AvgWordsPerSentence != 0 || s.UniqueWords != 0 {
		t.Fatalf("stats = %+v, want zeroes", s)
	}
}

func TestWordStats(t *testing.T) {
	s := WordStats("Grace is central. Grace saves. Amen.")
	if s.WordCount != 6 {
		t.Fatalf("WordCount = %d, want 6", s.WordCount)
	}
	if s.SentenceCount != 3 {
		t.Fatalf("SentenceCount = %d, want 3", s.SentenceCount)
	}
	if s.AvgWordsPerSentence != 2 {
		t.Fatalf("Avg = %v, want 2", s.AvgWordsPerSentence)
	}
	// grace, central, saves, amen ("is" is a stopword).
	if s.UniqueWords != 4 {
		t.Fatalf("UniqueWords = %d, want 4", s.UniqueWords)
	}
}

func TestKeywordsTopNAndTieBreak(t *testing.T) {
	got := Keywords("Grace is central. Grace saves. Amen.", KeywordOpts{TopN: 2})
	if len(got) != 2 {
		t.Fatalf("keywords = %v", got)
	}
	if got[0].Word != "grace" || got[0].Count != 2 {
		t.Fatalf("top keyword = %+v", got[0])
	}
	// Ties broken by first-encountered order: "central" precedes "saves" and "amen".
	if got[1].Word != "central" || got[1].Count != 1 {
		t.Fatalf("second keyword = %+v", got[1])
	}
}

func TestKeywordsCountsNonIncreasing(t *testing.T) {
	text := "alpha alpha alpha beta beta gamma delta delta delta delta"
	got := Keywords(text, KeywordOpts{})
	for i := 1; i < len(got); i++ {
		if got[i].Count > got[i-1].Count {
			t.Fatalf("counts not non-increasing at %d: %v", i, got)
		}
	}
	if got[0].Word != "delta" || got[0].Count != 4 {
		t.Fatalf("top = %+v", got[0])
	}
}

func TestKeywordsMinLength(t *testing.T) {
	got := Keywords("go go go golang golang", KeywordOpts{MinLength: 3})
	if len(got) != 1 || got[0].Word != "golang" {
		t.Fatalf("keywords = %v", got)
	}
}

func TestKeywordsEmptyInput(t *testing.T) {
	if got := Keywords("", KeywordOpts{}); len(got) != 0 {
		t.Fatalf("expected empty, got %v", got)
	}
}

func TestWordFrequencyThreshold(t *testing.T) {
	got := WordFrequency("grace grace mercy peace peace peace", 2)
	for _, wc := range got {
		if wc.Count < 2 {
			t.Fatalf("count below threshold: %+v", wc)
		}
	}
	if len(got) != 2 {
		t.Fatalf("frequency = %v", got)
	}
}

func TestKeyPhrasesLengthBounds(t *testing.T) {
	// "the" breaks the first sentence into a 3-word and a 2-word run; the
	// 4-word run in the second sentence is dropped.
	text := "Amazing grace saves the weary sinner. Amazing grace saves weary sinners."
	got := KeyPhrases(text, 2, 3)
	if len(got) == 0 {
		t.Fatal("expected phrases")
	}
	for _, pc := range got {
		n := len(strings.Fields(pc.Phrase))
		if n < 2 || n > 3 {
			t.Fatalf("phrase length out of bounds: %q", pc.Phrase)
		}
	}
	if got[0].Phrase != "amazing grace saves" || got[0].Count != 1 {
		t.Fatalf("top phrase = %+v", got[0])
	}
}

func TestKeyPhrasesRunBrokenByPunctuation(t *testing.T) {
	got := KeyPhrases("Amazing grace, wonderful mercy.", 2, 2)
	if len(got) != 2 {
		t.Fatalf("phrases = %v", got)
	}
	if got[0].Phrase != "amazing grace" || got[1].Phrase != "wonderful mercy" {
		t.Fatalf("phrases = %v", got)
	}
}

func TestKeyPhrasesAggregatesAcrossSentences(t *testing.T) {
	text := "Amazing grace. Amazing grace. Something else entirely here now."
	got := KeyPhrases(text, 2, 2)
	if len(got) == 0 || got[0].Phrase != "amazing grace" || got[0].Count != 2 {
		t.Fatalf("phrases = %v", got)
	}
}

func TestKeyPhrasesRunBrokenByStopword(t *testing.T) {
	// "grace" and "mercy" are separated by the stopword "and"; the runs are
	// single words, below minWords=2.
	got := KeyPhrases("grace and mercy", 2, 4)
	if len(got) != 0 {
		t.Fatalf("expected no phrases, got %v", got)
	}
}

func TestKeyPhrasesEmptyInput(t *testing.T) {
	if got := KeyPhrases("", 1, 3); len(got) != 0 {
		t.Fatalf("expected empty, got %v", got)
	}
}

func TestSegmentsExhaustiveAndOrdered(t *testing.T) {
	text := "one two three four five six seven"
	segs := Segments(text, 3)
	if len(segs) != 3 {
		t.Fatalf("segments = %v", segs)
	}
	for i, s := range segs[:len(segs)-1] {
		if n := len(strings.Fields(s)); n != 3 {
			t.Fatalf("segment %d has %d words", i, n)
		}
	}
	// Concatenating all segments reconstructs the tokenized input.
	joined := strings.Fields(strings.Join(segs, " "))
	orig := strings.Fields(text)
	if len(joined) != len(orig) {
		t.Fatal("segmentation lost tokens")
	}
	for i := range orig {
		if joined[i] != orig[i] {
			t.Fatalf("token %d = %q, want %q", i, joined[i], orig[i])
		}
	}
}

func TestSegmentsEdgeCases(t *testing.T) {
	if got := Segments("", 5); got != nil {
		t.Fatalf("empty text should yield nil, got %v", got)
	}
	if got := Segments("a b c", 0); got != nil {
		t.Fatalf("non-positive length should yield nil, got %v", got)
	}
	if got := Segments("a b", 10); len(got) != 1 || got[0] != "a b" {
		t.Fatalf("short text should yield one segment, got %v", got)
	}
}
