package analytics

import "strings"

// Segments greedily partitions the whitespace-split tokens of text into
// consecutive chunks of exactly segmentLength words; the last chunk may be
// shorter. Despite the transcript source carrying per-cue timestamps, this is
// pure word-count segmentation: timestamps are discarded during formatting
// before this stage runs.
func Segments(text string, segmentLength int) []string {
	if segmentLength <= 0 {
		return nil
	}
	words := strings.Fields(text)
	var out []string
	for i := 0; i < len(words); i += segmentLength {
		end := i + segmentLength
		if end > len(words) {
			end = len(words)
		}
		out = append(out, strings.Join(words[i:end], " "))
	}
	return out
}
