// Package youtube extracts YouTube identifiers from URLs and talks to the
// transcript and Data API endpoints.
package youtube

import (
	"fmt"
	"regexp"

	"sermonscribe/engine/domain"
)

// Video ID patterns in priority order. Each captures exactly 11 ID chars and
// tolerates trailing query parameters or fragments.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[?&]v=([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`embed/([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`youtu\.be/([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`shorts/([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`/([0-9A-Za-z_-]{11})(?:[?&#/]|$)`),
}

var playlistIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[?&]list=([0-9A-Za-z_-]+)`),
	regexp.MustCompile(`playlist/([0-9A-Za-z_-]+)`),
}

// ExtractVideoID parses a YouTube URL into its 11-character video ID.
// Pure function, no I/O.
func ExtractVideoID(rawURL string) (string, error) {
	for _, p := range videoIDPatterns {
		if m := p.FindStringSubmatch(rawURL); m != nil {
			return m[1], nil
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrInvalidURL, rawURL)
}

// ExtractPlaylistID parses a YouTube URL into its playlist ID.
func ExtractPlaylistID(rawURL string) (string, error) {
	for _, p := range playlistIDPatterns {
		if m := p.FindStringSubmatch(rawURL); m != nil {
			return m[1], nil
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrInvalidURL, rawURL)
}
