package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sermonscribe/engine/domain"
)

// rewriteTransport rewrites all request URLs to point at the test server.
type rewriteTransport struct {
	base    http.RoundTripper
	baseURL string
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	newURL := fmt.Sprintf("%s%s", t.baseURL, req.URL.RequestURI())
	newReq, err := http.NewRequestWithContext(req.Context(), req.Method, newURL, req.Body)
	if err != nil {
		return nil, err
	}
	newReq.Header = req.Header
	if t.base != nil {
		return t.base.RoundTrip(newReq)
	}
	return http.DefaultTransport.RoundTrip(newReq)
}

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("testkey", 0)
	c.httpClient = srv.Client()
	c.httpClient.Transport = &rewriteTransport{base: c.httpClient.Transport, baseURL: srv.URL}
	return c
}

func TestVideoMetadata(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{"snippet": map[string]any{"title": "Sunday Sermon", "description": "desc"}},
			},
		})
	})

	meta, err := c.VideoMetadata(context.Background(), "dQw4w9WgXcQ").Unwrap()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Title != "Sunday Sermon" || meta.VideoID != "dQw4w9WgXcQ" {
		t.Fatalf("meta = %+v", meta)
	}
}

func TestVideoMetadataNotFound(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"items": []any{}})
	})

	_, err := c.VideoMetadata(context.Background(), "missing_vid").Unwrap()
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestVideoMetadataRateLimited(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := c.VideoMetadata(context.Background(), "dQw4w9WgXcQ").Unwrap()
	if !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestVideoMetadataNoAPIKey(t *testing.T) {
	c := NewClient("", 0)
	if c.VideoMetadata(context.Background(), "dQw4w9WgXcQ").IsOk() {
		t.Fatal("expected error without API key")
	}
}

func TestPlaylistVideosFollowsPages(t *testing.T) {
	page := 0
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		page++
		resp := map[string]any{
			"items": []map[string]any{
				{"snippet": map[string]any{
					"title":      fmt.Sprintf("Video %d", page),
					"resourceId": map[string]any{"videoId": fmt.Sprintf("vid%08d", page)},
				}},
			},
		}
		if page == 1 {
			if r.URL.Query().Get("pageToken") != "" {
				t.Error("first request should not carry a page token")
			}
			resp["nextPageToken"] = "page2"
		} else if r.URL.Query().Get("pageToken") != "page2" {
			t.Errorf("second request pageToken = %q", r.URL.Query().Get("pageToken"))
		}
		json.NewEncoder(w).Encode(resp)
	})

	entries, err := c.PlaylistVideos(context.Background(), "PL123").Unwrap()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %v", entries)
	}
	if entries[0].Title != "Video 1" || entries[1].Title != "Video 2" {
		t.Fatalf("wrong order: %v", entries)
	}
}

func TestPlaylistVideosEmpty(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"items": []any{}})
	})

	_, err := c.PlaylistVideos(context.Background(), "PLempty").Unwrap()
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFetchTranscriptLegacyFormat(t *testing.T) {
	transcript := `<?xml version="1.0" encoding="utf-8"?>
<transcript>
  <text start="0.0" dur="2.0">Hello world</text>
  <text start="2.0" dur="1.5">[Music] this is a test</text>
</transcript>`

	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "youtubei") {
			json.NewEncoder(w).Encode(map[string]any{
				"captions": map[string]any{
					"playerCaptionsTracklistRenderer": map[string]any{
						"captionTracks": []map[string]any{
							{"baseUrl": "https://www.youtube.com/api/timedtext?v=test", "languageCode": "en"},
						},
					},
				},
			})
			return
		}
		w.Write([]byte(transcript))
	})

	res, err := c.Transcript(context.Background(), "test1234567").Unwrap()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(res.Text, "Hello world") {
		t.Fatalf("text = %q", res.Text)
	}
	if strings.Contains(res.Text, "[Music]") {
		t.Error("bracket noise should be removed")
	}
	if len(res.Cues) != 2 {
		t.Fatalf("cues = %v", res.Cues)
	}
	if res.Cues[1].Start != 2.0 || res.Cues[1].Duration != 1.5 {
		t.Fatalf("cue timing = %+v", res.Cues[1])
	}
}

func TestFetchTranscriptSrv3Format(t *testing.T) {
	transcript := `<?xml version="1.0" encoding="utf-8"?>
<timedtext><body>
  <p t="0" d="2000">First cue here</p>
  <p t="2000" d="1500">Second cue here</p>
</body></timedtext>`

	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "youtubei") {
			json.NewEncoder(w).Encode(map[string]any{
				"captions": map[string]any{
					"playerCaptionsTracklistRenderer": map[string]any{
						"captionTracks": []map[string]any{
							{"baseUrl": "https://www.youtube.com/api/timedtext?v=test", "languageCode": "en"},
						},
					},
				},
			})
			return
		}
		w.Write([]byte(transcript))
	})

	res, err := c.Transcript(context.Background(), "test1234567").Unwrap()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Text != "First cue here Second cue here" {
		t.Fatalf("text = %q", res.Text)
	}
	if res.Cues[0].Duration != 2.0 {
		t.Fatalf("srv3 millisecond conversion: %+v", res.Cues[0])
	}
}

func TestFetchTranscriptNoCaptions(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{}) // no captions key
	})

	_, err := c.Transcript(context.Background(), "nocaptions1").Unwrap()
	if !errors.Is(err, domain.ErrNoTranscript) {
		t.Fatalf("expected ErrNoTranscript, got %v", err)
	}
}

func TestCleanTranscript(t *testing.T) {
	in := "[Music]  it&#39;s   grace &amp; truth  [Applause]"
	want := "it's grace & truth"
	if got := CleanTranscript(in); got != want {
		t.Fatalf("CleanTranscript = %q, want %q", got, want)
	}
}
