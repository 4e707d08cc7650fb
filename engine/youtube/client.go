package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"sermonscribe/engine/domain"
	"sermonscribe/pkg/fn"
)

// playlistPageSize is the Data API maximum per page.
const playlistPageSize = 50

// Client talks to the YouTube Data API v3 for metadata and playlist
// enumeration, and to the innertube endpoint for transcripts.
type Client struct {
	apiKey      string
	rateLimiter *rate.Limiter
	httpClient  *http.Client
}

// NewClient creates a YouTube client with the given Data API key.
// requestsPerSecond caps outbound Data API calls; values <= 0 fall back to 5.
func NewClient(apiKey string, requestsPerSecond float64) *Client {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 5
	}
	return &Client{
		apiKey:      apiKey,
		rateLimiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 5),
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

// VideoMeta holds video metadata from the Data API.
type VideoMeta struct {
	VideoID     string `json:"video_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// PlaylistEntry is one (video_id, title) pair from a playlist.
type PlaylistEntry struct {
	VideoID string `json:"video_id"`
	Title   string `json:"title"`
}

// videosResponse is the Data API videos.list response.
type videosResponse struct {
	Items []struct {
		Snippet struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		} `json:"snippet"`
	} `json:"items"`
}

// playlistItemsResponse is the Data API playlistItems.list response.
type playlistItemsResponse struct {
	NextPageToken string         `json:"nextPageToken"`
	Items         []playlistItem `json:"items"`
}

type playlistItem struct {
	Snippet struct {
		Title      string `json:"title"`
		ResourceID struct {
			VideoID string `json:"videoId"`
		} `json:"resourceId"`
	} `json:"snippet"`
}

// VideoMetadata fetches title and description for a video. Absent videos map
// to domain.ErrNotFound.
func (c *Client) VideoMetadata(ctx context.Context, videoID string) fn.Result[VideoMeta] {
	if c.apiKey == "" {
		return fn.Err[VideoMeta](fmt.Errorf("YouTube API key required"))
	}
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fn.Err[VideoMeta](err)
	}

	params := url.Values{
		"part": {"snippet"},
		"id":   {videoID},
		"key":  {c.apiKey},
	}

	body, err := c.get(ctx, "https://www.googleapis.com/youtube/v3/videos?"+params.Encode())
	if err != nil {
		return fn.Err[VideoMeta](err)
	}

	var vr videosResponse
	if err := json.Unmarshal(body, &vr); err != nil {
		return fn.Err[VideoMeta](err)
	}
	if len(vr.Items) == 0 {
		return fn.Err[VideoMeta](fmt.Errorf("%w: video %s", domain.ErrNotFound, videoID))
	}

	return fn.Ok(VideoMeta{
		VideoID:     videoID,
		Title:       vr.Items[0].Snippet.Title,
		Description: vr.Items[0].Snippet.Description,
	})
}

// PlaylistVideos enumerates all (video_id, title) pairs of a playlist,
// following page tokens until exhausted.
func (c *Client) PlaylistVideos(ctx context.Context, playlistID string) fn.Result[[]PlaylistEntry] {
	if c.apiKey == "" {
		return fn.Err[[]PlaylistEntry](fmt.Errorf("YouTube API key required"))
	}

	var entries []PlaylistEntry
	pageToken := ""

	for {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fn.Err[[]PlaylistEntry](err)
		}

		params := url.Values{
			"part":       {"snippet"},
			"playlistId": {playlistID},
			"maxResults": {strconv.Itoa(playlistPageSize)},
			"key":        {c.apiKey},
		}
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		body, err := c.get(ctx, "https://www.googleapis.com/youtube/v3/playlistItems?"+params.Encode())
		if err != nil {
			return fn.Err[[]PlaylistEntry](err)
		}

		var pr playlistItemsResponse
		if err := json.Unmarshal(body, &pr); err != nil {
			return fn.Err[[]PlaylistEntry](err)
		}

		entries = append(entries, fn.Map(pr.Items, func(it playlistItem) PlaylistEntry {
			return PlaylistEntry{
				VideoID: it.Snippet.ResourceID.VideoID,
				Title:   it.Snippet.Title,
			}
		})...)

		if pr.NextPageToken == "" {
			break
		}
		pageToken = pr.NextPageToken
	}

	if len(entries) == 0 {
		return fn.Err[[]PlaylistEntry](fmt.Errorf("%w: playlist %s", domain.ErrNotFound, playlistID))
	}
	return fn.Ok(entries)
}

// Transcript fetches cues and flattened text for a video.
func (c *Client) Transcript(ctx context.Context, videoID string) fn.Result[TranscriptResult] {
	return FetchTranscript(ctx, c.httpClient, videoID)
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewExternalServiceError("youtube", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden, resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: youtube data api status %d", domain.ErrRateLimited, resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, domain.NewExternalServiceError("youtube",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	return io.ReadAll(resp.Body)
}
