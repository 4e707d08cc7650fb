// Package ingest orchestrates transcript fetch, formatting, dedupe, and
// storage for single videos and batched playlists.
package ingest

import (
	"context"

	"sermonscribe/engine/domain"
	"sermonscribe/engine/youtube"
	"sermonscribe/pkg/fn"
)

// Source provides transcripts, metadata, and playlist enumeration.
// *youtube.Client satisfies it.
type Source interface {
	Transcript(ctx context.Context, videoID string) fn.Result[youtube.TranscriptResult]
	VideoMetadata(ctx context.Context, videoID string) fn.Result[youtube.VideoMeta]
	PlaylistVideos(ctx context.Context, playlistID string) fn.Result[[]youtube.PlaylistEntry]
}

// Storage is the subset of the transcript store the pipeline needs.
type Storage interface {
	Exists(ctx context.Context, videoID string) (*domain.VideoRef, error)
	Upsert(ctx context.Context, videoID, title, transcript string) (int64, error)
}

// Outcome reports the result of processing one video.
type Outcome struct {
	ID            int64
	VideoID       string
	Title         string
	AlreadyExists bool
}

// Report summarizes a playlist run. Remaining is nonzero only when the run
// was cancelled between batches.
type Report struct {
	Total     int
	Processed int
	Skipped   int
	Errors    int
	Remaining int
	Failures  map[string]string // error message keyed by video title
}

// job carries a video through the fetch/format/store stages.
type job struct {
	videoID string
	title   string
	text    string
	cues    []domain.Cue
}
