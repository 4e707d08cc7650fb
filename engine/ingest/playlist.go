package ingest

import (
	"context"
	"errors"

	"sermonscribe/engine/domain"
	"sermonscribe/engine/youtube"
	"sermonscribe/pkg/fn"
)

// ProcessPlaylist ingests every video of a playlist in fixed-size batches.
// A failure for one video is recorded and never aborts the batch: videos
// without captions count as skipped, other failures as errors with the
// message keyed by title. Batches are paced by the limiter, and cancellation
// is honored at batch boundaries; a cancelled run reports Remaining > 0.
func (p *Pipeline) ProcessPlaylist(ctx context.Context, url string) (Report, error) {
	report := Report{Failures: make(map[string]string)}

	playlistID, err := youtube.ExtractPlaylistID(url)
	if err != nil {
		return report, err
	}

	entries, err := p.src.PlaylistVideos(ctx, playlistID).Unwrap()
	if err != nil {
		return report, err
	}
	report.Total = len(entries)

	batches := fn.Chunk(entries, p.opts.BatchSize)
	for i, batch := range batches {
		// The limiter starts full, so the first batch is not delayed; it
		// doubles as the cooperative cancellation checkpoint.
		if err := p.limiter.Wait(ctx); err != nil {
			report.Remaining = report.Total - (report.Processed + report.Skipped + report.Errors)
			return report, err
		}

		for _, entry := range batch {
			p.processEntry(ctx, entry, &report)
		}
		p.log.Info("batch complete",
			"batch", i+1, "of", len(batches),
			"processed", report.Processed, "skipped", report.Skipped, "errors", report.Errors)
	}

	report.Remaining = report.Total - (report.Processed + report.Skipped + report.Errors)
	return report, nil
}

func (p *Pipeline) processEntry(ctx context.Context, entry youtube.PlaylistEntry, report *Report) {
	ref, err := p.store.Exists(ctx, entry.VideoID)
	if err != nil {
		report.Errors++
		report.Failures[entry.Title] = err.Error()
		return
	}
	if ref != nil {
		// Already stored; idempotent success.
		report.Processed++
		return
	}

	_, err = p.ingest(ctx, entry.VideoID, entry.Title)
	switch {
	case err == nil:
		report.Processed++
	case errors.Is(err, domain.ErrNoTranscript):
		report.Skipped++
		p.log.Info("video skipped, no captions", "video_id", entry.VideoID, "title", entry.Title)
	default:
		report.Errors++
		report.Failures[entry.Title] = err.Error()
		p.log.Warn("video failed", "video_id", entry.VideoID, "title", entry.Title, "error", err)
	}
}
