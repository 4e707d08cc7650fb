package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"sermonscribe/engine/domain"
	"sermonscribe/engine/youtube"
	"sermonscribe/pkg/fn"
	"sermonscribe/pkg/resilience"
)

// Opts tunes playlist batch processing.
type Opts struct {
	// BatchSize is the number of videos per batch. Defaults to 5.
	BatchSize int
	// PauseBetweenBatches paces batches to respect upstream rate limits.
	PauseBetweenBatches time.Duration
}

// Pipeline turns URLs into persisted transcript rows.
type Pipeline struct {
	src     Source
	store   Storage
	limiter *resilience.Limiter
	opts    Opts
	log     *slog.Logger
}

// New creates an ingestion pipeline.
func New(src Source, store Storage, opts Opts, log *slog.Logger) *Pipeline {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 5
	}
	if opts.PauseBetweenBatches <= 0 {
		opts.PauseBetweenBatches = 2 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}
	rps := 1.0 / opts.PauseBetweenBatches.Seconds()
	return &Pipeline{
		src:     src,
		store:   store,
		limiter: resilience.NewLimiter(resilience.LimiterOpts{Rate: rps, Burst: 1}),
		opts:    opts,
		log:     log,
	}
}

// ProcessVideo ingests a single video URL. When the video is already stored
// and reprocess is false, the existing row is reported instead of refetched;
// reprocess re-runs fetch/format/store and overwrites.
func (p *Pipeline) ProcessVideo(ctx context.Context, url string, reprocess bool) (Outcome, error) {
	videoID, err := youtube.ExtractVideoID(url)
	if err != nil {
		return Outcome{}, err
	}

	ref, err := p.store.Exists(ctx, videoID)
	if err != nil {
		return Outcome{}, err
	}
	if ref != nil && !reprocess {
		return Outcome{ID: ref.ID, VideoID: videoID, Title: ref.Title, AlreadyExists: true}, nil
	}

	return p.ingest(ctx, videoID, "")
}

// ingest runs the fetch → format → store stages for one video. knownTitle
// skips the metadata lookup when the playlist already supplied it.
func (p *Pipeline) ingest(ctx context.Context, videoID, knownTitle string) (Outcome, error) {
	pipeline := fn.Then(
		fn.Then(
			fn.TracedStage("ingest.fetch", p.fetchStage(knownTitle)),
			fn.TracedStage("ingest.format", formatStage),
		),
		fn.TracedStage("ingest.store", p.storeStage),
	)
	out, err := pipeline(ctx, videoID).Unwrap()
	if err != nil {
		return Outcome{}, err
	}
	p.log.Info("video ingested", "video_id", out.VideoID, "title", out.Title)
	return out, nil
}

// fetchStage fetches transcript cues and, when needed, the video title.
func (p *Pipeline) fetchStage(knownTitle string) fn.Stage[string, job] {
	return func(ctx context.Context, videoID string) fn.Result[job] {
		tr, err := p.src.Transcript(ctx, videoID).Unwrap()
		if err != nil {
			return fn.Err[job](err)
		}
		if strings.TrimSpace(tr.Text) == "" {
			return fn.Err[job](fmt.Errorf("%w: video %s", domain.ErrNoTranscript, videoID))
		}

		title := knownTitle
		if title == "" {
			meta, err := p.src.VideoMetadata(ctx, videoID).Unwrap()
			if err != nil {
				return fn.Err[job](err)
			}
			title = meta.Title
		}

		return fn.Ok(job{videoID: videoID, title: title, text: tr.Text, cues: tr.Cues})
	}
}

// formatStage normalizes whitespace in the transcript text.
func formatStage(_ context.Context, j job) fn.Result[job] {
	j.text = strings.Join(strings.Fields(j.text), " ")
	return fn.Ok(j)
}

func (p *Pipeline) storeStage(ctx context.Context, j job) fn.Result[Outcome] {
	id, err := p.store.Upsert(ctx, j.videoID, j.title, j.text)
	if err != nil {
		return fn.Err[Outcome](err)
	}
	return fn.Ok(Outcome{ID: id, VideoID: j.videoID, Title: j.title})
}
