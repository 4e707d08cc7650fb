package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"sermonscribe/engine/ai"
	"sermonscribe/engine/analytics"
	"sermonscribe/engine/domain"
	"sermonscribe/engine/ingest"
	"sermonscribe/engine/store"
)

// app bundles the collaborators the commands operate on.
type app struct {
	store    *store.Store
	pipeline *ingest.Pipeline
	ai       *ai.Client
	log      *slog.Logger
}

type handler func(ctx context.Context, args []string) (string, error)

// registry maps command names to handlers and help text.
type registry struct {
	commands map[string]handler
	help     map[string]string
	order    []string
}

func newRegistry(a *app) *registry {
	r := &registry{
		commands: make(map[string]handler),
		help:     make(map[string]string),
	}

	r.register("process-video", a.processVideo,
		"process-video <video_url> [--reprocess] - Process a single YouTube video")
	r.register("process-playlist", a.processPlaylist,
		"process-playlist <playlist_url> - Process all videos in a YouTube playlist")
	r.register("search", a.search,
		"search <query> - Search through stored transcripts")
	r.register("list", a.list,
		"list - Show all stored transcripts")
	r.register("transcript", a.transcript,
		"transcript <video_id> - Show transcript for a specific video")
	r.register("stats", a.stats,
		"stats <video_id> - Word and sentence statistics for a transcript")
	r.register("keywords", a.keywords,
		"keywords <video_id> [top_n] - Most frequent keywords in a transcript")
	r.register("phrases", a.phrases,
		"phrases <video_id> [min_words] [max_words] - Key phrases in a transcript")
	r.register("segments", a.segments,
		"segments <video_id> [words_per_segment] - Split a transcript into word-count segments")
	r.register("summarize", a.summarize,
		"summarize <video_id> [max_words] - Generate and store an AI summary")
	r.register("categorize", a.categorize,
		"categorize <video_id> - Assign sermon categories with AI")
	r.register("stories", a.stories,
		"stories <video_id> - Extract personal stories with AI")
	r.register("export", a.export,
		"export <json|csv|txt> - Export all transcripts")
	r.register("help", func(_ context.Context, _ []string) (string, error) {
		return r.helpText(), nil
	}, "help - Show available commands")

	return r
}

func (r *registry) register(name string, h handler, help string) {
	r.commands[name] = h
	r.help[name] = help
	r.order = append(r.order, name)
}

func (r *registry) run(ctx context.Context, line string) (string, error) {
	parts := strings.Fields(line)
	name := strings.ToLower(parts[0])
	h, ok := r.commands[name]
	if !ok {
		return "", fmt.Errorf("unknown command %q, type 'help' for a list", name)
	}
	return h(ctx, parts[1:])
}

func (r *registry) helpText() string {
	var sb strings.Builder
	for _, name := range r.order {
		sb.WriteString(r.help[name])
		sb.WriteByte('\n')
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (a *app) processVideo(ctx context.Context, args []string) (string, error) {
	if len(args) < 1 {
		return "", errors.New("usage: process-video <video_url> [--reprocess]")
	}
	reprocess := len(args) > 1 && args[1] == "--reprocess"

	out, err := a.pipeline.ProcessVideo(ctx, args[0], reprocess)
	if err != nil {
		return "", err
	}
	if out.AlreadyExists {
		return fmt.Sprintf("Video already processed:\n- Title: %s\n- Video ID: %s\nRe-run with --reprocess to overwrite.",
			out.Title, out.VideoID), nil
	}
	return fmt.Sprintf("Successfully processed video:\n- Title: %s\n- Video ID: %s", out.Title, out.VideoID), nil
}

func (a *app) processPlaylist(ctx context.Context, args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("usage: process-playlist <playlist_url>")
	}

	report, err := a.pipeline.ProcessPlaylist(ctx, args[0])
	if err != nil && report.Total == 0 {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Processing complete:\n")
	fmt.Fprintf(&sb, "- Total videos: %d\n", report.Total)
	fmt.Fprintf(&sb, "- Successfully processed: %d\n", report.Processed)
	fmt.Fprintf(&sb, "- Skipped (no subtitles): %d\n", report.Skipped)
	fmt.Fprintf(&sb, "- Errors: %d\n", report.Errors)
	if report.Remaining > 0 {
		fmt.Fprintf(&sb, "- Remaining (cancelled): %d\n", report.Remaining)
	}
	if len(report.Failures) > 0 {
		titles := make([]string, 0, len(report.Failures))
		for t := range report.Failures {
			titles = append(titles, t)
		}
		sort.Strings(titles)
		sb.WriteString("Failures:\n")
		for _, t := range titles {
			fmt.Fprintf(&sb, "- %s: %s\n", t, report.Failures[t])
		}
	}
	return strings.TrimRight(sb.String(), "\n"), err
}

func (a *app) search(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("usage: search <query>")
	}

	hits, err := a.store.Search(ctx, strings.Join(args, " "))
	if err != nil {
		return "", err
	}
	if len(hits) == 0 {
		return "No matches found", nil
	}

	var sb strings.Builder
	for _, h := range hits {
		fmt.Fprintf(&sb, "Video: %s (https://youtube.com/watch?v=%s)\n", h.Title, h.VideoID)
		fmt.Fprintf(&sb, "Highlight: %s\n\n", h.Highlight)
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

func (a *app) list(ctx context.Context, _ []string) (string, error) {
	transcripts, err := a.store.ListAll(ctx)
	if err != nil {
		return "", err
	}
	if len(transcripts) == 0 {
		return "No transcripts stored", nil
	}

	var sb strings.Builder
	for _, t := range transcripts {
		fmt.Fprintf(&sb, "- %s\n  Video ID: %s\n  Added: %s\n",
			t.Title, t.VideoID, t.CreatedAt.Format("2006-01-02 15:04"))
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

func (a *app) transcript(ctx context.Context, args []string) (string, error) {
	t, err := a.getTranscript(ctx, args, "transcript")
	if err != nil {
		return "", err
	}
	out := fmt.Sprintf("## %s\n\n%s", t.Title, t.Transcript)
	if t.AISummary != "" {
		out += "\n\nAI Summary:\n" + t.AISummary
	}
	return out, nil
}

func (a *app) stats(ctx context.Context, args []string) (string, error) {
	t, err := a.getTranscript(ctx, args, "stats")
	if err != nil {
		return "", err
	}
	s := analytics.WordStats(t.Transcript)
	return fmt.Sprintf("Words: %d\nSentences: %d\nAvg words/sentence: %.1f\nUnique words: %d",
		s.WordCount, s.SentenceCount, s.AvgWordsPerSentence, s.UniqueWords), nil
}

func (a *app) keywords(ctx context.Context, args []string) (string, error) {
	t, err := a.getTranscript(ctx, args, "keywords")
	if err != nil {
		return "", err
	}
	topN := intArg(args, 1, 10)

	kws := analytics.Keywords(t.Transcript, analytics.KeywordOpts{TopN: topN})
	if len(kws) == 0 {
		return "No keywords found", nil
	}
	var sb strings.Builder
	for _, kw := range kws {
		fmt.Fprintf(&sb, "%-20s %d\n", kw.Word, kw.Count)
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

func (a *app) phrases(ctx context.Context, args []string) (string, error) {
	t, err := a.getTranscript(ctx, args, "phrases")
	if err != nil {
		return "", err
	}
	minWords := intArg(args, 1, 2)
	maxWords := intArg(args, 2, 4)

	ps := analytics.KeyPhrases(t.Transcript, minWords, maxWords)
	if len(ps) == 0 {
		return "No key phrases found", nil
	}
	var sb strings.Builder
	for _, p := range ps {
		fmt.Fprintf(&sb, "%-40s %d\n", p.Phrase, p.Count)
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

func (a *app) segments(ctx context.Context, args []string) (string, error) {
	t, err := a.getTranscript(ctx, args, "segments")
	if err != nil {
		return "", err
	}
	length := intArg(args, 1, 100)

	segs := analytics.Segments(t.Transcript, length)
	var sb strings.Builder
	for i, s := range segs {
		fmt.Fprintf(&sb, "[segment %d]\n%s\n\n", i+1, s)
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

func (a *app) summarize(ctx context.Context, args []string) (string, error) {
	if a.ai == nil {
		return "", errors.New("AI commands require a Gemini API key")
	}
	t, err := a.getTranscript(ctx, args, "summarize")
	if err != nil {
		return "", err
	}
	maxWords := intArg(args, 1, 0)

	summary, err := a.ai.Summarize(ctx, t.Transcript, maxWords)
	if err != nil {
		return "", rateLimitHint(err)
	}
	if err := a.store.UpdateSummary(ctx, t.VideoID, summary); err != nil {
		return "", err
	}
	return "Summary stored:\n" + summary, nil
}

func (a *app) categorize(ctx context.Context, args []string) (string, error) {
	if a.ai == nil {
		return "", errors.New("AI commands require a Gemini API key")
	}
	t, err := a.getTranscript(ctx, args, "categorize")
	if err != nil {
		return "", err
	}

	cs, err := a.ai.Categorize(ctx, t.Transcript)
	if err != nil {
		return "", rateLimitHint(err)
	}
	if err := a.store.ReplaceCategories(ctx, t.VideoID, cs); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("Categories stored:\n")
	fmt.Fprintf(&sb, "- Christian Life: %s\n", joinOrNone(cs.ChristianLife))
	fmt.Fprintf(&sb, "- Church & Ministry: %s\n", joinOrNone(cs.ChurchMinistry))
	fmt.Fprintf(&sb, "- Theology: %s", joinOrNone(cs.Theology))
	return sb.String(), nil
}

func (a *app) stories(ctx context.Context, args []string) (string, error) {
	if a.ai == nil {
		return "", errors.New("AI commands require a Gemini API key")
	}
	t, err := a.getTranscript(ctx, args, "stories")
	if err != nil {
		return "", err
	}

	stories, err := a.ai.GenerateStories(ctx, t.Transcript)
	if err != nil {
		return "", rateLimitHint(err)
	}
	if err := a.store.ReplaceStories(ctx, t.VideoID, stories); err != nil {
		return "", err
	}
	if len(stories) == 0 {
		return "No personal stories found", nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d stories stored:\n", len(stories))
	for _, s := range stories {
		fmt.Fprintf(&sb, "- %s: %s\n", s.Title, s.Summary)
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

func (a *app) export(ctx context.Context, args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("usage: export <json|csv|txt>")
	}
	return a.store.Export(ctx, args[0])
}

// getTranscript resolves args[0] as a video ID and loads the stored row.
func (a *app) getTranscript(ctx context.Context, args []string, cmd string) (*domain.Transcript, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("usage: %s <video_id> ...", cmd)
	}
	if !domain.ValidVideoID(args[0]) {
		return nil, fmt.Errorf("%w: %q is not a video ID", domain.ErrInvalidURL, args[0])
	}

	t, err := a.store.Get(ctx, args[0])
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%w: transcript %s not stored, run process-video first", domain.ErrNotFound, args[0])
	}
	return t, nil
}

func intArg(args []string, i, fallback int) int {
	if len(args) <= i {
		return fallback
	}
	n, err := strconv.Atoi(args[i])
	if err != nil {
		return fallback
	}
	return n
}

func joinOrNone(vals []string) string {
	if len(vals) == 0 {
		return "(none)"
	}
	return strings.Join(vals, ", ")
}

func rateLimitHint(err error) error {
	if errors.Is(err, domain.ErrRateLimited) {
		return fmt.Errorf("%w, wait about an hour before retrying", err)
	}
	return err
}
