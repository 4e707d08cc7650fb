package store

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"sermonscribe/engine/domain"
)

// exportRule separates TXT export blocks.
const exportRule = "----------------------------------------"

// Export serializes all stored transcripts in the given format
// (json, csv, or txt). Every format carries video_id, title, transcript,
// and created_at.
func (s *Store) Export(ctx context.Context, format string) (string, error) {
	transcripts, err := s.ListAll(ctx)
	if err != nil {
		return "", err
	}

	switch format {
	case "json":
		return exportJSON(transcripts)
	case "csv":
		return exportCSV(transcripts)
	case "txt":
		return exportTXT(transcripts), nil
	default:
		return "", fmt.Errorf("unsupported export format %q", format)
	}
}

type exportRow struct {
	VideoID    string `json:"video_id"`
	Title      string `json:"title"`
	Transcript string `json:"transcript"`
	CreatedAt  string `json:"created_at"`
}

func toExportRow(t domain.Transcript) exportRow {
	return exportRow{
		VideoID:    t.VideoID,
		Title:      t.Title,
		Transcript: t.Transcript,
		CreatedAt:  t.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func exportJSON(transcripts []domain.Transcript) (string, error) {
	rows := make([]exportRow, 0, len(transcripts))
	for _, t := range transcripts {
		rows = append(rows, toExportRow(t))
	}
	b, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func exportCSV(transcripts []domain.Transcript) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write([]string{"video_id", "title", "transcript", "created_at"}); err != nil {
		return "", err
	}
	for _, t := range transcripts {
		r := toExportRow(t)
		if err := w.Write([]string{r.VideoID, r.Title, r.Transcript, r.CreatedAt}); err != nil {
			return "", err
		}
	}
	w.Flush()
	return sb.String(), w.Error()
}

func exportTXT(transcripts []domain.Transcript) string {
	blocks := make([]string, 0, len(transcripts))
	for _, t := range transcripts {
		r := toExportRow(t)
		blocks = append(blocks, fmt.Sprintf(
			"Title: %s\nVideo ID: %s\nAdded: %s\nTranscript:\n%s",
			r.Title, r.VideoID, r.CreatedAt, r.Transcript))
	}
	return strings.Join(blocks, "\n"+exportRule+"\n")
}
