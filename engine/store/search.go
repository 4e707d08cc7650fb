package store

import (
	"context"

	"sermonscribe/engine/domain"
)

// minFTSQueryLen is the minimum query length for full-text search; shorter
// queries fall back to a substring scan.
const minFTSQueryLen = 3

// SearchHit is one ranked search result with a bounded highlight excerpt.
type SearchHit struct {
	VideoID   string  `json:"video_id"`
	Title     string  `json:"title"`
	Highlight string  `json:"highlight"`
	Rank      float64 `json:"rank"`
}

// Search runs ranked full-text search over titles and transcripts. Results
// order by ts_rank_cd descending with row id as the stable tie-break; the
// highlight is a 20-50 word excerpt around the best match with <b> markers.
// Queries shorter than 3 runes use an ILIKE substring fallback.
func (s *Store) Search(ctx context.Context, query string) ([]SearchHit, error) {
	if query == "" {
		return nil, nil
	}
	if len([]rune(query)) < minFTSQueryLen {
		return s.searchILike(ctx, query)
	}

	const q = `
		SELECT video_id, title,
		       ts_headline('english', transcript, plainto_tsquery('english', $1),
		                   'MinWords=20, MaxWords=50, StartSel=<b>, StopSel=</b>') AS highlight,
		       ts_rank_cd(search_vector, plainto_tsquery('english', $1)) AS rank
		FROM transcripts
		WHERE search_vector @@ plainto_tsquery('english', $1)
		ORDER BY rank DESC, id ASC`

	rows, err := s.db.QueryContext(ctx, q, query)
	if err != nil {
		s.log.Error("search failed", "query", query, "error", err)
		return nil, domain.NewStorageError("search", err)
	}
	defer rows.Close()

	var hits []SearchHit
	for rows.Next() {
		var h SearchHit
		if err := rows.Scan(&h.VideoID, &h.Title, &h.Highlight, &h.Rank); err != nil {
			return nil, domain.NewStorageError("search", err)
		}
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("search", err)
	}
	return hits, nil
}

func (s *Store) searchILike(ctx context.Context, query string) ([]SearchHit, error) {
	const q = `
		SELECT video_id, title, left(transcript, 300) AS highlight
		FROM transcripts
		WHERE transcript ILIKE '%' || $1 || '%' OR title ILIKE '%' || $1 || '%'
		ORDER BY id ASC`

	rows, err := s.db.QueryContext(ctx, q, query)
	if err != nil {
		s.log.Error("substring search failed", "query", query, "error", err)
		return nil, domain.NewStorageError("search", err)
	}
	defer rows.Close()

	var hits []SearchHit
	for rows.Next() {
		var h SearchHit
		if err := rows.Scan(&h.VideoID, &h.Title, &h.Highlight); err != nil {
			return nil, domain.NewStorageError("search", err)
		}
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("search", err)
	}
	return hits, nil
}
