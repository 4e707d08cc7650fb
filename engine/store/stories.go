package store

import (
	"context"

	"sermonscribe/engine/domain"
)

// ReplaceStories atomically replaces the personal stories linked to a video.
// Old relationships are removed, new stories inserted, and links created in
// a single transaction, so a failure leaves the prior set intact.
func (s *Store) ReplaceStories(ctx context.Context, videoID string, stories []domain.PersonalStory) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.NewStorageError("replace_stories", err)
	}
	defer tx.Rollback()

	id, err := transcriptID(ctx, tx, videoID)
	if err != nil {
		return domain.NewStorageError("replace_stories", err)
	}

	// Orphaned story rows are removed with the links.
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM stories WHERE id IN (
			SELECT story_id FROM transcript_stories WHERE transcript_id = $1
		)`, id); err != nil {
		return domain.NewStorageError("replace_stories", err)
	}

	for _, st := range stories {
		var storyID int64
		err := tx.QueryRowContext(ctx, `
			INSERT INTO stories (title, summary, message) VALUES ($1, $2, $3) RETURNING id`,
			st.Title, st.Summary, st.Message).Scan(&storyID)
		if err != nil {
			return domain.NewStorageError("replace_stories", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO transcript_stories (transcript_id, story_id) VALUES ($1, $2)`,
			id, storyID); err != nil {
			return domain.NewStorageError("replace_stories", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.NewStorageError("replace_stories", err)
	}
	return nil
}

// GetStories returns the personal stories linked to a video.
func (s *Store) GetStories(ctx context.Context, videoID string) ([]domain.PersonalStory, error) {
	const q = `
		SELECT st.id, st.title, st.summary, st.message
		FROM stories st
		JOIN transcript_stories ts ON ts.story_id = st.id
		JOIN transcripts t ON t.id = ts.transcript_id
		WHERE t.video_id = $1
		ORDER BY st.id`

	rows, err := s.db.QueryContext(ctx, q, videoID)
	if err != nil {
		s.log.Error("get stories failed", "video_id", videoID, "error", err)
		return nil, domain.NewStorageError("get_stories", err)
	}
	defer rows.Close()

	var out []domain.PersonalStory
	for rows.Next() {
		var st domain.PersonalStory
		if err := rows.Scan(&st.ID, &st.Title, &st.Summary, &st.Message); err != nil {
			return nil, domain.NewStorageError("get_stories", err)
		}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("get_stories", err)
	}
	return out, nil
}
