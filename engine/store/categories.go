package store

import (
	"context"

	"sermonscribe/engine/domain"
)

// ReplaceCategories atomically replaces all category assignments for a video:
// begin, delete, insert-all, commit. A rollback leaves the prior set intact.
func (s *Store) ReplaceCategories(ctx context.Context, videoID string, cs domain.CategorySet) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.NewStorageError("replace_categories", err)
	}
	defer tx.Rollback()

	id, err := transcriptID(ctx, tx, videoID)
	if err != nil {
		return domain.NewStorageError("replace_categories", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE transcript_id = $1`, id); err != nil {
		return domain.NewStorageError("replace_categories", err)
	}

	const ins = `INSERT INTO categories (transcript_id, category_type, name) VALUES ($1, $2, $3)`
	insert := func(ct domain.CategoryType, names []string) error {
		for _, n := range names {
			if _, err := tx.ExecContext(ctx, ins, id, string(ct), n); err != nil {
				return err
			}
		}
		return nil
	}
	if err := insert(domain.CategoryChristianLife, cs.ChristianLife); err != nil {
		return domain.NewStorageError("replace_categories", err)
	}
	if err := insert(domain.CategoryChurchMinistry, cs.ChurchMinistry); err != nil {
		return domain.NewStorageError("replace_categories", err)
	}
	if err := insert(domain.CategoryTheology, cs.Theology); err != nil {
		return domain.NewStorageError("replace_categories", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.NewStorageError("replace_categories", err)
	}
	return nil
}

// GetCategories returns the category assignments for a video. An unstored
// video yields an empty set, not an error.
func (s *Store) GetCategories(ctx context.Context, videoID string) (domain.CategorySet, error) {
	const q = `
		SELECT c.category_type, c.name
		FROM categories c
		JOIN transcripts t ON t.id = c.transcript_id
		WHERE t.video_id = $1
		ORDER BY c.id`

	var cs domain.CategorySet
	rows, err := s.db.QueryContext(ctx, q, videoID)
	if err != nil {
		s.log.Error("get categories failed", "video_id", videoID, "error", err)
		return cs, domain.NewStorageError("get_categories", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ct, name string
		if err := rows.Scan(&ct, &name); err != nil {
			return cs, domain.NewStorageError("get_categories", err)
		}
		switch domain.CategoryType(ct) {
		case domain.CategoryChristianLife:
			cs.ChristianLife = append(cs.ChristianLife, name)
		case domain.CategoryChurchMinistry:
			cs.ChurchMinistry = append(cs.ChurchMinistry, name)
		case domain.CategoryTheology:
			cs.Theology = append(cs.Theology, name)
		}
	}
	if err := rows.Err(); err != nil {
		return cs, domain.NewStorageError("get_categories", err)
	}
	return cs, nil
}
