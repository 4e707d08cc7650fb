// Package store persists transcripts, categories, and personal stories in
// Postgres, and provides ranked full-text search and export.
package store

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"sermonscribe/engine/domain"
	"sermonscribe/pkg/config"
	"sermonscribe/pkg/fn"
)

// Store wraps a single *sql.DB reused for the process lifetime.
type Store struct {
	db  *sql.DB
	log *slog.Logger
}

// Open connects to Postgres and pings with bounded backoff. After exhausting
// retries the returned error is a domain.StorageError and the store is
// unusable.
func Open(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}

	db, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, domain.NewStorageError("open", err)
	}

	opts := fn.RetryOpts{MaxAttempts: 5, InitialWait: time.Second, MaxWait: 10 * time.Second}
	result := fn.Retry(ctx, opts, func(ctx context.Context) fn.Result[struct{}] {
		if err := db.PingContext(ctx); err != nil {
			log.Warn("database ping failed, retrying", "error", err)
			return fn.Err[struct{}](err)
		}
		return fn.Ok(struct{}{})
	})
	if _, err := result.Unwrap(); err != nil {
		db.Close()
		return nil, domain.NewStorageError("connect", err)
	}

	s := &Store{db: db, log: log}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, domain.NewStorageError("migrate", err)
	}
	return s, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error { return s.db.Close() }

// Upsert inserts or updates a transcript keyed by video_id and returns the
// row id. Re-ingesting the same video overwrites title and transcript.
func (s *Store) Upsert(ctx context.Context, videoID, title, transcript string) (int64, error) {
	const q = `
		INSERT INTO transcripts (video_id, title, transcript)
		VALUES ($1, $2, $3)
		ON CONFLICT (video_id) DO UPDATE
		SET title = EXCLUDED.title,
		    transcript = EXCLUDED.transcript,
		    updated_at = now()
		RETURNING id`

	var id int64
	if err := s.db.QueryRowContext(ctx, q, videoID, title, transcript).Scan(&id); err != nil {
		s.log.Error("upsert failed", "video_id", videoID, "error", err)
		return 0, domain.NewStorageError("upsert", err)
	}
	return id, nil
}

// Exists returns a VideoRef if the video is stored, nil otherwise.
func (s *Store) Exists(ctx context.Context, videoID string) (*domain.VideoRef, error) {
	const q = `SELECT id, title FROM transcripts WHERE video_id = $1`

	ref := domain.VideoRef{VideoID: videoID}
	err := s.db.QueryRowContext(ctx, q, videoID).Scan(&ref.ID, &ref.Title)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		s.log.Error("exists check failed", "video_id", videoID, "error", err)
		return nil, domain.NewStorageError("exists", err)
	}
	return &ref, nil
}

// Get returns the full transcript row, nil if absent.
func (s *Store) Get(ctx context.Context, videoID string) (*domain.Transcript, error) {
	const q = `
		SELECT id, video_id, title, transcript, coalesce(ai_summary, ''), created_at, updated_at
		FROM transcripts WHERE video_id = $1`

	var t domain.Transcript
	err := s.db.QueryRowContext(ctx, q, videoID).Scan(
		&t.ID, &t.VideoID, &t.Title, &t.Transcript, &t.AISummary, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		s.log.Error("get failed", "video_id", videoID, "error", err)
		return nil, domain.NewStorageError("get", err)
	}
	return &t, nil
}

// ListAll returns all transcripts most-recent-first.
func (s *Store) ListAll(ctx context.Context) ([]domain.Transcript, error) {
	const q = `
		SELECT id, video_id, title, transcript, coalesce(ai_summary, ''), created_at, updated_at
		FROM transcripts ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		s.log.Error("list failed", "error", err)
		return nil, domain.NewStorageError("list", err)
	}
	defer rows.Close()

	var out []domain.Transcript
	for rows.Next() {
		var t domain.Transcript
		if err := rows.Scan(&t.ID, &t.VideoID, &t.Title, &t.Transcript, &t.AISummary, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, domain.NewStorageError("list", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("list", err)
	}
	return out, nil
}

// UpdateSummary sets the AI summary for a stored transcript.
func (s *Store) UpdateSummary(ctx context.Context, videoID, summary string) error {
	const q = `UPDATE transcripts SET ai_summary = $2, updated_at = now() WHERE video_id = $1`

	res, err := s.db.ExecContext(ctx, q, videoID, summary)
	if err != nil {
		s.log.Error("update summary failed", "video_id", videoID, "error", err)
		return domain.NewStorageError("update_summary", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewStorageError("update_summary", domain.ErrNotFound)
	}
	return nil
}

// transcriptID resolves a video_id to its row id inside a transaction.
func transcriptID(ctx context.Context, tx *sql.Tx, videoID string) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, `SELECT id FROM transcripts WHERE video_id = $1`, videoID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrNotFound
	}
	return id, err
}
