package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4/pgxpool"

	"scam-honeypot-agent/internal/domain"
	"scam-honeypot-agent/internal/domain/model"
	"scam-honeypot-agent/internal/domain/ports/repository"
)

// PostgresFeedbackRepo persists the labeled retraining export stream.
//
// Schema:
//
//	CREATE TABLE IF NOT EXISTS labeled_feedback (
//	    id         BIGSERIAL PRIMARY KEY,
//	    session_id TEXT NOT NULL,
//	    snapshot   JSONB NOT NULL,
//	    label      TEXT NOT NULL,
//	    labeled_at TIMESTAMPTZ NOT NULL
//	);
//	CREATE INDEX IF NOT EXISTS idx_labeled_feedback_session ON labeled_feedback (session_id);
type PostgresFeedbackRepo struct {
	db *pgxpool.Pool
}

func NewPostgresFeedbackRepo(db *pgxpool.Pool) *PostgresFeedbackRepo {
	return &PostgresFeedbackRepo{db: db}
}

var _ repository.FeedbackExportRepository = (*PostgresFeedbackRepo)(nil)

func (r *PostgresFeedbackRepo) Append(ctx context.Context, rec *model.LabeledRecord) error {
	if rec == nil || rec.SessionID == "" {
		return domain.ErrInvalidArgument
	}
	if rec.LabeledAt.IsZero() {
		rec.LabeledAt = time.Now().UTC()
	}
	snapshot, err := json.Marshal(rec.Snapshot)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO labeled_feedback (session_id, snapshot, label, labeled_at)
		VALUES ($1,$2,$3,$4)
	`, rec.SessionID, snapshot, string(rec.Label), rec.LabeledAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23514" {
		return domain.ErrInvalidArgument
	}
	return err
}

func (r *PostgresFeedbackRepo) ListBySession(ctx context.Context, sessionID string) ([]*model.LabeledRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT session_id, snapshot, label, labeled_at
		FROM labeled_feedback WHERE session_id=$1 ORDER BY labeled_at ASC
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.LabeledRecord
	for rows.Next() {
		var (
			rec      model.LabeledRecord
			snapshot []byte
			label    string
		)
		if err := rows.Scan(&rec.SessionID, &snapshot, &label, &rec.LabeledAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(snapshot, &rec.Snapshot); err != nil {
			return nil, err
		}
		rec.Label = model.HumanLabel(label)
		out = append(out, &rec)
	}
	return out, rows.Err()
}
