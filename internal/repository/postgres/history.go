package postgresrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kioskgym/kioskgym/internal/domain"
)

// HistoryRepo stores completed-session result records. The submitted
// order is kept as jsonb, matching the record format the history API
// serves.
type HistoryRepo struct {
	pool *pgxpool.Pool
	db   DB
}

// With binds the repo to a transaction handle.
func (r *HistoryRepo) With(db DB) *HistoryRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *HistoryRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// EnsureSchema creates the history table when it does not exist yet.
// Called once at startup, only when a store is configured.
func (r *HistoryRepo) EnsureSchema(ctx context.Context) error {
	const op = "postgresrepo.HistoryRepo.EnsureSchema"

	_, err := r.handle().Exec(ctx, `
		CREATE TABLE IF NOT EXISTS history_records (
			id              UUID PRIMARY KEY,
			recorded_date   TEXT    NOT NULL,
			mission_text    TEXT    NOT NULL,
			success         BOOLEAN NOT NULL,
			submitted_order JSONB   NOT NULL,
			result_text     TEXT    NOT NULL DEFAULT '',
			ts              BIGINT  NOT NULL
		);
		CREATE INDEX IF NOT EXISTS history_records_ts_idx ON history_records (ts DESC)`)
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

// Save inserts one result record.
func (r *HistoryRepo) Save(ctx context.Context, rec domain.HistoryRecord) error {
	const op = "postgresrepo.HistoryRepo.Save"

	order, err := json.Marshal(rec.UserOrder)
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	_, err = r.handle().Exec(ctx, `
		INSERT INTO history_records
			(id, recorded_date, mission_text, success, submitted_order, result_text, ts)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.ID, rec.Date, rec.MissionText, rec.Success, order, rec.ResultText, rec.Timestamp,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

// List returns records most-recent-first, capped at limit (<=0 means
// all).
func (r *HistoryRepo) List(ctx context.Context, limit int) ([]domain.HistoryRecord, error) {
	const op = "postgresrepo.HistoryRepo.List"

	q := `
		SELECT id, recorded_date, mission_text, success, submitted_order, result_text, ts
		FROM history_records
		ORDER BY ts DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.handle().Query(ctx, q, args...)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}
	defer rows.Close()

	var out []domain.HistoryRecord
	for rows.Next() {
		var rec domain.HistoryRecord
		var order []byte
		if err := rows.Scan(
			&rec.ID, &rec.Date, &rec.MissionText, &rec.Success, &order, &rec.ResultText, &rec.Timestamp,
		); err != nil {
			return nil, wrapDBErr(op, err)
		}
		if err := json.Unmarshal(order, &rec.UserOrder); err != nil {
			return nil, fmt.Errorf("%s:%w", op, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}
