package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/visolab/viso-tracker/internal/model"
)

// InteractionRepo encapsulates database queries for object interactions,
// including the per-day time-series aggregation. Aggregations are
// declarative SQL; nothing is computed in application code.
type InteractionRepo struct {
	db *sql.DB
}

func NewInteractionRepo(db *sql.DB) *InteractionRepo {
	return &InteractionRepo{db: db}
}

// Create records one interaction. Both endpoints must be existing objects;
// a foreign-key violation from the store is surfaced as ErrNotFound so
// handlers report a missing object rather than a bare 500.
func (r *InteractionRepo) Create(ctx context.Context, in *model.Interaction) error {
	in.Kind = strings.TrimSpace(in.Kind)
	if in.Strength == 0 {
		in.Strength = 1
	}
	if in.OccurredAt.IsZero() {
		in.OccurredAt = time.Now().UTC()
	}
	if err := in.Validate(); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO interactions (subject_id, target_id, kind, strength, occurred_at) VALUES (?,?,?,?,?)",
		in.SubjectID, in.TargetID, in.Kind, in.Strength, in.OccurredAt)
	if err != nil {
		// 1452: cannot add or update a child row (unknown object id)
		if strings.Contains(err.Error(), "1452") {
			return ErrNotFound
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	in.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		"SELECT created_at FROM interactions WHERE id=?", in.ID).Scan(&in.CreatedAt)
}

// List returns interactions newest first, optionally filtered to one object
// (as either endpoint) and capped at limit rows.
func (r *InteractionRepo) List(ctx context.Context, objectID *uint64, limit int) ([]model.Interaction, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	q := "SELECT id, subject_id, target_id, kind, strength, occurred_at, created_at FROM interactions"
	args := []any{}
	if objectID != nil {
		q += " WHERE subject_id=? OR target_id=?"
		args = append(args, *objectID, *objectID)
	}
	q += " ORDER BY occurred_at DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Interaction{}
	for rows.Next() {
		var in model.Interaction
		if err := rows.Scan(&in.ID, &in.SubjectID, &in.TargetID, &in.Kind, &in.Strength, &in.OccurredAt, &in.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

// DayCount is one bucket of the interaction time-series.
type DayCount struct {
	Day   string `json:"day"` // YYYY-MM-DD
	Count uint64 `json:"count"`
}

// SeriesByDay returns interaction counts grouped by calendar day over the
// last `days` days, optionally restricted to one object.
func (r *InteractionRepo) SeriesByDay(ctx context.Context, objectID *uint64, days int) ([]DayCount, error) {
	if days <= 0 || days > 365 {
		days = 30
	}
	q := `SELECT DATE_FORMAT(occurred_at, '%Y-%m-%d') AS day, COUNT(*) AS cnt
	      FROM interactions
	      WHERE occurred_at >= DATE_SUB(UTC_TIMESTAMP(), INTERVAL ? DAY)`
	args := []any{days}
	if objectID != nil {
		q += " AND (subject_id=? OR target_id=?)"
		args = append(args, *objectID, *objectID)
	}
	q += " GROUP BY day ORDER BY day"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []DayCount{}
	for rows.Next() {
		var dc DayCount
		if err := rows.Scan(&dc.Day, &dc.Count); err != nil {
			return nil, err
		}
		out = append(out, dc)
	}
	return out, rows.Err()
}
