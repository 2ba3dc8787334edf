package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/visolab/viso-tracker/internal/model"
)

// EnvironmentRepo encapsulates database queries for environment/adjacency
// records.
type EnvironmentRepo struct {
	db *sql.DB
}

func NewEnvironmentRepo(db *sql.DB) *EnvironmentRepo {
	return &EnvironmentRepo{db: db}
}

// Create records an environment reading for an object.
func (r *EnvironmentRepo) Create(ctx context.Context, e *model.Environment) error {
	e.Zone = strings.TrimSpace(e.Zone)
	if e.RecordedAt.IsZero() {
		e.RecordedAt = time.Now().UTC()
	}
	if err := e.Validate(); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO environments (object_id, zone, temperature, humidity, recorded_at) VALUES (?,?,?,?,?)",
		e.ObjectID, e.Zone, e.Temperature, e.Humidity, e.RecordedAt)
	if err != nil {
		if strings.Contains(err.Error(), "1452") { // unknown object id
			return ErrNotFound
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		"SELECT created_at FROM environments WHERE id=?", e.ID).Scan(&e.CreatedAt)
}

const environmentColumns = "id, object_id, zone, temperature, humidity, recorded_at, created_at"

func (r *EnvironmentRepo) queryList(ctx context.Context, q string, args ...any) ([]model.Environment, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Environment{}
	for rows.Next() {
		var (
			e    model.Environment
			temp sql.NullFloat64
			hum  sql.NullFloat64
		)
		if err := rows.Scan(&e.ID, &e.ObjectID, &e.Zone, &temp, &hum, &e.RecordedAt, &e.CreatedAt); err != nil {
			return nil, err
		}
		if temp.Valid {
			e.Temperature = &temp.Float64
		}
		if hum.Valid {
			e.Humidity = &hum.Float64
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// List returns all environment records, newest first.
func (r *EnvironmentRepo) List(ctx context.Context) ([]model.Environment, error) {
	return r.queryList(ctx,
		"SELECT "+environmentColumns+" FROM environments ORDER BY recorded_at DESC, id DESC")
}

// ListByObject returns environment records for one object, newest first.
func (r *EnvironmentRepo) ListByObject(ctx context.Context, objectID uint64) ([]model.Environment, error) {
	return r.queryList(ctx,
		"SELECT "+environmentColumns+" FROM environments WHERE object_id=? ORDER BY recorded_at DESC, id DESC",
		objectID)
}

// Delete removes one environment record.
func (r *EnvironmentRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM environments WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
