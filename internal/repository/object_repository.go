// Package repository contains data access logic separated from HTTP
// handlers. This file defines repository methods for VISO objects, the
// tracked IoT devices at the center of the system. An object may belong to
// a class and is referenced by interactions, environments and rankings.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/visolab/viso-tracker/internal/model"
)

// ObjectRepo encapsulates all database queries related to objects.
type ObjectRepo struct {
	db *sql.DB
}

// NewObjectRepo constructs an ObjectRepo with the provided DB handle. This
// allows dependency injection of the database in tests and at startup.
func NewObjectRepo(db *sql.DB) *ObjectRepo {
	return &ObjectRepo{db: db}
}

const objectColumns = "id, uuid, name, kind, class_id, registered_by, is_active, created_at, updated_at"

func scanObject(row interface{ Scan(...any) error }) (model.Object, error) {
	var (
		o       model.Object
		classID sql.NullInt64
	)
	err := row.Scan(&o.ID, &o.UUID, &o.Name, &o.Kind, &classID, &o.RegisteredBy, &o.IsActive, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return model.Object{}, err
	}
	if classID.Valid {
		v := uint64(classID.Int64)
		o.ClassID = &v
	}
	return o, nil
}

// Create inserts a new object. On success the ID field is populated with
// the auto-generated value and a follow-up SELECT fills the timestamp
// fields so callers receive a fully populated record.
func (r *ObjectRepo) Create(ctx context.Context, o *model.Object) error {
	o.Name = strings.TrimSpace(o.Name)
	o.Kind = strings.TrimSpace(o.Kind)
	if err := o.Validate(); err != nil {
		return err
	}
	var classID any
	if o.ClassID != nil {
		classID = *o.ClassID
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO objects (uuid, name, kind, class_id, registered_by, is_active) VALUES (?,?,?,?,?,?)",
		o.UUID, o.Name, o.Kind, classID, o.RegisteredBy, o.IsActive)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	o.ID = uint64(id)
	got, err := r.GetByID(ctx, o.ID)
	if err != nil {
		return err
	}
	*o = got
	return nil
}

// GetByID fetches one object.
func (r *ObjectRepo) GetByID(ctx context.Context, id uint64) (model.Object, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+objectColumns+" FROM objects WHERE id=? LIMIT 1", id)
	o, err := scanObject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Object{}, ErrNotFound
	}
	return o, err
}

// List returns all objects, optionally filtered to a class.
func (r *ObjectRepo) List(ctx context.Context, classID *uint64) ([]model.Object, error) {
	q := "SELECT " + objectColumns + " FROM objects"
	args := []any{}
	if classID != nil {
		q += " WHERE class_id=?"
		args = append(args, *classID)
	}
	q += " ORDER BY id"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Object{}
	for rows.Next() {
		o, err := scanObject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// Update applies name/kind/class/active changes to an existing object.
func (r *ObjectRepo) Update(ctx context.Context, o *model.Object) error {
	o.Name = strings.TrimSpace(o.Name)
	o.Kind = strings.TrimSpace(o.Kind)
	if err := o.Validate(); err != nil {
		return err
	}
	var classID any
	if o.ClassID != nil {
		classID = *o.ClassID
	}
	res, err := r.db.ExecContext(ctx,
		"UPDATE objects SET name=?, kind=?, class_id=?, is_active=? WHERE id=?",
		o.Name, o.Kind, classID, o.IsActive, o.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Either the row is gone or nothing changed; distinguish with a read.
		if _, err := r.GetByID(ctx, o.ID); err != nil {
			return err
		}
	}
	got, err := r.GetByID(ctx, o.ID)
	if err != nil {
		return err
	}
	*o = got
	return nil
}

// Delete removes an object and its dependent interaction, environment and
// ranking rows. Cascading happens here so handlers never orchestrate
// multi-table deletes.
func (r *ObjectRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, "DELETE FROM objects WHERE id=?", id)
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
	if _, err := tx.ExecContext(ctx, "DELETE FROM interactions WHERE subject_id=? OR target_id=?", id, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM environments WHERE object_id=?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM rankings WHERE object_a_id=? OR object_b_id=?", id, id); err != nil {
		return err
	}
	return tx.Commit()
}

// Neighbors returns the objects that share an environment zone with the
// given object. Adjacency is purely declarative: no application-side graph
// bookkeeping, just a self-join on environments.
func (r *ObjectRepo) Neighbors(ctx context.Context, id uint64) ([]model.Object, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT o.id, o.uuid, o.name, o.kind, o.class_id, o.registered_by, o.is_active, o.created_at, o.updated_at
		 FROM environments e1
		 JOIN environments e2 ON e2.zone = e1.zone AND e2.object_id <> e1.object_id
		 JOIN objects o ON o.id = e2.object_id
		 WHERE e1.object_id = ?
		 ORDER BY o.id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Object{}
	for rows.Next() {
		o, err := scanObject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
