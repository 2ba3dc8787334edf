package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/visolab/viso-tracker/internal/model"
)

// ClassRepo encapsulates all database queries related to object classes.
type ClassRepo struct {
	db *sql.DB
}

func NewClassRepo(db *sql.DB) *ClassRepo {
	return &ClassRepo{db: db}
}

// Create inserts a new class. Duplicate names map to ErrConflict.
func (r *ClassRepo) Create(ctx context.Context, cl *model.Class) error {
	cl.Name = strings.TrimSpace(cl.Name)
	if err := cl.Validate(); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO classes (name, description) VALUES (?,?)",
		cl.Name, cl.Description)
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
	cl.ID = uint64(id)
	got, err := r.GetByID(ctx, cl.ID)
	if err != nil {
		return err
	}
	*cl = got
	return nil
}

// GetByID fetches one class.
func (r *ClassRepo) GetByID(ctx context.Context, id uint64) (model.Class, error) {
	var cl model.Class
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, description, created_at, updated_at FROM classes WHERE id=? LIMIT 1", id).
		Scan(&cl.ID, &cl.Name, &cl.Description, &cl.CreatedAt, &cl.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Class{}, ErrNotFound
	}
	return cl, err
}

// List returns all classes ordered by id.
func (r *ClassRepo) List(ctx context.Context) ([]model.Class, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, description, created_at, updated_at FROM classes ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Class{}
	for rows.Next() {
		var cl model.Class
		if err := rows.Scan(&cl.ID, &cl.Name, &cl.Description, &cl.CreatedAt, &cl.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, cl)
	}
	return out, rows.Err()
}

// Update changes a class's name/description.
func (r *ClassRepo) Update(ctx context.Context, cl *model.Class) error {
	cl.Name = strings.TrimSpace(cl.Name)
	if err := cl.Validate(); err != nil {
		return err
	}
	if _, err := r.GetByID(ctx, cl.ID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		"UPDATE classes SET name=?, description=? WHERE id=?",
		cl.Name, cl.Description, cl.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	got, err := r.GetByID(ctx, cl.ID)
	if err != nil {
		return err
	}
	*cl = got
	return nil
}

// Delete removes a class. Objects keep existing with class_id reset to
// NULL; a class with member objects is not a delete conflict.
func (r *ClassRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "UPDATE objects SET class_id=NULL WHERE class_id=?", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM classes WHERE id=?", id)
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
	return tx.Commit()
}
