package repository

import (
	"context"
	"database/sql"
)

// StatsRepo answers the counting questions the dashboard asks: how many
// objects, classes and interactions exist and how objects distribute over
// classes. All of it is plain aggregate SQL.
type StatsRepo struct {
	db *sql.DB
}

func NewStatsRepo(db *sql.DB) *StatsRepo {
	return &StatsRepo{db: db}
}

// ClassCount is the number of objects in one class.
type ClassCount struct {
	ClassID uint64 `json:"class_id"`
	Name    string `json:"name"`
	Objects uint64 `json:"objects"`
}

// Totals holds the overall entity counts.
type Totals struct {
	Objects      uint64 `json:"objects"`
	Classes      uint64 `json:"classes"`
	Interactions uint64 `json:"interactions"`
}

// Totals returns overall object/class/interaction counts.
func (r *StatsRepo) Totals(ctx context.Context) (Totals, error) {
	var t Totals
	err := r.db.QueryRowContext(ctx,
		`SELECT
		   (SELECT COUNT(*) FROM objects),
		   (SELECT COUNT(*) FROM classes),
		   (SELECT COUNT(*) FROM interactions)`).
		Scan(&t.Objects, &t.Classes, &t.Interactions)
	return t, err
}

// ObjectsPerClass returns the object count per class, largest first.
func (r *StatsRepo) ObjectsPerClass(ctx context.Context) ([]ClassCount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.id, c.name, COUNT(o.id)
		 FROM classes c
		 LEFT JOIN objects o ON o.class_id = c.id
		 GROUP BY c.id, c.name
		 ORDER BY COUNT(o.id) DESC, c.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ClassCount{}
	for rows.Next() {
		var cc ClassCount
		if err := rows.Scan(&cc.ClassID, &cc.Name, &cc.Objects); err != nil {
			return nil, err
		}
		out = append(out, cc)
	}
	return out, rows.Err()
}
