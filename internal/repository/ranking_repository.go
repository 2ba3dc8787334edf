package repository

import (
	"context"
	"database/sql"

	"github.com/visolab/viso-tracker/internal/model"
)

// RankingRepo maintains the friendship-ranking table: one row per unordered
// object pair, scored by accumulated interaction strength. Rows are bumped
// incrementally by the queue consumer and can be rebuilt wholesale from the
// interactions table.
type RankingRepo struct {
	db *sql.DB
}

func NewRankingRepo(db *sql.DB) *RankingRepo {
	return &RankingRepo{db: db}
}

// Bump adds delta to the pair's score, creating the row on first contact.
// The pair is canonicalized so event direction never splits a friendship
// across two rows.
func (r *RankingRepo) Bump(ctx context.Context, objectA, objectB uint64, delta int) error {
	a, b := model.OrderPair(objectA, objectB)
	if delta < 1 {
		delta = 1
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO rankings (object_a_id, object_b_id, score) VALUES (?,?,?)
		 ON DUPLICATE KEY UPDATE score = score + VALUES(score)`,
		a, b, delta)
	return err
}

// RankedPair is a ranking row joined with both object names for display.
type RankedPair struct {
	ObjectAID   uint64 `json:"object_a_id"`
	ObjectAName string `json:"object_a_name"`
	ObjectBID   uint64 `json:"object_b_id"`
	ObjectBName string `json:"object_b_name"`
	Score       uint64 `json:"score"`
}

// ListTop returns the highest-scoring pairs.
func (r *RankingRepo) ListTop(ctx context.Context, limit int) ([]RankedPair, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT rk.object_a_id, oa.name, rk.object_b_id, ob.name, rk.score
		 FROM rankings rk
		 JOIN objects oa ON oa.id = rk.object_a_id
		 JOIN objects ob ON ob.id = rk.object_b_id
		 ORDER BY rk.score DESC, rk.object_a_id, rk.object_b_id
		 LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []RankedPair{}
	for rows.Next() {
		var p RankedPair
		if err := rows.Scan(&p.ObjectAID, &p.ObjectAName, &p.ObjectBID, &p.ObjectBName, &p.Score); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Rebuild recomputes the whole table from recorded interactions in one
// transaction. LEAST/GREATEST canonicalize pairs the same way OrderPair
// does, so a rebuild and incremental bumps converge on identical rows.
func (r *RankingRepo) Rebuild(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM rankings"); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO rankings (object_a_id, object_b_id, score)
		 SELECT LEAST(subject_id, target_id), GREATEST(subject_id, target_id), SUM(strength)
		 FROM interactions
		 GROUP BY LEAST(subject_id, target_id), GREATEST(subject_id, target_id)`); err != nil {
		return err
	}
	return tx.Commit()
}
