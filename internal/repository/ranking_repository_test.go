package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestRankingBump_CanonicalPairOrder(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewRankingRepo(db)

	// Event arrived as (9,2); the row must be written as (2,9).
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO rankings (object_a_id, object_b_id, score) VALUES (?,?,?)")).
		WithArgs(uint64(2), uint64(9), 3).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Bump(context.Background(), 9, 2, 3))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRankingBump_ClampsDelta(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewRankingRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO rankings")).
		WithArgs(uint64(1), uint64(2), 1).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Bump(context.Background(), 1, 2, 0))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRankingRebuild_RunsInTransaction(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewRankingRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM rankings")).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO rankings (object_a_id, object_b_id, score)")).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectCommit()

	require.NoError(t, repo.Rebuild(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRankingListTop(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewRankingRepo(db)

	rows := sqlmock.NewRows([]string{"object_a_id", "name", "object_b_id", "name", "score"}).
		AddRow(1, "gate-sensor", 2, "door-beacon", 42).
		AddRow(2, "door-beacon", 5, "roof-cam", 17)
	mock.ExpectQuery("SELECT rk.object_a_id, oa.name, rk.object_b_id, ob.name, rk.score").
		WithArgs(20).
		WillReturnRows(rows)

	out, err := repo.ListTop(context.Background(), 0) // 0 -> default limit 20
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, uint64(42), out[0].Score)
	require.Equal(t, "gate-sensor", out[0].ObjectAName)
	require.NoError(t, mock.ExpectationsWereMet())
}
