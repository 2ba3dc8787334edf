package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/visolab/viso-tracker/internal/model"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func userColumns() []string {
	return []string{"id", "name", "email", "password_hash", "role", "created_at", "updated_at"}
}

func TestUserRepoCreate_Success(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users (name, email, password_hash, role) VALUES (?,?,?,?)")).
		WithArgs("Ana", "ana@example.com", "$2a$fakehash", "user").
		WillReturnResult(sqlmock.NewResult(7, 1))

	u := model.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "$2a$fakehash", Role: "user"}
	require.NoError(t, repo.Create(context.Background(), &u))
	require.Equal(t, uint64(7), u.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoCreate_DuplicateEmail(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'ana@example.com' for key 'users.email'"))

	u := model.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "$2a$fakehash", Role: "user"}
	err := repo.Create(context.Background(), &u)
	require.ErrorIs(t, err, ErrEmailExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoCreate_RejectsInvalidRecord(t *testing.T) {
	t.Parallel()

	db, _ := newMockDB(t)
	repo := NewUserRepo(db)

	u := model.User{Name: "", Email: "ana@example.com", PasswordHash: "h", Role: "user"}
	require.Error(t, repo.Create(context.Background(), &u))
}

func TestUserRepoGetByEmail_ExactMatch(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewUserRepo(db)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id,name,email,password_hash,role,created_at,updated_at FROM users WHERE email=? LIMIT 1")).
		WithArgs("Ana@Example.com").
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(7, "Ana", "Ana@Example.com", "$2a$fakehash", "user", now, now))

	u, err := repo.GetByEmail(context.Background(), "Ana@Example.com")
	require.NoError(t, err)
	require.Equal(t, "Ana@Example.com", u.Email, "email stored and matched as submitted")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoGetByEmail_NotFound(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id,name,email,password_hash,role,created_at,updated_at FROM users WHERE email=?")).
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "ghost@example.com")
	require.ErrorIs(t, err, ErrNotFound)
}
