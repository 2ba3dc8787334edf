package handler_test

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/require"

	"github.com/visolab/viso-tracker/internal/auth"
	"github.com/visolab/viso-tracker/internal/config"
	"github.com/visolab/viso-tracker/internal/handler"
	"github.com/visolab/viso-tracker/internal/repository"
	"github.com/visolab/viso-tracker/internal/router"
	"github.com/visolab/viso-tracker/internal/utils"
)

const testSecret = "test-secret"

func testConfig() config.Config {
	return config.Config{
		Env:            "test",
		JWTSecret:      testSecret,
		AccessTTLMin:   15,
		RefreshTTLDays: 7,
		BcryptCost:     4,
	}
}

// passthrough stands in for the Redis-backed middlewares in tests.
func passthrough(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error { return next(c) }
}

func newAuthApp(t *testing.T) (*echo.Echo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	cfg := testConfig()
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	svc := auth.NewService(users, cfg.BcryptCost, log.New("test"))

	e := echo.New()
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, svc, tokens), cfg.JWTSecret, passthrough)
	return e, mock
}

func doJSON(e *echo.Echo, method, path, body, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRegister_CreatedWithoutPasswordField(t *testing.T) {
	t.Parallel()

	e, mock := newAuthApp(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users (name, email, password_hash, role) VALUES (?,?,?,?)")).
		WithArgs("Ana", "ana@example.com", sqlmock.AnyArg(), "user").
		WillReturnResult(sqlmock.NewResult(1, 1))

	rec := doJSON(e, http.MethodPost, "/v1/auth/register",
		`{"name":"Ana","email":"ana@example.com","password":"secret123","role":"user"}`, "")

	require.Equal(t, http.StatusCreated, rec.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "ana@example.com", got["email"])
	require.Equal(t, "Ana", got["name"])
	require.Equal(t, "user", got["role"])
	require.NotContains(t, rec.Body.String(), "password")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_MissingFields(t *testing.T) {
	t.Parallel()

	e, _ := newAuthApp(t)
	rec := doJSON(e, http.MethodPost, "/v1/auth/register", `{"email":"ana@example.com"}`, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_DuplicateEmailConflict(t *testing.T) {
	t.Parallel()

	e, mock := newAuthApp(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(sqlErrDuplicate())

	rec := doJSON(e, http.MethodPost, "/v1/auth/register",
		`{"name":"Ana","email":"ana@example.com","password":"secret123"}`, "")
	require.Equal(t, http.StatusConflict, rec.Code)
}

func sqlErrDuplicate() error {
	return &mysqlLikeError{"Error 1062 (23000): Duplicate entry 'ana@example.com' for key 'users.email'"}
}

type mysqlLikeError struct{ msg string }

func (e *mysqlLikeError) Error() string { return e.msg }

func userRow(t *testing.T, id uint64, name, email, password, role string) *sqlmock.Rows {
	t.Helper()
	hash, err := utils.HashPassword(password, 4)
	require.NoError(t, err)
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "role", "created_at", "updated_at"}).
		AddRow(id, name, email, hash, role, now, now)
}

func TestLogin_SuccessReturnsVerifiableToken(t *testing.T) {
	t.Parallel()

	e, mock := newAuthApp(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id,name,email,password_hash,role,created_at,updated_at FROM users WHERE email=?")).
		WithArgs("ana@example.com").
		WillReturnRows(userRow(t, 5, "Ana", "ana@example.com", "secret123", "user"))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?,?,?)")).
		WithArgs(uint64(5), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	rec := doJSON(e, http.MethodPost, "/v1/auth/login",
		`{"email":"ana@example.com","password":"secret123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.NotEmpty(t, got.AccessToken)

	claims, err := auth.VerifyAccessToken(testSecret, got.AccessToken)
	require.NoError(t, err)
	require.Equal(t, uint64(5), claims.UserID)
	require.Equal(t, "ana@example.com", claims.Email)
	require.Equal(t, "user", claims.Role)
	require.NoError(t, mock.ExpectationsWereMet())
}

// Wrong password and unknown email must produce byte-identical responses.
func TestLogin_NonEnumeration(t *testing.T) {
	t.Parallel()

	e, mock := newAuthApp(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id,name,email,password_hash,role,created_at,updated_at FROM users WHERE email=?")).
		WithArgs("ana@example.com").
		WillReturnRows(userRow(t, 5, "Ana", "ana@example.com", "secret123", "user"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id,name,email,password_hash,role,created_at,updated_at FROM users WHERE email=?")).
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	wrongPw := doJSON(e, http.MethodPost, "/v1/auth/login",
		`{"email":"ana@example.com","password":"nope"}`, "")
	noUser := doJSON(e, http.MethodPost, "/v1/auth/login",
		`{"email":"ghost@example.com","password":"nope"}`, "")

	require.Equal(t, http.StatusUnauthorized, wrongPw.Code)
	require.Equal(t, http.StatusUnauthorized, noUser.Code)
	require.Equal(t, wrongPw.Body.String(), noUser.Body.String())
}

func TestMe_ReturnsSanitizedIdentity(t *testing.T) {
	t.Parallel()

	e, mock := newAuthApp(t)
	tok, err := auth.NewAccessToken(testSecret, auth.Identity{ID: 5, Email: "ana@example.com", Role: "user"}, 15)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id,name,email,password_hash,role,created_at,updated_at FROM users WHERE id=?")).
		WithArgs(uint64(5)).
		WillReturnRows(userRow(t, 5, "Ana", "ana@example.com", "secret123", "user"))

	rec := doJSON(e, http.MethodGet, "/v1/auth/me", "", tok.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "ana@example.com", got["email"])
	require.Equal(t, "Ana", got["name"])
	require.Equal(t, "user", got["role"])
	require.NotContains(t, rec.Body.String(), "password")
}

func TestMe_MissingOrExpiredToken(t *testing.T) {
	t.Parallel()

	e, _ := newAuthApp(t)

	rec := doJSON(e, http.MethodGet, "/v1/auth/me", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	expired, err := auth.NewAccessToken(testSecret, auth.Identity{ID: 5, Email: "ana@example.com", Role: "user"}, -1)
	require.NoError(t, err)
	rec = doJSON(e, http.MethodGet, "/v1/auth/me", "", expired.Token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	t.Parallel()

	e, mock := newAuthApp(t)
	raw := strings.Repeat("ab", 48)
	hash := auth.HashRefreshRaw(raw)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, expires_at, revoked_at FROM refresh_tokens WHERE token_hash=?")).
		WithArgs(hash).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
			AddRow(5, time.Now().UTC().Add(time.Hour), nil))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE refresh_tokens SET revoked_at=NOW() WHERE token_hash=? AND revoked_at IS NULL")).
		WithArgs(hash).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := doJSON(e, http.MethodPost, "/v1/auth/logout", `{"refresh_token":"`+raw+`"}`, "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
