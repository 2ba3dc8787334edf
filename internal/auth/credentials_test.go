package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/require"

	"github.com/visolab/viso-tracker/internal/model"
	"github.com/visolab/viso-tracker/internal/repository"
	"github.com/visolab/viso-tracker/internal/utils"
)

// fakeUserStore keeps users in a map, mimicking the credential store's
// insert-with-uniqueness-check semantics.
type fakeUserStore struct {
	byEmail map[string]model.User
	nextID  uint64
	getErr  error // forced lookup failure
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]model.User{}, nextID: 1}
}

func (f *fakeUserStore) Create(_ context.Context, u *model.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return repository.ErrEmailExists
	}
	u.ID = f.nextID
	f.nextID++
	f.byEmail[u.Email] = *u
	return nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	if f.getErr != nil {
		return model.User{}, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func newTestService(store UserStore) *Service {
	return NewService(store, 4, log.New("test"))
}

func TestRegister_HashesAndSanitizes(t *testing.T) {
	t.Parallel()

	store := newFakeUserStore()
	svc := newTestService(store)

	id, err := svc.Register(context.Background(), "Ana", "ana@example.com", "secret123", "user")
	require.NoError(t, err)
	require.Equal(t, "ana@example.com", id.Email)
	require.Equal(t, "Ana", id.Name)
	require.Equal(t, model.RoleUser, id.Role)
	require.NotZero(t, id.ID)

	stored := store.byEmail["ana@example.com"]
	require.NotEqual(t, "secret123", stored.PasswordHash, "plaintext must never be stored")
	require.True(t, utils.VerifyPassword(stored.PasswordHash, "secret123"))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	store := newFakeUserStore()
	svc := newTestService(store)

	_, err := svc.Register(context.Background(), "Ana", "ana@example.com", "secret123", "user")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "Ana Again", "ana@example.com", "other", "user")
	require.ErrorIs(t, err, ErrEmailExists)
	require.Len(t, store.byEmail, 1, "no new record on conflict")
}

func TestRegister_UnknownRoleDefaultsToUser(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeUserStore())
	id, err := svc.Register(context.Background(), "Bob", "bob@example.com", "pw", "superuser")
	require.NoError(t, err)
	require.Equal(t, model.RoleUser, id.Role)
}

func TestAuthenticate_Success(t *testing.T) {
	t.Parallel()

	store := newFakeUserStore()
	svc := newTestService(store)
	_, err := svc.Register(context.Background(), "Ana", "ana@example.com", "secret123", "admin")
	require.NoError(t, err)

	id, err := svc.Authenticate(context.Background(), "ana@example.com", "secret123")
	require.NoError(t, err)
	require.Equal(t, "ana@example.com", id.Email)
	require.Equal(t, model.RoleAdmin, id.Role)
}

func TestAuthenticate_NonEnumeration(t *testing.T) {
	t.Parallel()

	store := newFakeUserStore()
	svc := newTestService(store)
	_, err := svc.Register(context.Background(), "Ana", "ana@example.com", "secret123", "user")
	require.NoError(t, err)

	// Wrong password for a real account and a login against a non-existent
	// account must be indistinguishable.
	_, errWrongPw := svc.Authenticate(context.Background(), "ana@example.com", "nope")
	_, errNoUser := svc.Authenticate(context.Background(), "ghost@example.com", "nope")
	require.ErrorIs(t, errWrongPw, ErrInvalidCredentials)
	require.ErrorIs(t, errNoUser, ErrInvalidCredentials)
	require.Equal(t, errWrongPw.Error(), errNoUser.Error())
}

func TestAuthenticate_StoreErrorCollapses(t *testing.T) {
	t.Parallel()

	store := newFakeUserStore()
	store.getErr = errors.New("connection refused")
	svc := newTestService(store)

	_, err := svc.Authenticate(context.Background(), "ana@example.com", "secret123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_EmptyInput(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeUserStore())
	_, err := svc.Authenticate(context.Background(), "", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
