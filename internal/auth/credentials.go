package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/gommon/log"

	"github.com/visolab/viso-tracker/internal/model"
	"github.com/visolab/viso-tracker/internal/repository"
	"github.com/visolab/viso-tracker/internal/utils"
)

// ErrInvalidCredentials is the single failure signal for authentication.
// Unknown email, wrong password and credential-store read errors are
// indistinguishable to the caller, so responses never reveal whether an
// email is registered.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrEmailExists is re-exported so handlers depending on this package do
// not need to know which store produced the conflict.
var ErrEmailExists = repository.ErrEmailExists

// Identity is the sanitized view of a user record: everything a client may
// see, nothing it may not. It is derived on every successful validation and
// never persisted.
type Identity struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UserStore is the slice of the credential store the service needs.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// Service is the credential validator. It owns registration and login
// business rules end to end: handlers bind request bodies and translate
// errors, nothing more. Registration validation lives here and only here.
type Service struct {
	users      UserStore
	bcryptCost int
	logger     *log.Logger
}

// NewService constructs the credential validator. The logger records the
// real cause of lookup failures that are masked from the client.
func NewService(users UserStore, bcryptCost int, logger *log.Logger) *Service {
	if users == nil || logger == nil {
		panic("nil dependency passed to auth.NewService")
	}
	return &Service{users: users, bcryptCost: bcryptCost, logger: logger}
}

// Register hashes the password and inserts a new identity record. Duplicate
// emails surface as ErrEmailExists; the uniqueness check is the store's
// atomic insert, not a prior read. Unknown roles fall back to "user".
func (s *Service) Register(ctx context.Context, name, email, password, role string) (Identity, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return Identity{}, errors.New("name, email and password are required")
	}
	if !model.ValidRole(role) {
		role = model.RoleUser
	}
	hash, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		return Identity{}, err
	}
	u := model.User{Name: name, Email: email, PasswordHash: hash, Role: role}
	if err := s.users.Create(ctx, &u); err != nil {
		return Identity{}, err
	}
	return sanitize(u), nil
}

// Authenticate checks an email/password pair against the credential store
// and returns a sanitized identity on success. Every failure mode collapses
// into ErrInvalidCredentials; store errors are additionally logged so
// operators can tell an outage from a typo.
func (s *Service) Authenticate(ctx context.Context, email, password string) (Identity, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return Identity{}, ErrInvalidCredentials
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Errorf("auth: credential lookup failed: %v", err)
		}
		return Identity{}, ErrInvalidCredentials
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return Identity{}, ErrInvalidCredentials
	}
	return sanitize(u), nil
}

// Lookup loads the sanitized identity for a known user id. Used by the /me
// endpoint after token verification.
func (s *Service) Lookup(ctx context.Context, id uint64) (Identity, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return Identity{}, err
	}
	return sanitize(u), nil
}

// sanitize strips the password hash and internal-only fields.
func sanitize(u model.User) Identity {
	return Identity{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
