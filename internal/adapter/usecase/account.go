package usecase

import (
	"context"
	"errors"
	"strings"

	"adpilot/internal/auth"
	"adpilot/internal/core/domain"
	"adpilot/internal/core/port"
)

var _ port.AccountUseCase = (*AccountUseCase)(nil)

// AccountUseCase implements registration and credential checks on top
// of the ledger repository and an injected password hasher.
type AccountUseCase struct {
	repo   port.LedgerRepository
	hasher port.PasswordHasher
}

// NewAccountUseCase creates the account use case.
func NewAccountUseCase(repo port.LedgerRepository, hasher port.PasswordHasher) *AccountUseCase {
	return &AccountUseCase{repo: repo, hasher: hasher}
}

// Register creates an account with role user, zero balance and the free
// plan. The credential is hashed before it ever reaches the store.
func (u *AccountUseCase) Register(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, port.Validation("username", "must not be empty")
	}
	hash, err := u.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return nil, port.Validation("password", err.Error())
		}
		return nil, err
	}
	return u.repo.CreateUser(ctx, domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Plan:         domain.PlanFree,
	})
}

// Login returns the account matching the credentials. Unknown handle
// and wrong password both yield ErrUnauthenticated so the two causes
// cannot be told apart.
func (u *AccountUseCase) Login(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := u.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !u.hasher.Compare(user.PasswordHash, password) {
		return nil, port.ErrUnauthenticated
	}
	return user, nil
}

// Get returns an account by id, or nil when absent.
func (u *AccountUseCase) Get(ctx context.Context, id int64) (*domain.User, error) {
	return u.repo.GetUser(ctx, id)
}
