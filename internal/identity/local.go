// internal/identity/local.go
package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/adiair/PlotAura/internal/domain/user"
	xerrors "github.com/adiair/PlotAura/internal/pkg/errors"

	"golang.org/x/crypto/bcrypt"
)

// UserRepo is the slice of the user repository the provider needs.
type UserRepo interface {
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	FindByID(ctx context.Context, id string) (*user.User, error)
}

// dummyHash is compared against when the username does not exist, so the
// miss path costs the same bcrypt work as a real comparison.
var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("plotaura-timing-pad"), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("identity: failed to build dummy hash: %v", err))
	}
	return h
}()

// LocalProvider authenticates against bcrypt password hashes stored with
// the user record.
type LocalProvider struct {
	users UserRepo
}

func NewLocalProvider(users UserRepo) *LocalProvider {
	return &LocalProvider{users: users}
}

func (p *LocalProvider) Authenticate(ctx context.Context, username, password string) (*user.User, error) {
	u, err := p.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			// Burn the same bcrypt cost as the hit path.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, xerrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("identity: user lookup failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, xerrors.ErrInvalidCredentials
	}
	return u, nil
}

func (p *LocalProvider) Serialize(u *user.User) string {
	return u.ID.Hex()
}

func (p *LocalProvider) Deserialize(ctx context.Context, ref string) (*user.User, error) {
	u, err := p.users.FindByID(ctx, ref)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.ErrUnknownIdentity
		}
		return nil, fmt.Errorf("identity: reference lookup failed: %w", err)
	}
	return u, nil
}

// HashPassword produces the stored bcrypt hash for a new credential.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("identity: failed to hash password: %w", err)
	}
	return string(h), nil
}
