package account

import (
	"context"
	"net/http"
	"strings"

	"github.com/adiair/PlotAura/internal/domain/user"
	"github.com/adiair/PlotAura/internal/identity"
	xerrors "github.com/adiair/PlotAura/internal/pkg/errors"
	"github.com/adiair/PlotAura/internal/repository/mongodb"

	"go.uber.org/zap"
)

// Service handles account registration. Authentication itself lives in the
// identity provider; this only creates the credential it verifies.
type Service struct {
	users  *mongodb.UserRepository
	logger *zap.Logger
}

func NewService(users *mongodb.UserRepository, logger *zap.Logger) *Service {
	return &Service{users: users, logger: logger}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, req *user.SignupRequest) (*user.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, xerrors.WrapStatus(xerrors.ErrInvalidInput, http.StatusBadRequest, "Username and password are required")
	}

	hash, err := identity.HashPassword(req.Password)
	if err != nil {
		return nil, xerrors.Wrap(err, "account")
	}

	u := &user.User{
		Username:     username,
		Email:        strings.TrimSpace(strings.ToLower(req.Email)),
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, u); err != nil {
		if xerrors.Is(err, xerrors.ErrDuplicateEntry) {
			return nil, xerrors.WrapStatus(err, http.StatusConflict, "That username is already taken")
		}
		return nil, xerrors.Wrap(err, "account: failed to create user")
	}

	s.logger.Info("account registered", zap.String("username", u.Username))
	return u, nil
}
