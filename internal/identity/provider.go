// internal/identity/provider.go
package identity

import (
	"context"

	"github.com/adiair/PlotAura/internal/domain/user"
)

// Provider is the pluggable authentication capability consumed by the
// request pipeline. A provider turns credentials into a user, a user into
// the minimal durable reference stored in the session, and that reference
// back into a user at the start of each request. Additional strategies
// (third-party identity) plug in behind the same interface.
type Provider interface {
	// Authenticate verifies credentials. On any mismatch it returns
	// xerrors.ErrInvalidCredentials without revealing whether the username
	// exists or the password was wrong.
	Authenticate(ctx context.Context, username, password string) (*user.User, error)

	// Serialize produces the minimal durable pointer stored in the session.
	Serialize(u *user.User) string

	// Deserialize resolves a stored reference back to a full user. A
	// reference to a deleted account yields xerrors.ErrUnknownIdentity;
	// callers must treat the request as anonymous, not as failed.
	Deserialize(ctx context.Context, ref string) (*user.User, error)
}
