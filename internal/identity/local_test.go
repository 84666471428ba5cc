package identity

import (
	"context"
	"testing"

	"github.com/adiair/PlotAura/internal/domain/user"
	xerrors "github.com/adiair/PlotAura/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type fakeUserRepo struct {
	byUsername map[string]*user.User
	byID       map[string]*user.User
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*user.User, error) {
	if u, ok := f.byUsername[username]; ok {
		return u, nil
	}
	return nil, xerrors.ErrNotFound
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*user.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, xerrors.ErrNotFound
}

func newFakeRepo(t *testing.T, password string) (*fakeUserRepo, *user.User) {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)

	u := &user.User{
		ID:           bson.NewObjectID(),
		Username:     "delta",
		Email:        "delta@example.com",
		PasswordHash: hash,
	}
	return &fakeUserRepo{
		byUsername: map[string]*user.User{u.Username: u},
		byID:       map[string]*user.User{u.ID.Hex(): u},
	}, u
}

func TestAuthenticateSuccess(t *testing.T) {
	repo, want := newFakeRepo(t, "correct horse")
	p := NewLocalProvider(repo)

	got, err := p.Authenticate(context.Background(), "delta", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
}

func TestAuthenticateDoesNotRevealWhichCredentialFailed(t *testing.T) {
	repo, _ := newFakeRepo(t, "correct horse")
	p := NewLocalProvider(repo)

	_, errPassword := p.Authenticate(context.Background(), "delta", "wrong")
	_, errUsername := p.Authenticate(context.Background(), "nobody", "wrong")

	assert.ErrorIs(t, errPassword, xerrors.ErrInvalidCredentials)
	assert.ErrorIs(t, errUsername, xerrors.ErrInvalidCredentials)
	assert.Equal(t, errPassword.Error(), errUsername.Error(),
		"unknown user and bad password must be indistinguishable")
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	repo, u := newFakeRepo(t, "pw123456")
	p := NewLocalProvider(repo)

	ref := p.Serialize(u)
	assert.Equal(t, u.ID.Hex(), ref)

	got, err := p.Deserialize(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, u.Username, got.Username)
}

func TestDeserializeDeletedUser(t *testing.T) {
	repo, u := newFakeRepo(t, "pw123456")
	p := NewLocalProvider(repo)
	ref := p.Serialize(u)

	// Account removal invalidates stored references.
	delete(repo.byID, u.ID.Hex())

	_, err := p.Deserialize(context.Background(), ref)
	assert.ErrorIs(t, err, xerrors.ErrUnknownIdentity)
}
