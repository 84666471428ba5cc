package account

import (
	"context"
	"net/http"
	"testing"

	"github.com/adiair/PlotAura/internal/domain/user"
	xerrors "github.com/adiair/PlotAura/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRegisterRequiresCredentials(t *testing.T) {
	svc := NewService(nil, zap.NewNop())

	cases := []user.SignupRequest{
		{Username: "", Password: "secret"},
		{Username: "   ", Password: "secret"},
		{Username: "alice", Password: ""},
	}
	for _, req := range cases {
		_, err := svc.Register(context.Background(), &req)

		require.Error(t, err)
		assert.True(t, xerrors.Is(err, xerrors.ErrInvalidInput))
		assert.Equal(t, http.StatusBadRequest, xerrors.StatusOf(err))
	}
}
