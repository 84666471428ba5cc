package review

import (
	"context"
	"net/http"
	"testing"

	"github.com/adiair/PlotAura/internal/domain/review"
	xerrors "github.com/adiair/PlotAura/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

func TestAddRejectsOutOfRangeRating(t *testing.T) {
	svc := NewService(nil, nil, zap.NewNop())

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Add(context.Background(), bson.NewObjectID().Hex(),
			&review.Form{Comment: "nice", Rating: rating}, bson.NewObjectID())

		require.Error(t, err)
		assert.True(t, xerrors.Is(err, xerrors.ErrInvalidInput))
		assert.Equal(t, http.StatusBadRequest, xerrors.StatusOf(err))
		assert.Equal(t, "Rating must be between 1 and 5", xerrors.MessageOf(err))
	}
}
