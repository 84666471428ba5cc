// internal/repository/mongodb/session_repo.go
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	xerrors "github.com/adiair/PlotAura/internal/pkg/errors"
	"github.com/adiair/PlotAura/internal/pkg/session"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// SessionRepository is the durable session.Store backed by the same
// document database as the rest of the application, so identity survives
// process restarts.
type SessionRepository struct {
	coll *mongo.Collection
}

func NewSessionRepository(database *mongo.Database) *SessionRepository {
	return &SessionRepository{coll: database.Collection("sessions")}
}

// EnsureIndexes installs the TTL index that reaps expired records. Mongo's
// TTL monitor lags by up to a minute, so Get still filters on expiry.
func (r *SessionRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return fmt.Errorf("failed to create session TTL index: %w", err)
	}
	return nil
}

// storeErr tags a driver failure so callers can classify the outage and
// degrade instead of failing the request.
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, xerrors.ErrStoreUnavailable, err)
}

func (r *SessionRepository) Get(ctx context.Context, id string) (*session.Record, error) {
	filter := bson.M{
		"_id":        id,
		"expires_at": bson.M{"$gt": time.Now().UTC()},
	}

	var rec session.Record
	err := r.coll.FindOne(ctx, filter).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("failed to load session", err)
	}
	return &rec, nil
}

func (r *SessionRepository) Put(ctx context.Context, rec *session.Record) error {
	_, err := r.coll.ReplaceOne(ctx,
		bson.M{"_id": rec.ID},
		rec,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return storeErr("failed to store session", err)
	}
	return nil
}

func (r *SessionRepository) Touch(ctx context.Context, id string, expiresAt, touchedAt time.Time) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"expires_at": expiresAt, "touched_at": touchedAt}},
	)
	if err != nil {
		return storeErr("failed to touch session", err)
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return storeErr("failed to delete session", err)
	}
	return nil
}
