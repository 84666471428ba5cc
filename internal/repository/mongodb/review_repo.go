// internal/repository/mongodb/review_repo.go
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/adiair/PlotAura/internal/domain/review"
	xerrors "github.com/adiair/PlotAura/internal/pkg/errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type ReviewRepository struct {
	coll *mongo.Collection
}

func NewReviewRepository(database *mongo.Database) *ReviewRepository {
	return &ReviewRepository{coll: database.Collection("reviews")}
}

func (r *ReviewRepository) Create(ctx context.Context, rev *review.Review) error {
	rev.CreatedAt = time.Now().UTC()

	res, err := r.coll.InsertOne(ctx, rev)
	if err != nil {
		return fmt.Errorf("failed to insert review: %w", err)
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		rev.ID = id
	}
	return nil
}

func (r *ReviewRepository) FindByID(ctx context.Context, id string) (*review.Review, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, xerrors.ErrNotFound
	}

	var rev review.Review
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&rev)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find review: %w", err)
	}
	return &rev, nil
}

func (r *ReviewRepository) FindByListing(ctx context.Context, listingID bson.ObjectID) ([]review.Review, error) {
	cur, err := r.coll.Find(ctx, bson.M{"listing_id": listingID})
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer cur.Close(ctx)

	var reviews []review.Review
	if err := cur.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if res.DeletedCount == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// DeleteByListing removes all reviews attached to a listing, used when the
// listing itself is deleted.
func (r *ReviewRepository) DeleteByListing(ctx context.Context, listingID bson.ObjectID) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"listing_id": listingID}); err != nil {
		return fmt.Errorf("failed to delete listing reviews: %w", err)
	}
	return nil
}
