// internal/repository/mongodb/listing_repo.go
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/adiair/PlotAura/internal/domain/listing"
	xerrors "github.com/adiair/PlotAura/internal/pkg/errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type ListingRepository struct {
	coll *mongo.Collection
}

func NewListingRepository(database *mongo.Database) *ListingRepository {
	return &ListingRepository{coll: database.Collection("listings")}
}

func (r *ListingRepository) Create(ctx context.Context, l *listing.Listing) error {
	now := time.Now().UTC()
	l.CreatedAt = now
	l.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, l)
	if err != nil {
		return fmt.Errorf("failed to insert listing: %w", err)
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		l.ID = id
	}
	return nil
}

func (r *ListingRepository) FindAll(ctx context.Context) ([]listing.Listing, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	defer cur.Close(ctx)

	var listings []listing.Listing
	if err := cur.All(ctx, &listings); err != nil {
		return nil, fmt.Errorf("failed to decode listings: %w", err)
	}
	return listings, nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*listing.Listing, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, xerrors.ErrNotFound
	}

	var l listing.Listing
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&l)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find listing: %w", err)
	}
	return &l, nil
}

func (r *ListingRepository) Update(ctx context.Context, l *listing.Listing) error {
	l.UpdatedAt = time.Now().UTC()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": l.ID}, l)
	if err != nil {
		return fmt.Errorf("failed to update listing: %w", err)
	}
	if res.MatchedCount == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	if res.DeletedCount == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// AddReview links a review id to its listing.
func (r *ListingRepository) AddReview(ctx context.Context, listingID, reviewID bson.ObjectID) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": listingID},
		bson.M{"$push": bson.M{"review_ids": reviewID}},
	)
	if err != nil {
		return fmt.Errorf("failed to attach review: %w", err)
	}
	return nil
}

// RemoveReview unlinks a review id from its listing.
func (r *ListingRepository) RemoveReview(ctx context.Context, listingID, reviewID bson.ObjectID) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": listingID},
		bson.M{"$pull": bson.M{"review_ids": reviewID}},
	)
	if err != nil {
		return fmt.Errorf("failed to detach review: %w", err)
	}
	return nil
}
