package review

import (
	"context"
	"net/http"

	"github.com/adiair/PlotAura/internal/domain/review"
	xerrors "github.com/adiair/PlotAura/internal/pkg/errors"
	"github.com/adiair/PlotAura/internal/repository/mongodb"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

// Service implements the review use cases under a listing.
type Service struct {
	reviews  *mongodb.ReviewRepository
	listings *mongodb.ListingRepository
	logger   *zap.Logger
}

func NewService(reviews *mongodb.ReviewRepository, listings *mongodb.ListingRepository, logger *zap.Logger) *Service {
	return &Service{reviews: reviews, listings: listings, logger: logger}
}

func (s *Service) ForListing(ctx context.Context, listingID bson.ObjectID) ([]review.Review, error) {
	return s.reviews.FindByListing(ctx, listingID)
}

// Add creates a review on an existing listing and links it.
func (s *Service) Add(ctx context.Context, listingID string, form *review.Form, authorID bson.ObjectID) (*review.Review, error) {
	if form.Rating < 1 || form.Rating > 5 {
		return nil, xerrors.WrapStatus(xerrors.ErrInvalidInput, http.StatusBadRequest, "Rating must be between 1 and 5")
	}

	l, err := s.listings.FindByID(ctx, listingID)
	if xerrors.Is(err, xerrors.ErrNotFound) {
		return nil, xerrors.New(http.StatusNotFound, "Listing not found")
	}
	if err != nil {
		return nil, xerrors.Wrap(err, "review")
	}

	rev := &review.Review{
		ListingID: l.ID,
		AuthorID:  authorID,
		Comment:   form.Comment,
		Rating:    form.Rating,
	}
	if err := s.reviews.Create(ctx, rev); err != nil {
		return nil, xerrors.Wrap(err, "review")
	}
	if err := s.listings.AddReview(ctx, l.ID, rev.ID); err != nil {
		return nil, xerrors.Wrap(err, "review")
	}
	return rev, nil
}

// Remove deletes a review; only its author may do so.
func (s *Service) Remove(ctx context.Context, listingID, reviewID string, actorID bson.ObjectID) error {
	rev, err := s.reviews.FindByID(ctx, reviewID)
	if xerrors.Is(err, xerrors.ErrNotFound) {
		return xerrors.New(http.StatusNotFound, "Review not found")
	}
	if err != nil {
		return xerrors.Wrap(err, "review")
	}
	if rev.AuthorID != actorID {
		return xerrors.WrapStatus(xerrors.ErrForbidden, http.StatusForbidden, "You are not the author of this review")
	}

	if err := s.reviews.Delete(ctx, rev.ID); err != nil {
		return xerrors.Wrap(err, "review")
	}
	if err := s.listings.RemoveReview(ctx, rev.ListingID, rev.ID); err != nil {
		s.logger.Error("failed to unlink review", zap.Error(err))
	}
	return nil
}
