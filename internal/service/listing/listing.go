package listing

import (
	"context"
	"net/http"

	"github.com/adiair/PlotAura/internal/domain/listing"
	xerrors "github.com/adiair/PlotAura/internal/pkg/errors"
	"github.com/adiair/PlotAura/internal/repository/mongodb"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

// Service implements the listing use cases. Ownership checks live here so
// handlers stay thin.
type Service struct {
	listings *mongodb.ListingRepository
	reviews  *mongodb.ReviewRepository
	logger   *zap.Logger
}

func NewService(listings *mongodb.ListingRepository, reviews *mongodb.ReviewRepository, logger *zap.Logger) *Service {
	return &Service{listings: listings, reviews: reviews, logger: logger}
}

func (s *Service) List(ctx context.Context) ([]listing.Listing, error) {
	return s.listings.FindAll(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*listing.Listing, error) {
	l, err := s.listings.FindByID(ctx, id)
	if xerrors.Is(err, xerrors.ErrNotFound) {
		return nil, xerrors.New(http.StatusNotFound, "Listing not found")
	}
	return l, err
}

func (s *Service) Create(ctx context.Context, form *listing.Form, ownerID bson.ObjectID) (*listing.Listing, error) {
	l := &listing.Listing{
		Title:       form.Title,
		Description: form.Description,
		ImageURL:    form.ImageURL,
		Price:       form.Price,
		Location:    form.Location,
		Country:     form.Country,
		OwnerID:     ownerID,
	}
	if err := s.listings.Create(ctx, l); err != nil {
		return nil, xerrors.Wrap(err, "listing")
	}
	s.logger.Info("listing created",
		zap.String("listing_id", l.ID.Hex()),
		zap.String("owner_id", ownerID.Hex()),
	)
	return l, nil
}

func (s *Service) Update(ctx context.Context, id string, form *listing.Form, actorID bson.ObjectID) (*listing.Listing, error) {
	l, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.OwnerID != actorID {
		return nil, xerrors.WrapStatus(xerrors.ErrForbidden, http.StatusForbidden, "You are not the owner of this listing")
	}

	l.Title = form.Title
	l.Description = form.Description
	l.ImageURL = form.ImageURL
	l.Price = form.Price
	l.Location = form.Location
	l.Country = form.Country

	if err := s.listings.Update(ctx, l); err != nil {
		return nil, xerrors.Wrap(err, "listing")
	}
	return l, nil
}

// Delete removes a listing and its attached reviews.
func (s *Service) Delete(ctx context.Context, id string, actorID bson.ObjectID) error {
	l, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if l.OwnerID != actorID {
		return xerrors.WrapStatus(xerrors.ErrForbidden, http.StatusForbidden, "You are not the owner of this listing")
	}

	if err := s.listings.Delete(ctx, l.ID); err != nil {
		return xerrors.Wrap(err, "listing")
	}
	if err := s.reviews.DeleteByListing(ctx, l.ID); err != nil {
		// The listing is already gone; orphaned reviews are unreachable
		// but should still be reported.
		s.logger.Error("failed to delete listing reviews", zap.Error(err))
	}
	s.logger.Info("listing deleted", zap.String("listing_id", l.ID.Hex()))
	return nil
}
