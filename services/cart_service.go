package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/voyagelab/travel-backend/apperrors"
	"github.com/voyagelab/travel-backend/models"
	"github.com/voyagelab/travel-backend/repository"
)

// AddItemInput describes an add-to-cart request. Exactly one of PackageID and
// TripID must be set; the item type is derived from which one it is.
type AddItemInput struct {
	PackageID *uuid.UUID `json:"package_id"`
	TripID    *uuid.UUID `json:"trip_id"`
	Quantity  int        `json:"quantity"`
}

// CartService maintains the per-user cart and validates catalog references
// before they enter it.
type CartService struct {
	carts   repository.CartRepository
	catalog repository.CatalogRepository
	trips   repository.TripRepository
}

func NewCartService(carts repository.CartRepository, catalog repository.CatalogRepository, trips repository.TripRepository) *CartService {
	return &CartService{carts: carts, catalog: catalog, trips: trips}
}

// AddItem validates the reference and upserts the cart row. Adding a
// reference the user already has in the cart increments that row's quantity
// instead of creating a duplicate.
func (s *CartService) AddItem(ctx context.Context, userID string, in AddItemInput) (*models.CartItem, error) {
	if in.PackageID == nil && in.TripID == nil {
		return nil, apperrors.Validation("packageId or tripId is required")
	}
	if in.PackageID != nil && in.TripID != nil {
		return nil, apperrors.Validation("only one of packageId and tripId may be set")
	}
	if in.Quantity < 0 {
		return nil, apperrors.Validation("quantity must be positive")
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}

	item := &models.CartItem{
		UserID:   userID,
		Quantity: in.Quantity,
	}

	if in.PackageID != nil {
		if _, err := s.catalog.PackageByID(ctx, *in.PackageID); err != nil {
			return nil, err
		}
		item.ItemType = models.ItemTypePackage
		item.PackageID = in.PackageID
	} else {
		// A trip can only be carted by its owner.
		if _, err := s.trips.ByIDAndUser(ctx, *in.TripID, userID); err != nil {
			return nil, err
		}
		item.ItemType = models.ItemTypeTrip
		item.TripID = in.TripID
	}

	return s.carts.AddItem(ctx, item)
}

// RemoveItem deletes a single cart item owned by the user.
func (s *CartService) RemoveItem(ctx context.Context, userID string, itemID uuid.UUID) error {
	return s.carts.RemoveItem(ctx, userID, itemID)
}

// Clear empties the user's cart. Clearing an empty cart succeeds silently.
func (s *CartService) Clear(ctx context.Context, userID string) error {
	return s.carts.Clear(ctx, userID)
}

// List returns the cart with catalog references resolved.
func (s *CartService) List(ctx context.Context, userID string) ([]models.CartItem, error) {
	return s.carts.ListForUser(ctx, userID)
}
