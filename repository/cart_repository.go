package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/voyagelab/travel-backend/apperrors"
	"github.com/voyagelab/travel-backend/models"
)

// CartRepository maintains one mutable collection of cart items per user.
type CartRepository interface {
	// AddItem inserts the item or, when the user already has a row for the
	// same package/trip reference, atomically increments its quantity. The
	// returned item reflects the stored row.
	AddItem(ctx context.Context, item *models.CartItem) (*models.CartItem, error)
	// RemoveItem deletes the item iff it belongs to userID.
	RemoveItem(ctx context.Context, userID string, itemID uuid.UUID) error
	// Clear deletes all of the user's cart items. Idempotent.
	Clear(ctx context.Context, userID string) error
	// ListForUser returns the user's items with their catalog references
	// resolved, newest first.
	ListForUser(ctx context.Context, userID string) ([]models.CartItem, error)
}

type gormCartRepository struct {
	db *gorm.DB
}

func NewGormCartRepository(db *gorm.DB) CartRepository {
	return &gormCartRepository{db: db}
}

// Upserts target the partial unique indexes created in database.Migrate. A
// plain read-then-write here would race with concurrent adds of the same
// reference and lose updates; the single INSERT ... ON CONFLICT does not.
const (
	upsertPackageItem = `
		INSERT INTO cart_items (id, user_id, item_type, package_id, quantity, created_at)
		VALUES (?, ?, ?, ?, ?, now())
		ON CONFLICT (user_id, package_id) WHERE package_id IS NOT NULL
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING id, user_id, item_type, package_id, trip_id, quantity, created_at`

	upsertTripItem = `
		INSERT INTO cart_items (id, user_id, item_type, trip_id, quantity, created_at)
		VALUES (?, ?, ?, ?, ?, now())
		ON CONFLICT (user_id, trip_id) WHERE trip_id IS NOT NULL
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING id, user_id, item_type, package_id, trip_id, quantity, created_at`
)

func (r *gormCartRepository) AddItem(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {
	var stored models.CartItem
	var err error

	switch item.ItemType {
	case models.ItemTypePackage:
		err = r.db.WithContext(ctx).Raw(
			upsertPackageItem,
			uuid.New(), item.UserID, item.ItemType, item.PackageID, item.Quantity,
		).Scan(&stored).Error
	case models.ItemTypeTrip:
		err = r.db.WithContext(ctx).Raw(
			upsertTripItem,
			uuid.New(), item.UserID, item.ItemType, item.TripID, item.Quantity,
		).Scan(&stored).Error
	default:
		return nil, apperrors.Validation("unknown cart item type")
	}

	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *gormCartRepository) RemoveItem(ctx context.Context, userID string, itemID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("cart item not found")
	}
	return nil
}

func (r *gormCartRepository) Clear(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error
}

func (r *gormCartRepository) ListForUser(ctx context.Context, userID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.WithContext(ctx).
		Preload("Package").
		Preload("Trip").
		Preload("Trip.Services").
		Preload("Trip.Services.Service").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
