package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/voyagelab/travel-backend/apperrors"
	"github.com/voyagelab/travel-backend/models"
)

// OrderRepository persists and reads immutable order snapshots. There is no
// update method on purpose.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	ForUser(ctx context.Context, userID string) ([]models.Order, error)
	ByIDAndUser(ctx context.Context, orderID uuid.UUID, userID string) (*models.Order, error)
}

type gormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &gormOrderRepository{db: db}
}

func (r *gormOrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *gormOrderRepository) ForUser(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *gormOrderRepository) ByIDAndUser(ctx context.Context, orderID uuid.UUID, userID string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order not found")
		}
		return nil, err
	}
	return &order, nil
}
