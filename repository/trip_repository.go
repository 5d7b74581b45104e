package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/voyagelab/travel-backend/apperrors"
	"github.com/voyagelab/travel-backend/models"
)

// TripRepository manages user-assembled trips and their service associations.
type TripRepository interface {
	Create(ctx context.Context, trip *models.Trip) error
	ForUser(ctx context.Context, userID string) ([]models.Trip, error)
	// ByIDAndUser returns the trip iff it belongs to userID; otherwise a
	// not-found error.
	ByIDAndUser(ctx context.Context, tripID uuid.UUID, userID string) (*models.Trip, error)
	// AddService associates a service with the trip, incrementing quantity
	// when the (trip, service) pair already exists.
	AddService(ctx context.Context, tripID, serviceID uuid.UUID, quantity int) (*models.TripService, error)
	RemoveService(ctx context.Context, tripID, serviceID uuid.UUID) error
}

type gormTripRepository struct {
	db *gorm.DB
}

func NewGormTripRepository(db *gorm.DB) TripRepository {
	return &gormTripRepository{db: db}
}

func (r *gormTripRepository) Create(ctx context.Context, trip *models.Trip) error {
	return r.db.WithContext(ctx).Create(trip).Error
}

func (r *gormTripRepository) ForUser(ctx context.Context, userID string) ([]models.Trip, error) {
	var trips []models.Trip
	if err := r.db.WithContext(ctx).
		Preload("Services").
		Preload("Services.Service").
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&trips).Error; err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *gormTripRepository) ByIDAndUser(ctx context.Context, tripID uuid.UUID, userID string) (*models.Trip, error) {
	var trip models.Trip
	if err := r.db.WithContext(ctx).
		Preload("Services").
		Preload("Services.Service").
		Where("id = ? AND user_id = ?", tripID, userID).
		First(&trip).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("trip not found")
		}
		return nil, err
	}
	return &trip, nil
}

const upsertTripService = `
	INSERT INTO trip_services (trip_id, service_id, quantity)
	VALUES (?, ?, ?)
	ON CONFLICT (trip_id, service_id)
	DO UPDATE SET quantity = trip_services.quantity + EXCLUDED.quantity
	RETURNING trip_id, service_id, quantity`

func (r *gormTripRepository) AddService(ctx context.Context, tripID, serviceID uuid.UUID, quantity int) (*models.TripService, error) {
	var stored models.TripService
	if err := r.db.WithContext(ctx).
		Raw(upsertTripService, tripID, serviceID, quantity).
		Scan(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *gormTripRepository) RemoveService(ctx context.Context, tripID, serviceID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("trip_id = ? AND service_id = ?", tripID, serviceID).
		Delete(&models.TripService{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("service not on trip")
	}
	return nil
}
