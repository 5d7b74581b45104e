package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/voyagelab/travel-backend/apperrors"
	"github.com/voyagelab/travel-backend/models"
	"github.com/voyagelab/travel-backend/repository"
)

// TripService manages user-assembled trips.
type TripService struct {
	trips   repository.TripRepository
	catalog repository.CatalogRepository
}

func NewTripService(trips repository.TripRepository, catalog repository.CatalogRepository) *TripService {
	return &TripService{trips: trips, catalog: catalog}
}

func (s *TripService) Create(ctx context.Context, userID, name string) (*models.Trip, error) {
	if name == "" {
		return nil, apperrors.Validation("trip name is required")
	}
	trip := &models.Trip{
		UserID: userID,
		Name:   name,
		Status: models.TripStatusDraft,
	}
	if err := s.trips.Create(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

func (s *TripService) ForUser(ctx context.Context, userID string) ([]models.Trip, error) {
	return s.trips.ForUser(ctx, userID)
}

// AddService puts a catalog service on the user's trip. Re-adding the same
// service increments its quantity rather than duplicating the association.
func (s *TripService) AddService(ctx context.Context, userID string, tripID, serviceID uuid.UUID, quantity int) (*models.TripService, error) {
	if quantity < 0 {
		return nil, apperrors.Validation("quantity must be positive")
	}
	if quantity == 0 {
		quantity = 1
	}
	if _, err := s.trips.ByIDAndUser(ctx, tripID, userID); err != nil {
		return nil, err
	}
	if _, err := s.catalog.ServiceByID(ctx, serviceID); err != nil {
		return nil, err
	}
	return s.trips.AddService(ctx, tripID, serviceID, quantity)
}

func (s *TripService) RemoveService(ctx context.Context, userID string, tripID, serviceID uuid.UUID) error {
	if _, err := s.trips.ByIDAndUser(ctx, tripID, userID); err != nil {
		return err
	}
	return s.trips.RemoveService(ctx, tripID, serviceID)
}
