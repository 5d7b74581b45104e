package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/voyagelab/travel-backend/apperrors"
	"github.com/voyagelab/travel-backend/models"
)

// PackageFilter narrows a catalog package listing. Nil/zero fields are ignored.
type PackageFilter struct {
	Destination string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	Duration    *int
}

// ServiceFilter narrows a catalog service listing.
type ServiceFilter struct {
	Type     string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// CatalogRepository is the read-only lookup over packages and services. A
// missing entity is reported as a not-found error, never as a zero-priced
// result.
type CatalogRepository interface {
	ListPackages(ctx context.Context, filter PackageFilter) ([]models.Package, error)
	ListServices(ctx context.Context, filter ServiceFilter) ([]models.Service, error)
	PackageByID(ctx context.Context, id uuid.UUID) (*models.Package, error)
	ServiceByID(ctx context.Context, id uuid.UUID) (*models.Service, error)
}

type gormCatalogRepository struct {
	db *gorm.DB
}

func NewGormCatalogRepository(db *gorm.DB) CatalogRepository {
	return &gormCatalogRepository{db: db}
}

func (r *gormCatalogRepository) ListPackages(ctx context.Context, filter PackageFilter) ([]models.Package, error) {
	query := r.db.WithContext(ctx).Model(&models.Package{})

	if filter.Destination != "" {
		query = query.Where("destination ILIKE ?", "%"+filter.Destination+"%")
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.Duration != nil {
		query = query.Where("duration = ?", *filter.Duration)
	}

	var packages []models.Package
	if err := query.Order("created_at DESC").Find(&packages).Error; err != nil {
		return nil, err
	}
	return packages, nil
}

func (r *gormCatalogRepository) ListServices(ctx context.Context, filter ServiceFilter) ([]models.Service, error) {
	query := r.db.WithContext(ctx).Model(&models.Service{})

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}

	var services []models.Service
	if err := query.Order("created_at DESC").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *gormCatalogRepository) PackageByID(ctx context.Context, id uuid.UUID) (*models.Package, error) {
	var pkg models.Package
	if err := r.db.WithContext(ctx).First(&pkg, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("package not found")
		}
		return nil, err
	}
	return &pkg, nil
}

func (r *gormCatalogRepository) ServiceByID(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("service not found")
		}
		return nil, err
	}
	return &svc, nil
}
