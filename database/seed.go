package database

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/voyagelab/travel-backend/models"
)

// SeedCatalog inserts a small development catalog. It is a no-op when
// packages already exist.
func SeedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Package{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	packages := []models.Package{
		{
			Name:        "Paris Getaway",
			Description: "Five days in Paris with guided museum tours",
			Destination: "Paris",
			Duration:    5,
			Price:       decimal.RequireFromString("1200.00"),
		},
		{
			Name:        "Andes Trek",
			Description: "A week of high-altitude hiking in the Andes",
			Destination: "Cusco",
			Duration:    7,
			Price:       decimal.RequireFromString("1850.00"),
		},
		{
			Name:        "Kyoto Classic",
			Description: "Temples, gardens and a ryokan stay",
			Destination: "Kyoto",
			Duration:    6,
			Price:       decimal.RequireFromString("2100.50"),
		},
	}
	if err := db.Create(&packages).Error; err != nil {
		return err
	}

	services := []models.Service{
		{
			Type:     models.ServiceTypeFlight,
			Name:     "Round-trip flight to Lima",
			Price:    decimal.RequireFromString("640.00"),
			Metadata: json.RawMessage(`{"airline":"LATAM","class":"economy"}`),
		},
		{
			Type:     models.ServiceTypeLodging,
			Name:     "Boutique hotel, city center",
			Price:    decimal.RequireFromString("150.00"),
			Metadata: json.RawMessage(`{"nights":1,"rating":4}`),
		},
		{
			Type:     models.ServiceTypeActivity,
			Name:     "Machu Picchu day tour",
			Price:    decimal.RequireFromString("300.00"),
			Metadata: json.RawMessage(`{"durationHours":12}`),
		},
		{
			Type:     models.ServiceTypeTransport,
			Name:     "Airport transfer",
			Price:    decimal.RequireFromString("35.50"),
			Metadata: json.RawMessage(`{"vehicle":"van"}`),
		},
	}
	return db.Create(&services).Error
}
