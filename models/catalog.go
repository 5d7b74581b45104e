package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service types offered in the catalog.
const (
	ServiceTypeFlight    = "FLIGHT"
	ServiceTypeLodging   = "LODGING"
	ServiceTypeActivity  = "ACTIVITY"
	ServiceTypeTransport = "TRANSPORT"
)

// Package is a fixed-price, pre-composed travel product. Catalog entities are
// read-only from the cart/checkout core's point of view.
type Package struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	Description string          `json:"description"`
	Destination string          `gorm:"index" json:"destination"`
	Duration    int             `json:"duration"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	ImageURL    string          `json:"image_url"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

// Service is an individually priced travel component (flight, lodging,
// activity, transport). Metadata holds free-form attributes keyed by type.
type Service struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Type      string          `gorm:"type:varchar(20);not null;index" json:"type"`
	Name      string          `gorm:"not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Metadata  json.RawMessage `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
}
