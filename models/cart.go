package models

import (
	"time"

	"github.com/google/uuid"
)

// Cart item types.
const (
	ItemTypePackage = "PACKAGE"
	ItemTypeTrip    = "TRIP"
)

// CartItem is a pending reference to one package or trip with a purchase
// quantity. Exactly one of PackageID/TripID is set, consistent with ItemType;
// the check constraint and the partial unique indexes (one cart row per
// package or trip reference per user) are created in database.Migrate.
type CartItem struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    string     `gorm:"not null;index" json:"user_id"`
	ItemType  string     `gorm:"type:varchar(10);not null" json:"item_type"`
	PackageID *uuid.UUID `gorm:"type:uuid" json:"package_id,omitempty"`
	TripID    *uuid.UUID `gorm:"type:uuid" json:"trip_id,omitempty"`
	Quantity  int        `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`

	Package *Package `gorm:"foreignKey:PackageID" json:"package,omitempty"`
	Trip    *Trip    `gorm:"foreignKey:TripID" json:"trip,omitempty"`
}
