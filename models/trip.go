package models

import (
	"time"

	"github.com/google/uuid"
)

// Trip statuses.
const (
	TripStatusDraft = "DRAFT"
)

// Trip is a user-assembled collection of services with per-service quantities.
type Trip struct {
	ID        uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    string        `gorm:"not null;index" json:"user_id"`
	Name      string        `gorm:"not null" json:"name"`
	Status    string        `gorm:"type:varchar(20);not null;default:'DRAFT'" json:"status"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
	Services  []TripService `gorm:"foreignKey:TripID;constraint:OnDelete:CASCADE" json:"services"`
}

// TripService associates a service with a trip. The (trip_id, service_id)
// pair is unique: adding the same service again increments Quantity instead
// of inserting a second row.
type TripService struct {
	TripID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"trip_id"`
	ServiceID uuid.UUID `gorm:"type:uuid;primaryKey" json:"service_id"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	Service   *Service  `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}
