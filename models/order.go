package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is an immutable, price-snapshotted purchase record. It is written
// once at checkout and never updated; Total always equals the sum of
// Price × Quantity over its items.
type Order struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    string          `gorm:"not null;index" json:"user_id"`
	Total     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	Items     []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem snapshots one cart line at purchase time. Price and Metadata are
// copied from the catalog at checkout and never recomputed, so historical
// orders keep their original pricing even after catalog changes.
type OrderItem struct {
	ID        uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"order_id"`
	ItemType  string            `gorm:"type:varchar(10);not null" json:"item_type"`
	PackageID *uuid.UUID        `gorm:"type:uuid" json:"package_id,omitempty"`
	TripID    *uuid.UUID        `gorm:"type:uuid" json:"trip_id,omitempty"`
	Quantity  int               `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal   `gorm:"type:numeric(12,2);not null" json:"price"`
	Metadata  OrderItemMetadata `gorm:"type:jsonb" json:"metadata"`
}

// OrderItemMetadata carries the human-readable snapshot of what was bought.
type OrderItemMetadata struct {
	Name          string          `json:"name"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
}

func (m OrderItemMetadata) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *OrderItemMetadata) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*m = OrderItemMetadata{}
		return nil
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported metadata column type %T", value)
	}
}
