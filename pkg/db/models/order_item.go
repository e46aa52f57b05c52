package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem captures the immutable snapshot of each cart line at submission
// time: title, unit price and quantity as the shopper saw them.
type OrderItem struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID  `gorm:"column:order_id;type:uuid;not null"`
	BookID         *uuid.UUID `gorm:"column:book_id;type:uuid"`
	EditionID      *uuid.UUID `gorm:"column:edition_id;type:uuid"`
	Title          string     `gorm:"column:title;not null"`
	UnitPriceCents int        `gorm:"column:unit_price_cents;not null"`
	Qty            int        `gorm:"column:qty;not null"`
	TotalCents     int        `gorm:"column:total_cents;not null"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
}
