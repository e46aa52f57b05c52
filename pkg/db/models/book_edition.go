package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/pageturne/storefront-backend/pkg/enums"
)

// BookEdition is a publishable format of a book with its own price and stock.
// CurrentStock is decremented when an order referencing the edition is
// finalized and must never go negative.
type BookEdition struct {
	ID           uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BookID       uuid.UUID           `gorm:"column:book_id;type:uuid;not null"`
	Format       enums.EditionFormat `gorm:"column:format;type:edition_format;not null"`
	ISBN         *string             `gorm:"column:isbn;uniqueIndex"`
	PriceCents   int                 `gorm:"column:price_cents;not null"`
	InitialStock int                 `gorm:"column:initial_stock;not null;default:0"`
	CurrentStock int                 `gorm:"column:current_stock;not null;default:0"`
	CreatedAt    time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
