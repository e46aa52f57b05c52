package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Book is the catalog entry the storefront browses and the cart snapshots
// display data from at add-time.
type Book struct {
	ID            uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Slug          string         `gorm:"column:slug;not null;uniqueIndex"`
	Title         string         `gorm:"column:title;not null"`
	AuthorName    string         `gorm:"column:author_name;not null"`
	Summary       *string        `gorm:"column:summary"`
	CoverImageURL *string        `gorm:"column:cover_image_url"`
	PriceCents    int            `gorm:"column:price_cents;not null"`
	Tags          pq.StringArray `gorm:"column:tags;type:text[]"`
	PublishedAt   *time.Time     `gorm:"column:published_at"`
	IsActive      bool           `gorm:"column:is_active;not null;default:true"`
	Editions      []BookEdition  `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
