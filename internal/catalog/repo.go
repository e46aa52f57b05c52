package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageturne/storefront-backend/pkg/db/models"
)

// Repository is the read-only catalog surface. CMS writes happen elsewhere.
type Repository interface {
	ListActiveBooks(ctx context.Context) ([]models.Book, error)
	FindBySlug(ctx context.Context, slug string) (*models.Book, error)
	FindBookByID(ctx context.Context, id uuid.UUID) (*models.Book, error)
	FindEditionByID(ctx context.Context, id uuid.UUID) (*models.BookEdition, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(conn *gorm.DB) Repository {
	return &repository{db: conn}
}

func (r *repository) ListActiveBooks(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	err := r.db.WithContext(ctx).
		Preload("Editions").
		Where("is_active = ?", true).
		Order("published_at DESC NULLS LAST").
		Find(&books).Error
	if err != nil {
		return nil, err
	}
	return books, nil
}

func (r *repository) FindBySlug(ctx context.Context, slug string) (*models.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).
		Preload("Editions").
		Where("slug = ? AND is_active = ?", slug, true).
		First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *repository) FindBookByID(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).
		Preload("Editions").
		Where("id = ?", id).
		First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *repository) FindEditionByID(ctx context.Context, id uuid.UUID) (*models.BookEdition, error) {
	var edition models.BookEdition
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&edition).Error
	if err != nil {
		return nil, err
	}
	return &edition, nil
}
