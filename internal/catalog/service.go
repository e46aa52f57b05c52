package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	cartsvc "github.com/pageturne/storefront-backend/internal/cart"
	"github.com/pageturne/storefront-backend/pkg/db/models"
	pkgerrors "github.com/pageturne/storefront-backend/pkg/errors"
)

// Service exposes catalog browsing plus the add-time snapshot builder the
// cart depends on.
type Service interface {
	ListBooks(ctx context.Context) ([]models.Book, error)
	GetBook(ctx context.Context, slug string) (*models.Book, error)
	SnapshotFor(ctx context.Context, bookID uuid.UUID, editionID *uuid.UUID) (*cartsvc.BookSnapshot, error)
}

type service struct {
	repo Repository
}

// NewService builds the catalog service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListBooks(ctx context.Context) ([]models.Book, error) {
	books, err := s.repo.ListActiveBooks(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list books")
	}
	return books, nil
}

func (s *service) GetBook(ctx context.Context, slug string) (*models.Book, error) {
	book, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "book not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load book")
	}
	return book, nil
}

// SnapshotFor freezes the display data for a cart line. When an edition is
// named its price wins over the book's base price.
func (s *service) SnapshotFor(ctx context.Context, bookID uuid.UUID, editionID *uuid.UUID) (*cartsvc.BookSnapshot, error) {
	book, err := s.repo.FindBookByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "book not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load book")
	}
	if !book.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "book is not available")
	}

	snapshot := &cartsvc.BookSnapshot{
		BookID:         book.ID,
		Title:          book.Title,
		Slug:           book.Slug,
		CoverImageURL:  book.CoverImageURL,
		UnitPriceCents: book.PriceCents,
	}

	if editionID != nil {
		edition, err := s.repo.FindEditionByID(ctx, *editionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "edition not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load edition")
		}
		if edition.BookID != book.ID {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "edition does not belong to book")
		}
		id := edition.ID
		snapshot.EditionID = &id
		snapshot.UnitPriceCents = edition.PriceCents
	}

	return snapshot, nil
}
