package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pageturne/storefront-backend/api/responses"
	"github.com/pageturne/storefront-backend/internal/catalog"
	"github.com/pageturne/storefront-backend/pkg/db/models"
	pkgerrors "github.com/pageturne/storefront-backend/pkg/errors"
	"github.com/pageturne/storefront-backend/pkg/logger"
	"github.com/pageturne/storefront-backend/pkg/money"
)

type bookResponse struct {
	ID            uuid.UUID         `json:"id"`
	Slug          string            `json:"slug"`
	Title         string            `json:"title"`
	AuthorName    string            `json:"author_name"`
	Summary       *string           `json:"summary,omitempty"`
	CoverImageURL *string           `json:"cover_image_url,omitempty"`
	PriceCents    int               `json:"price_cents"`
	PriceDisplay  string            `json:"price_display"`
	Tags          []string          `json:"tags,omitempty"`
	PublishedAt   *time.Time        `json:"published_at,omitempty"`
	Editions      []editionResponse `json:"editions,omitempty"`
}

type editionResponse struct {
	ID           uuid.UUID `json:"id"`
	Format       string    `json:"format"`
	ISBN         *string   `json:"isbn,omitempty"`
	PriceCents   int       `json:"price_cents"`
	PriceDisplay string    `json:"price_display"`
	InStock      bool      `json:"in_stock"`
}

// CatalogList exposes the active books with their editions.
func CatalogList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		books, err := svc.ListBooks(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload := make([]bookResponse, 0, len(books))
		for i := range books {
			payload = append(payload, newBookResponse(&books[i]))
		}
		responses.WriteSuccess(w, payload)
	}
}

// CatalogDetail exposes a single book by slug.
func CatalogDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		slug := chi.URLParam(r, "slug")
		if slug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "book slug is required"))
			return
		}

		book, err := svc.GetBook(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newBookResponse(book))
	}
}

func newBookResponse(book *models.Book) bookResponse {
	editions := make([]editionResponse, 0, len(book.Editions))
	for _, edition := range book.Editions {
		editions = append(editions, editionResponse{
			ID:           edition.ID,
			Format:       string(edition.Format),
			ISBN:         edition.ISBN,
			PriceCents:   edition.PriceCents,
			PriceDisplay: money.FormatEUR(edition.PriceCents),
			InStock:      edition.CurrentStock > 0,
		})
	}
	return bookResponse{
		ID:            book.ID,
		Slug:          book.Slug,
		Title:         book.Title,
		AuthorName:    book.AuthorName,
		Summary:       book.Summary,
		CoverImageURL: book.CoverImageURL,
		PriceCents:    book.PriceCents,
		PriceDisplay:  money.FormatEUR(book.PriceCents),
		Tags:          book.Tags,
		PublishedAt:   book.PublishedAt,
		Editions:      editions,
	}
}
