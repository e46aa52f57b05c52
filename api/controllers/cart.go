package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pageturne/storefront-backend/api/middleware"
	"github.com/pageturne/storefront-backend/api/responses"
	"github.com/pageturne/storefront-backend/api/validators"
	cartsvc "github.com/pageturne/storefront-backend/internal/cart"
	"github.com/pageturne/storefront-backend/internal/catalog"
	pkgerrors "github.com/pageturne/storefront-backend/pkg/errors"
	"github.com/pageturne/storefront-backend/pkg/logger"
	"github.com/pageturne/storefront-backend/pkg/money"
)

type addItemRequest struct {
	BookID    uuid.UUID  `json:"book_id" validate:"required"`
	EditionID *uuid.UUID `json:"edition_id,omitempty"`
	Qty       int        `json:"qty" validate:"omitempty,min=1"`
}

type updateQuantityRequest struct {
	Qty int `json:"qty"`
}

type cartLineResponse struct {
	ID             uuid.UUID  `json:"id"`
	BookID         uuid.UUID  `json:"book_id"`
	EditionID      *uuid.UUID `json:"edition_id,omitempty"`
	Title          string     `json:"title"`
	Slug           string     `json:"slug"`
	CoverImageURL  *string    `json:"cover_image_url,omitempty"`
	UnitPriceCents int        `json:"unit_price_cents"`
	Qty            int        `json:"qty"`
	LineTotalCents int        `json:"line_total_cents"`
}

type cartResponse struct {
	Lines           []cartLineResponse `json:"lines"`
	ItemCount       int                `json:"item_count"`
	SubtotalCents   int                `json:"subtotal_cents"`
	SubtotalDisplay string             `json:"subtotal_display"`
}

// CartFetch returns the cart for the current token.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := middleware.CartTokenFromContext(r.Context())
		current, err := svc.Get(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(current))
	}
}

// CartAddItem snapshots the book (or edition) from the catalog and merges it
// into the cart.
func CartAddItem(svc cartsvc.Service, catalogSvc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := middleware.CartTokenFromContext(r.Context())

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot, err := catalogSvc.SnapshotFor(r.Context(), payload.BookID, payload.EditionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		current, err := svc.AddItem(r.Context(), token, *snapshot, payload.Qty)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(current))
	}
}

// CartUpdateQuantity sets the quantity on one line; zero removes it.
func CartUpdateQuantity(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := middleware.CartTokenFromContext(r.Context())

		lineID, err := uuid.Parse(chi.URLParam(r, "lineId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid line id"))
			return
		}

		var payload updateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		current, err := svc.UpdateQuantity(r.Context(), token, lineID, payload.Qty)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(current))
	}
}

// CartRemoveItem drops one line from the cart.
func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := middleware.CartTokenFromContext(r.Context())

		lineID, err := uuid.Parse(chi.URLParam(r, "lineId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid line id"))
			return
		}

		current, err := svc.RemoveItem(r.Context(), token, lineID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(current))
	}
}

func newCartResponse(current *cartsvc.Cart) cartResponse {
	lines := make([]cartLineResponse, 0, len(current.Lines))
	for _, line := range current.Lines {
		lines = append(lines, cartLineResponse{
			ID:             line.ID,
			BookID:         line.Book.BookID,
			EditionID:      line.Book.EditionID,
			Title:          line.Book.Title,
			Slug:           line.Book.Slug,
			CoverImageURL:  line.Book.CoverImageURL,
			UnitPriceCents: line.Book.UnitPriceCents,
			Qty:            line.Qty,
			LineTotalCents: line.Book.UnitPriceCents * line.Qty,
		})
	}
	subtotal := current.Subtotal()
	return cartResponse{
		Lines:           lines,
		ItemCount:       current.ItemCount(),
		SubtotalCents:   subtotal,
		SubtotalDisplay: money.FormatEUR(subtotal),
	}
}
