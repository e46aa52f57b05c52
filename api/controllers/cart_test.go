package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/pageturne/storefront-backend/api/middleware"
	cartsvc "github.com/pageturne/storefront-backend/internal/cart"
	"github.com/pageturne/storefront-backend/pkg/db/models"
	pkgerrors "github.com/pageturne/storefront-backend/pkg/errors"
)

type stubCartService struct {
	cart        *cartsvc.Cart
	err         error
	lastAddQty  int
	lastAddBook cartsvc.BookSnapshot
}

func (s *stubCartService) Get(ctx context.Context, token string) (*cartsvc.Cart, error) {
	return s.cart, s.err
}

func (s *stubCartService) AddItem(ctx context.Context, token string, book cartsvc.BookSnapshot, qty int) (*cartsvc.Cart, error) {
	s.lastAddBook = book
	s.lastAddQty = qty
	return s.cart, s.err
}

func (s *stubCartService) UpdateQuantity(ctx context.Context, token string, lineID uuid.UUID, qty int) (*cartsvc.Cart, error) {
	return s.cart, s.err
}

func (s *stubCartService) RemoveItem(ctx context.Context, token string, lineID uuid.UUID) (*cartsvc.Cart, error) {
	return s.cart, s.err
}

func (s *stubCartService) Clear(ctx context.Context, token string) error {
	return s.err
}

type stubCatalogService struct {
	snapshot *cartsvc.BookSnapshot
	err      error
}

func (s *stubCatalogService) ListBooks(ctx context.Context) ([]models.Book, error) {
	return nil, s.err
}

func (s *stubCatalogService) GetBook(ctx context.Context, slug string) (*models.Book, error) {
	return nil, s.err
}

func (s *stubCatalogService) SnapshotFor(ctx context.Context, bookID uuid.UUID, editionID *uuid.UUID) (*cartsvc.BookSnapshot, error) {
	return s.snapshot, s.err
}

func withCartToken(r *http.Request) *http.Request {
	return r.WithContext(middleware.WithCartToken(r.Context(), uuid.NewString()))
}

func TestCartFetchSuccess(t *testing.T) {
	lineID := uuid.New()
	service := &stubCartService{cart: &cartsvc.Cart{
		Token: "tok",
		Lines: []cartsvc.Line{{
			ID: lineID,
			Book: cartsvc.BookSnapshot{
				BookID:         uuid.New(),
				Title:          "The Test Book",
				Slug:           "the-test-book",
				UnitPriceCents: 1500,
			},
			Qty: 2,
		}},
	}}
	handler := CartFetch(service, nil)

	req := withCartToken(httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data cartResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.SubtotalCents != 3000 {
		t.Fatalf("expected subtotal 3000, got %d", envelope.Data.SubtotalCents)
	}
	if envelope.Data.SubtotalDisplay != "30.00" {
		t.Fatalf("unexpected subtotal display %q", envelope.Data.SubtotalDisplay)
	}
	if len(envelope.Data.Lines) != 1 || envelope.Data.Lines[0].ID != lineID {
		t.Fatalf("unexpected lines: %+v", envelope.Data.Lines)
	}
}

func TestCartAddItemSuccess(t *testing.T) {
	bookID := uuid.New()
	snapshot := &cartsvc.BookSnapshot{
		BookID:         bookID,
		Title:          "The Test Book",
		Slug:           "the-test-book",
		UnitPriceCents: 1500,
	}
	cartService := &stubCartService{cart: &cartsvc.Cart{Token: "tok"}}
	handler := CartAddItem(cartService, &stubCatalogService{snapshot: snapshot}, nil)

	body := fmt.Sprintf(`{"book_id": "%s", "qty": 3}`, bookID)
	req := withCartToken(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if cartService.lastAddQty != 3 {
		t.Fatalf("expected qty 3 forwarded, got %d", cartService.lastAddQty)
	}
	if cartService.lastAddBook.BookID != bookID {
		t.Fatalf("expected snapshot book %s, got %s", bookID, cartService.lastAddBook.BookID)
	}
}

func TestCartAddItemUnknownBook(t *testing.T) {
	handler := CartAddItem(
		&stubCartService{},
		&stubCatalogService{err: pkgerrors.New(pkgerrors.CodeNotFound, "book not found")},
		nil,
	)

	body := fmt.Sprintf(`{"book_id": "%s"}`, uuid.New())
	req := withCartToken(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestCartAddItemRejectsMalformedBody(t *testing.T) {
	handler := CartAddItem(&stubCartService{}, &stubCatalogService{}, nil)

	req := withCartToken(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"qty": -1`)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
