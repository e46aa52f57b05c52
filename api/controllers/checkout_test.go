package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	checkoutsvc "github.com/pageturne/storefront-backend/internal/checkout"
	"github.com/pageturne/storefront-backend/internal/payment"
	"github.com/pageturne/storefront-backend/pkg/db/models"
	"github.com/pageturne/storefront-backend/pkg/enums"
	pkgerrors "github.com/pageturne/storefront-backend/pkg/errors"
	"github.com/pageturne/storefront-backend/pkg/types"
)

type stubCheckoutService struct {
	startAddressErr error
	submitAddrErr   error
	quote           *checkoutsvc.Quote
	quoteErr        error
	confirmation    *checkoutsvc.Confirmation
	submitErr       error
	order           *models.Order
	orderErr        error
	lastAddress     types.ShippingAddress
	lastCard        payment.CardInput
}

func (s *stubCheckoutService) StartAddress(ctx context.Context, token string) error {
	return s.startAddressErr
}

func (s *stubCheckoutService) SubmitAddress(ctx context.Context, token string, addr types.ShippingAddress) error {
	s.lastAddress = addr
	return s.submitAddrErr
}

func (s *stubCheckoutService) StartPayment(ctx context.Context, token string) (*checkoutsvc.Quote, error) {
	return s.quote, s.quoteErr
}

func (s *stubCheckoutService) SubmitPayment(ctx context.Context, token string, userID *uuid.UUID, card payment.CardInput) (*checkoutsvc.Confirmation, error) {
	s.lastCard = card
	return s.confirmation, s.submitErr
}

func (s *stubCheckoutService) Confirmation(ctx context.Context, token string) (*models.Order, error) {
	return s.order, s.orderErr
}

func decodeRedirect(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Data struct {
			RedirectTo string `json:"redirect_to"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope.Data.RedirectTo
}

func TestCheckoutAddressStartEmptyCartRedirects(t *testing.T) {
	service := &stubCheckoutService{startAddressErr: &checkoutsvc.Redirect{To: checkoutsvc.StageCart}}
	handler := CheckoutAddressStart(service, nil)

	req := withCartToken(httptest.NewRequest(http.MethodGet, "/api/v1/checkout/address", nil))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got := decodeRedirect(t, resp); got != "cart" {
		t.Fatalf("expected redirect to cart, got %q", got)
	}
}

func TestCheckoutAddressSubmitForwardsAddress(t *testing.T) {
	service := &stubCheckoutService{}
	handler := CheckoutAddressSubmit(service, nil)

	body := `{
		"first_name": "Jean",
		"last_name": "Moreau",
		"street": "12 rue des Livres",
		"postal_code": "75011",
		"city": "Paris",
		"country": "FR",
		"phone": "+33612345678"
	}`
	req := withCartToken(httptest.NewRequest(http.MethodPost, "/api/v1/checkout/address", strings.NewReader(body)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if service.lastAddress.City != "Paris" {
		t.Fatalf("expected address forwarded, got %+v", service.lastAddress)
	}
}

func TestCheckoutAddressSubmitMissingFieldRejected(t *testing.T) {
	handler := CheckoutAddressSubmit(&stubCheckoutService{}, nil)

	req := withCartToken(httptest.NewRequest(http.MethodPost, "/api/v1/checkout/address", strings.NewReader(`{"first_name": "Jean"}`)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCheckoutPaymentStartReturnsQuote(t *testing.T) {
	service := &stubCheckoutService{quote: &checkoutsvc.Quote{
		SubtotalCents: 4000,
		ShippingCents: 590,
		TotalCents:    4590,
	}}
	handler := CheckoutPaymentStart(service, nil)

	req := withCartToken(httptest.NewRequest(http.MethodGet, "/api/v1/checkout/payment", nil))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data quoteResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.TotalCents != 4590 || envelope.Data.TotalDisplay != "45.90" {
		t.Fatalf("unexpected quote: %+v", envelope.Data)
	}
}

func TestCheckoutPaymentStartMissingAddressRedirects(t *testing.T) {
	service := &stubCheckoutService{quoteErr: &checkoutsvc.Redirect{To: checkoutsvc.StageAddress}}
	handler := CheckoutPaymentStart(service, nil)

	req := withCartToken(httptest.NewRequest(http.MethodGet, "/api/v1/checkout/payment", nil))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got := decodeRedirect(t, resp); got != "address" {
		t.Fatalf("expected redirect to address, got %q", got)
	}
}

func TestCheckoutPaymentSubmitCreated(t *testing.T) {
	service := &stubCheckoutService{confirmation: &checkoutsvc.Confirmation{
		OrderID:     uuid.New(),
		OrderNumber: "PT-20260315-TEST",
	}}
	handler := CheckoutPaymentSubmit(service, nil)

	body := `{"number": "4242 4242 4242 4242", "expiry": "12/99", "cvc": "123"}`
	req := withCartToken(httptest.NewRequest(http.MethodPost, "/api/v1/checkout/payment", strings.NewReader(body)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data confirmationResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.OrderNumber != "PT-20260315-TEST" {
		t.Fatalf("unexpected order number %q", envelope.Data.OrderNumber)
	}
	if service.lastCard.Number != "4242 4242 4242 4242" {
		t.Fatalf("expected card forwarded, got %+v", service.lastCard)
	}
}

func TestCheckoutPaymentSubmitCardErrorsSurfaceDetails(t *testing.T) {
	service := &stubCheckoutService{
		submitErr: pkgerrors.New(pkgerrors.CodeValidation, "card validation failed").
			WithDetails(payment.FieldErrors{"number": "card number must be 13 to 19 digits"}),
	}
	handler := CheckoutPaymentSubmit(service, nil)

	body := `{"number": "1234", "expiry": "12/99", "cvc": "123"}`
	req := withCartToken(httptest.NewRequest(http.MethodPost, "/api/v1/checkout/payment", strings.NewReader(body)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	var envelope struct {
		Error struct {
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Details["number"] == "" {
		t.Fatalf("expected per-field details, got %+v", envelope.Error)
	}
}

func TestCheckoutConfirmationRendersOrder(t *testing.T) {
	service := &stubCheckoutService{order: &models.Order{
		ID:                uuid.New(),
		OrderNumber:       "PT-20260315-TEST",
		Status:            enums.OrderStatusPending,
		PaymentStatus:     enums.PaymentStatusPaid,
		SubtotalCents:     4000,
		ShippingCostCents: 590,
		TotalCents:        4590,
		Items: []models.OrderItem{{
			Title:          "The Test Book",
			UnitPriceCents: 2000,
			Qty:            2,
			TotalCents:     4000,
		}},
	}}
	handler := CheckoutConfirmation(service, nil)

	req := withCartToken(httptest.NewRequest(http.MethodGet, "/api/v1/checkout/confirmation", nil))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data orderResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.TotalDisplay != "45.90" || len(envelope.Data.Items) != 1 {
		t.Fatalf("unexpected order response: %+v", envelope.Data)
	}
}

func TestCheckoutConfirmationReusedReferenceRedirects(t *testing.T) {
	service := &stubCheckoutService{orderErr: &checkoutsvc.Redirect{To: checkoutsvc.StageCart}}
	handler := CheckoutConfirmation(service, nil)

	req := withCartToken(httptest.NewRequest(http.MethodGet, "/api/v1/checkout/confirmation", nil))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got := decodeRedirect(t, resp); got != "cart" {
		t.Fatalf("expected redirect to cart, got %q", got)
	}
}
