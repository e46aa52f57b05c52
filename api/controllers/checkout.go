package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pageturne/storefront-backend/api/middleware"
	"github.com/pageturne/storefront-backend/api/responses"
	"github.com/pageturne/storefront-backend/api/validators"
	checkoutsvc "github.com/pageturne/storefront-backend/internal/checkout"
	"github.com/pageturne/storefront-backend/internal/payment"
	"github.com/pageturne/storefront-backend/pkg/db/models"
	"github.com/pageturne/storefront-backend/pkg/logger"
	"github.com/pageturne/storefront-backend/pkg/money"
	"github.com/pageturne/storefront-backend/pkg/types"
)

type addressRequest struct {
	FirstName        string  `json:"first_name" validate:"required"`
	LastName         string  `json:"last_name" validate:"required"`
	Street           string  `json:"street" validate:"required"`
	StreetComplement *string `json:"street_complement,omitempty"`
	PostalCode       string  `json:"postal_code" validate:"required"`
	City             string  `json:"city" validate:"required"`
	Country          string  `json:"country" validate:"required"`
	Phone            string  `json:"phone" validate:"required"`
}

type cardRequest struct {
	Number string `json:"number" validate:"required"`
	Expiry string `json:"expiry" validate:"required"`
	CVC    string `json:"cvc" validate:"required"`
}

type quoteResponse struct {
	SubtotalCents   int    `json:"subtotal_cents"`
	ShippingCents   int    `json:"shipping_cents"`
	TotalCents      int    `json:"total_cents"`
	SubtotalDisplay string `json:"subtotal_display"`
	ShippingDisplay string `json:"shipping_display"`
	TotalDisplay    string `json:"total_display"`
}

type confirmationResponse struct {
	OrderNumber string `json:"order_number"`
}

type orderItemResponse struct {
	Title          string     `json:"title"`
	EditionID      *uuid.UUID `json:"edition_id,omitempty"`
	UnitPriceCents int        `json:"unit_price_cents"`
	Qty            int        `json:"qty"`
	TotalCents     int        `json:"total_cents"`
}

type orderResponse struct {
	OrderNumber       string                `json:"order_number"`
	Status            string                `json:"status"`
	PaymentStatus     string                `json:"payment_status"`
	SubtotalCents     int                   `json:"subtotal_cents"`
	ShippingCostCents int                   `json:"shipping_cost_cents"`
	TotalCents        int                   `json:"total_cents"`
	TotalDisplay      string                `json:"total_display"`
	ShippingAddress   types.ShippingAddress `json:"shipping_address"`
	Items             []orderItemResponse   `json:"items"`
	CreatedAt         time.Time             `json:"created_at"`
}

// CheckoutAddressStart guards entry into the address stage.
func CheckoutAddressStart(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := middleware.CartTokenFromContext(r.Context())
		if err := svc.StartAddress(r.Context(), token); err != nil {
			writeCheckoutError(w, r, logg, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"stage": string(checkoutsvc.StageAddress)})
	}
}

// CheckoutAddressSubmit validates and stores the shipping address.
func CheckoutAddressSubmit(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := middleware.CartTokenFromContext(r.Context())

		var payload addressRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		addr := types.ShippingAddress{
			FirstName:        payload.FirstName,
			LastName:         payload.LastName,
			Street:           payload.Street,
			StreetComplement: payload.StreetComplement,
			PostalCode:       payload.PostalCode,
			City:             payload.City,
			Country:          payload.Country,
			Phone:            payload.Phone,
		}
		if err := svc.SubmitAddress(r.Context(), token, addr); err != nil {
			writeCheckoutError(w, r, logg, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"next": string(checkoutsvc.StagePayment)})
	}
}

// CheckoutPaymentStart guards entry into the payment stage and returns the
// order totals for display.
func CheckoutPaymentStart(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := middleware.CartTokenFromContext(r.Context())
		quote, err := svc.StartPayment(r.Context(), token)
		if err != nil {
			writeCheckoutError(w, r, logg, err)
			return
		}
		responses.WriteSuccess(w, newQuoteResponse(quote))
	}
}

// CheckoutPaymentSubmit validates the card and runs the order creation
// sequence.
func CheckoutPaymentSubmit(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := middleware.CartTokenFromContext(r.Context())
		userID := middleware.UserIDFromContext(r.Context())

		var payload cardRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		confirmation, err := svc.SubmitPayment(r.Context(), token, userID, payment.CardInput{
			Number: payload.Number,
			Expiry: payload.Expiry,
			CVC:    payload.CVC,
		})
		if err != nil {
			writeCheckoutError(w, r, logg, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, confirmationResponse{
			OrderNumber: confirmation.OrderNumber,
		})
	}
}

// CheckoutConfirmation fetches the freshly created order for display.
func CheckoutConfirmation(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := middleware.CartTokenFromContext(r.Context())
		order, err := svc.Confirmation(r.Context(), token)
		if err != nil {
			writeCheckoutError(w, r, logg, err)
			return
		}
		responses.WriteSuccess(w, newOrderResponse(order))
	}
}

// writeCheckoutError translates guard redirects into navigation payloads and
// everything else into the standard error envelope.
func writeCheckoutError(w http.ResponseWriter, r *http.Request, logg *logger.Logger, err error) {
	if redirect := checkoutsvc.AsRedirect(err); redirect != nil {
		responses.WriteRedirect(w, string(redirect.To))
		return
	}
	responses.WriteError(r.Context(), logg, w, err)
}

func newQuoteResponse(quote *checkoutsvc.Quote) quoteResponse {
	return quoteResponse{
		SubtotalCents:   quote.SubtotalCents,
		ShippingCents:   quote.ShippingCents,
		TotalCents:      quote.TotalCents,
		SubtotalDisplay: money.FormatEUR(quote.SubtotalCents),
		ShippingDisplay: money.FormatEUR(quote.ShippingCents),
		TotalDisplay:    money.FormatEUR(quote.TotalCents),
	}
}

func newOrderResponse(order *models.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemResponse{
			Title:          item.Title,
			EditionID:      item.EditionID,
			UnitPriceCents: item.UnitPriceCents,
			Qty:            item.Qty,
			TotalCents:     item.TotalCents,
		})
	}
	return orderResponse{
		OrderNumber:       order.OrderNumber,
		Status:            string(order.Status),
		PaymentStatus:     string(order.PaymentStatus),
		SubtotalCents:     order.SubtotalCents,
		ShippingCostCents: order.ShippingCostCents,
		TotalCents:        order.TotalCents,
		TotalDisplay:      money.FormatEUR(order.TotalCents),
		ShippingAddress:   order.ShippingAddress,
		Items:             items,
		CreatedAt:         order.CreatedAt,
	}
}
