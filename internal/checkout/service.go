package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	cartsvc "github.com/pageturne/storefront-backend/internal/cart"
	"github.com/pageturne/storefront-backend/internal/orders"
	"github.com/pageturne/storefront-backend/internal/payment"
	"github.com/pageturne/storefront-backend/internal/pricing"
	"github.com/pageturne/storefront-backend/pkg/db/models"
	"github.com/pageturne/storefront-backend/pkg/enums"
	pkgerrors "github.com/pageturne/storefront-backend/pkg/errors"
	"github.com/pageturne/storefront-backend/pkg/kv"
	"github.com/pageturne/storefront-backend/pkg/logger"
	"github.com/pageturne/storefront-backend/pkg/metrics"
	"github.com/pageturne/storefront-backend/pkg/types"
)

const (
	addressKeyPrefix = "address:"
	orderKeyPrefix   = "order:"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Quote is what the payment page displays before submission.
type Quote struct {
	SubtotalCents int
	ShippingCents int
	TotalCents    int
}

// Confirmation references the order just created, stored single-use for the
// confirmation view.
type Confirmation struct {
	OrderID     uuid.UUID
	OrderNumber string
}

// Service drives the address → payment → confirmation flow. Entering any
// stage before Confirmed with an empty cart redirects to the cart; entering
// payment without a stored address redirects back to the address stage.
type Service interface {
	StartAddress(ctx context.Context, token string) error
	SubmitAddress(ctx context.Context, token string, addr types.ShippingAddress) error
	StartPayment(ctx context.Context, token string) (*Quote, error)
	SubmitPayment(ctx context.Context, token string, userID *uuid.UUID, card payment.CardInput) (*Confirmation, error)
	Confirmation(ctx context.Context, token string) (*models.Order, error)
}

// ServiceParams collects the checkout dependencies.
type ServiceParams struct {
	Cart    cartsvc.Service
	Gateway orders.Gateway
	Tx      txRunner
	Session kv.SessionStore
	Policy  pricing.Policy
	Logger  *logger.Logger
	Metrics *metrics.CheckoutMetrics
	Clock   func() time.Time
}

type service struct {
	cart    cartsvc.Service
	gateway orders.Gateway
	tx      txRunner
	session kv.SessionStore
	policy  pricing.Policy
	logg    *logger.Logger
	metrics *metrics.CheckoutMetrics
	now     func() time.Time
}

// NewService builds the checkout flow controller.
func NewService(params ServiceParams) (Service, error) {
	if params.Cart == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if params.Gateway == nil {
		return nil, fmt.Errorf("order gateway required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if params.Session == nil {
		return nil, fmt.Errorf("session store required")
	}
	now := params.Clock
	if now == nil {
		now = time.Now
	}
	return &service{
		cart:    params.Cart,
		gateway: params.Gateway,
		tx:      params.Tx,
		session: params.Session,
		policy:  params.Policy,
		logg:    params.Logger,
		metrics: params.Metrics,
		now:     now,
	}, nil
}

// StartAddress guards entry into the address stage.
func (s *service) StartAddress(ctx context.Context, token string) error {
	_, err := s.requireNonEmptyCart(ctx, token)
	return err
}

// SubmitAddress validates the form and stores the address for this checkout
// attempt. No partial address is ever forwarded.
func (s *service) SubmitAddress(ctx context.Context, token string, addr types.ShippingAddress) error {
	if _, err := s.requireNonEmptyCart(ctx, token); err != nil {
		return err
	}

	if !addr.Complete() {
		return pkgerrors.New(pkgerrors.CodeValidation, "shipping address is incomplete")
	}

	encoded, err := json.Marshal(addr)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode address")
	}
	if err := s.session.Set(ctx, addressKeyPrefix+token, string(encoded)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store address")
	}
	return nil
}

// StartPayment guards entry into the payment stage and returns the totals the
// payment page displays.
func (s *service) StartPayment(ctx context.Context, token string) (*Quote, error) {
	current, err := s.requireNonEmptyCart(ctx, token)
	if err != nil {
		return nil, err
	}
	if _, err := s.storedAddress(ctx, token); err != nil {
		return nil, err
	}
	return s.quoteFor(current), nil
}

// SubmitPayment validates the card and runs the order creation sequence. On
// any fatal failure the cart and stored address remain intact so the shopper
// can retry; on success both are discarded and the order reference is stored
// single-use for the confirmation view.
func (s *service) SubmitPayment(ctx context.Context, token string, userID *uuid.UUID, card payment.CardInput) (*Confirmation, error) {
	current, err := s.requireNonEmptyCart(ctx, token)
	if err != nil {
		return nil, err
	}
	addr, err := s.storedAddress(ctx, token)
	if err != nil {
		return nil, err
	}

	if fieldErrs := payment.ValidateCard(card, s.now()); fieldErrs != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "card validation failed").
			WithDetails(fieldErrs)
	}

	quote := s.quoteFor(current)

	var created *models.Order
	steps := []Step{
		{
			Name:   "create_order",
			Policy: AbortOnFailure,
			Run: func(ctx context.Context) error {
				return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
					gateway := s.gateway.WithTx(tx)
					number, err := gateway.NextOrderNumber(ctx)
					if err != nil {
						return err
					}
					order := &models.Order{
						OrderNumber:       number,
						UserID:            userID,
						Status:            enums.OrderStatusPending,
						PaymentStatus:     enums.PaymentStatusPaid,
						SubtotalCents:     quote.SubtotalCents,
						ShippingCostCents: quote.ShippingCents,
						TotalCents:        quote.TotalCents,
						ShippingAddress:   *addr,
					}
					created, err = gateway.CreateOrder(ctx, order)
					return err
				})
			},
		},
		{
			Name:   "create_order_items",
			Policy: LogAndContinue,
			Run: func(ctx context.Context) error {
				return s.gateway.CreateOrderItems(ctx, buildOrderItems(created.ID, current))
			},
		},
		{
			Name:   "decrement_stock",
			Policy: LogAndContinue,
			Run: func(ctx context.Context) error {
				var firstErr error
				for _, line := range current.Lines {
					if line.Book.EditionID == nil {
						continue
					}
					if err := s.gateway.DecrementStock(ctx, *line.Book.EditionID, line.Qty); err != nil && firstErr == nil {
						firstErr = err
					}
				}
				return firstErr
			},
		},
	}

	started := s.now()
	nonFatal, fatal := runPipeline(ctx, steps, s.logg, s.metrics)
	s.metrics.ObserveDuration(s.now().Sub(started))
	if fatal != nil {
		// Cart and address stay intact for a retry.
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, fatal, "order could not be created")
	}
	if nonFatal != nil && s.logg != nil {
		orderCtx := s.logg.WithField(ctx, "order_number", created.OrderNumber)
		s.logg.Warn(orderCtx, "order confirmed with incomplete follow-up steps")
	}

	s.metrics.IncOrderCreated()

	if err := s.session.Set(ctx, orderKeyPrefix+token, created.ID.String()); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store order reference")
	}
	if err := s.cart.Clear(ctx, token); err != nil {
		return nil, err
	}
	if err := s.session.Del(ctx, addressKeyPrefix+token); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "discard address")
	}

	return &Confirmation{OrderID: created.ID, OrderNumber: created.OrderNumber}, nil
}

// Confirmation fetches the just-created order for display and discards the
// single-use reference.
func (s *service) Confirmation(ctx context.Context, token string) (*models.Order, error) {
	raw, err := s.session.Get(ctx, orderKeyPrefix+token)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, &Redirect{To: StageCart}
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order reference")
	}

	orderID, err := uuid.Parse(raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "invalid order reference")
	}

	order, err := s.gateway.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	if err := s.session.Del(ctx, orderKeyPrefix+token); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "discard order reference")
	}
	return order, nil
}

func (s *service) requireNonEmptyCart(ctx context.Context, token string) (*cartsvc.Cart, error) {
	current, err := s.cart.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if current.IsEmpty() {
		return nil, &Redirect{To: StageCart}
	}
	return current, nil
}

func (s *service) storedAddress(ctx context.Context, token string) (*types.ShippingAddress, error) {
	raw, err := s.session.Get(ctx, addressKeyPrefix+token)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, &Redirect{To: StageAddress}
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load address")
	}

	var addr types.ShippingAddress
	if err := json.Unmarshal([]byte(raw), &addr); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode address")
	}
	return &addr, nil
}

func (s *service) quoteFor(current *cartsvc.Cart) *Quote {
	subtotal := current.Subtotal()
	shipping := s.policy.ShippingCost(subtotal)
	return &Quote{
		SubtotalCents: subtotal,
		ShippingCents: shipping,
		TotalCents:    s.policy.Total(subtotal, shipping),
	}
}

func buildOrderItems(orderID uuid.UUID, current *cartsvc.Cart) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(current.Lines))
	for _, line := range current.Lines {
		bookID := line.Book.BookID
		items = append(items, models.OrderItem{
			OrderID:        orderID,
			BookID:         &bookID,
			EditionID:      line.Book.EditionID,
			Title:          line.Book.Title,
			UnitPriceCents: line.Book.UnitPriceCents,
			Qty:            line.Qty,
			TotalCents:     line.Book.UnitPriceCents * line.Qty,
		})
	}
	return items
}
