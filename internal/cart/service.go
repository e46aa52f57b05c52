package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	pkgerrors "github.com/pageturne/storefront-backend/pkg/errors"
	"github.com/pageturne/storefront-backend/pkg/kv"
)

// Service maintains the shopper's cart: every mutation persists the resulting
// state to the long-lived store so it survives a browser restart. There is one
// logical writer per cart token; cross-tab writes are last-write-wins.
type Service interface {
	Get(ctx context.Context, token string) (*Cart, error)
	AddItem(ctx context.Context, token string, book BookSnapshot, qty int) (*Cart, error)
	UpdateQuantity(ctx context.Context, token string, lineID uuid.UUID, qty int) (*Cart, error)
	RemoveItem(ctx context.Context, token string, lineID uuid.UUID) (*Cart, error)
	Clear(ctx context.Context, token string) error
}

type service struct {
	store kv.PersistentStore
}

// NewService builds a cart service backed by the provided persistent store.
func NewService(store kv.PersistentStore) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("persistent store required")
	}
	return &service{store: store}, nil
}

// Get loads the cart for the token; an unknown token yields an empty cart.
func (s *service) Get(ctx context.Context, token string) (*Cart, error) {
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}

	raw, err := s.store.Get(ctx, token)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return &Cart{Token: token}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	var loaded Cart
	if err := json.Unmarshal([]byte(raw), &loaded); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode cart")
	}
	loaded.Token = token
	return &loaded, nil
}

// AddItem merges into an existing (book, edition) line or appends a new one.
// Quantity is clamped to at least 1; adding is never an error.
func (s *service) AddItem(ctx context.Context, token string, book BookSnapshot, qty int) (*Cart, error) {
	if book.BookID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "book id is required")
	}
	if book.UnitPriceCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit price cannot be negative")
	}
	if qty < 1 {
		qty = 1
	}

	current, err := s.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	if i := current.lineIndexByBook(book.BookID, book.EditionID); i >= 0 {
		current.Lines[i].Qty += qty
	} else {
		current.Lines = append(current.Lines, Line{
			ID:   uuid.New(),
			Book: book,
			Qty:  qty,
		})
	}

	if err := s.persist(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

// UpdateQuantity sets a line's quantity; zero or below removes the line. An
// unknown line id is a no-op since UI state may briefly lag store state.
func (s *service) UpdateQuantity(ctx context.Context, token string, lineID uuid.UUID, qty int) (*Cart, error) {
	current, err := s.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	i := current.lineIndexByID(lineID)
	if i < 0 {
		return current, nil
	}

	if qty <= 0 {
		current.Lines = append(current.Lines[:i], current.Lines[i+1:]...)
	} else {
		current.Lines[i].Qty = qty
	}

	if err := s.persist(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

// RemoveItem drops the line if present; no-op otherwise.
func (s *service) RemoveItem(ctx context.Context, token string, lineID uuid.UUID) (*Cart, error) {
	current, err := s.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	i := current.lineIndexByID(lineID)
	if i < 0 {
		return current, nil
	}

	current.Lines = append(current.Lines[:i], current.Lines[i+1:]...)
	if err := s.persist(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

// Clear empties the cart. Called once, after an order is durably persisted.
func (s *service) Clear(ctx context.Context, token string) error {
	if token == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}
	if err := s.store.Del(ctx, token); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

func (s *service) persist(ctx context.Context, c *Cart) error {
	encoded, err := json.Marshal(c)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.store.Set(ctx, c.Token, string(encoded)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart")
	}
	return nil
}
