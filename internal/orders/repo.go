package orders

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageturne/storefront-backend/pkg/db"
	"github.com/pageturne/storefront-backend/pkg/db/models"
	pkgerrors "github.com/pageturne/storefront-backend/pkg/errors"
)

const orderNumberAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

type repository struct {
	db *gorm.DB
}

// NewRepository builds the order gateway bound to the provided DB.
func NewRepository(conn *gorm.DB) Gateway {
	return &repository{db: conn}
}

func (r *repository) WithTx(tx *gorm.DB) Gateway {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// NextOrderNumber returns a fresh human-facing code, e.g. "PT-20260412-8KQZ".
// The orders table carries a unique index; the single retry below covers the
// rare collision on the random suffix.
func (r *repository) NextOrderNumber(ctx context.Context) (string, error) {
	for attempt := 0; attempt < 2; attempt++ {
		candidate, err := generateOrderNumber(time.Now().UTC())
		if err != nil {
			return "", err
		}
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.Order{}).
			Where("order_number = ?", candidate).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
	}
	return "", pkgerrors.New(pkgerrors.CodeConflict, "could not allocate a unique order number")
}

func (r *repository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		if db.IsUniqueViolation(err, "orders_order_number_key") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "order number already used")
		}
		return nil, err
	}
	return order, nil
}

func (r *repository) CreateOrderItems(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

// DecrementStock reduces the edition's stock by qty, never below zero. The
// conditional update serializes concurrent decrements across shoppers.
func (r *repository) DecrementStock(ctx context.Context, editionID uuid.UUID, qty int) error {
	if qty <= 0 {
		return nil
	}
	result := r.db.WithContext(ctx).
		Model(&models.BookEdition{}).
		Where("id = ?", editionID).
		Update("current_stock", gorm.Expr(
			"CASE WHEN current_stock >= ? THEN current_stock - ? ELSE 0 END", qty, qty,
		))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("edition %s not found", editionID))
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) FindItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func generateOrderNumber(now time.Time) (string, error) {
	suffix := make([]byte, 4)
	max := big.NewInt(int64(len(orderNumberAlphabet)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generating order number: %w", err)
		}
		suffix[i] = orderNumberAlphabet[n.Int64()]
	}
	return fmt.Sprintf("PT-%s-%s", now.Format("20060102"), suffix), nil
}
