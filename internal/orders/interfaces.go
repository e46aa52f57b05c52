package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageturne/storefront-backend/pkg/db/models"
)

// Gateway is the persistence surface the checkout flow drives. It owns order
// numbers, durable order/item rows and per-edition stock.
type Gateway interface {
	WithTx(tx *gorm.DB) Gateway
	NextOrderNumber(ctx context.Context) (string, error)
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateOrderItems(ctx context.Context, items []models.OrderItem) error
	DecrementStock(ctx context.Context, editionID uuid.UUID, qty int) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error)
}
