package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/pageturne/storefront-backend/pkg/enums"
	"github.com/pageturne/storefront-backend/pkg/types"
)

// Order is the durable record created at checkout submission. Totals and the
// shipping address are snapshots; later catalog edits never alter them.
type Order struct {
	ID                uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber       string                `gorm:"column:order_number;not null;uniqueIndex:orders_order_number_key"`
	UserID            *uuid.UUID            `gorm:"column:user_id;type:uuid"`
	Status            enums.OrderStatus     `gorm:"column:status;type:order_status;not null;default:'pending'"`
	PaymentStatus     enums.PaymentStatus   `gorm:"column:payment_status;type:payment_status;not null;default:'pending'"`
	SubtotalCents     int                   `gorm:"column:subtotal_cents;not null"`
	ShippingCostCents int                   `gorm:"column:shipping_cost_cents;not null;default:0"`
	TotalCents        int                   `gorm:"column:total_cents;not null"`
	ShippingAddress   types.ShippingAddress `gorm:"column:shipping_address;type:jsonb;serializer:json"`
	Items             []OrderItem           `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
