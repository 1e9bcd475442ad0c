package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

// Order is a per-store order. Items is a frozen snapshot taken at checkout.
type Order struct {
	ID                        int64                     `gorm:"column:id;primaryKey;autoIncrement"`
	StoreID                   int64                     `gorm:"column:store_id;not null"`
	Items                     types.CheckoutItems       `gorm:"column:items;type:jsonb"`
	Quantity                  *int                      `gorm:"column:quantity"`
	Amount                    decimal.Decimal           `gorm:"column:amount;type:numeric(10,2);not null;default:0"`
	StripePaymentIntentID     string                    `gorm:"column:stripe_payment_intent_id;not null"`
	StripePaymentIntentStatus enums.PaymentIntentStatus `gorm:"column:stripe_payment_intent_status;not null"`
	Name                      string                    `gorm:"column:name;not null"`
	Email                     string                    `gorm:"column:email;not null"`
	AddressID                 *int64                    `gorm:"column:address_id"`
	CreatedAt                 time.Time                 `gorm:"column:created_at;autoCreateTime"`
}
