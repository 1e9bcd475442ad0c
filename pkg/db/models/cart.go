package models

import (
	"time"

	"github.com/angelmondragon/storefront-backend/pkg/types"
)

// Cart is an anonymous cart addressed by an opaque id held in a browser cookie.
type Cart struct {
	ID              int64           `gorm:"column:id;primaryKey;autoIncrement"`
	PaymentIntentID *string         `gorm:"column:payment_intent_id"`
	ClientSecret    *string         `gorm:"column:client_secret"`
	Items           types.CartItems `gorm:"column:items;type:jsonb"`
	Closed          bool            `gorm:"column:closed;not null;default:false"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
