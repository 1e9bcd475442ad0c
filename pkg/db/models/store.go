package models

import "time"

// Store is a seller's storefront. Name uniqueness is enforced by the stores service.
type Store struct {
	ID              int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID          string    `gorm:"column:user_id;not null"`
	Name            string    `gorm:"column:name;not null"`
	Description     *string   `gorm:"column:description"`
	Slug            *string   `gorm:"column:slug"`
	Active          bool      `gorm:"column:active;not null;default:false"`
	StripeAccountID *string   `gorm:"column:stripe_account_id"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// PaymentsConnected reports whether the store has a payments provider account attached.
func (s Store) PaymentsConnected() bool {
	return s.StripeAccountID != nil && *s.StripeAccountID != ""
}
