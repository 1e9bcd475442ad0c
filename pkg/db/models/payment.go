package models

import "time"

// Payment tracks a store's payments provider account, created on the first connect attempt.
type Payment struct {
	ID                     int64      `gorm:"column:id;primaryKey;autoIncrement"`
	StoreID                int64      `gorm:"column:store_id;not null"`
	StripeAccountID        string     `gorm:"column:stripe_account_id;not null"`
	StripeAccountCreatedAt *int64     `gorm:"column:stripe_account_created_at"`
	StripeAccountExpiresAt *int64     `gorm:"column:stripe_account_expires_at"`
	DetailsSubmitted       bool       `gorm:"column:details_submitted;not null;default:false"`
	CreatedAt              time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt              *time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
