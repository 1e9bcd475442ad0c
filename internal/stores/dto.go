package stores

import (
	"database/sql"
	"time"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
)

// StoreDTO exposes store data in API responses.
type StoreDTO struct {
	ID                int64          `json:"id"`
	UserID            string         `json:"user_id"`
	Name              string         `json:"name"`
	Description       *string        `json:"description,omitempty"`
	Slug              *string        `json:"slug,omitempty"`
	Active            bool           `json:"active"`
	PaymentsConnected bool           `json:"payments_connected"`
	Payment           *PaymentStatus `json:"payment,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// PaymentStatus reports the store's payments provider onboarding state.
type PaymentStatus struct {
	StripeAccountID  string     `json:"stripe_account_id"`
	DetailsSubmitted bool       `json:"details_submitted"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}

// StoreSummary is a directory row with its product count.
type StoreSummary struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Description       *string   `json:"description,omitempty"`
	Slug              *string   `json:"slug,omitempty"`
	Active            bool      `json:"active"`
	PaymentsConnected bool      `json:"payments_connected"`
	ProductCount      int64     `json:"product_count"`
	CreatedAt         time.Time `json:"created_at"`
}

// FromModel maps the persisted store into a DTO.
func FromModel(m *models.Store) *StoreDTO {
	if m == nil {
		return nil
	}
	return &StoreDTO{
		ID:                m.ID,
		UserID:            m.UserID,
		Name:              m.Name,
		Description:       m.Description,
		Slug:              m.Slug,
		Active:            m.Active,
		PaymentsConnected: m.PaymentsConnected(),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func paymentFromModel(m *models.Payment) *PaymentStatus {
	if m == nil {
		return nil
	}
	return &PaymentStatus{
		StripeAccountID:  m.StripeAccountID,
		DetailsSubmitted: m.DetailsSubmitted,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

type storeSummaryRecord struct {
	ID              int64
	Name            string
	Description     sql.NullString
	Slug            sql.NullString
	Active          bool
	StripeAccountID sql.NullString
	ProductCount    int64
	CreatedAt       time.Time
}

func (r storeSummaryRecord) toSummary() StoreSummary {
	return StoreSummary{
		ID:                r.ID,
		Name:              r.Name,
		Description:       nullStringPtr(r.Description),
		Slug:              nullStringPtr(r.Slug),
		Active:            r.Active,
		PaymentsConnected: r.StripeAccountID.Valid && r.StripeAccountID.String != "",
		ProductCount:      r.ProductCount,
		CreatedAt:         r.CreatedAt,
	}
}

func nullStringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	v := value.String
	return &v
}
