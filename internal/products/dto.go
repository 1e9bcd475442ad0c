package product

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-backend/pkg/types"
)

// ProductSummary is the catalog row returned by list and detail endpoints.
type ProductSummary struct {
	ID          int64               `json:"id"`
	Name        string              `json:"name"`
	Description *string             `json:"description,omitempty"`
	Images      types.ProductImages `json:"images"`
	Category    string              `json:"category"`
	Subcategory *string             `json:"subcategory,omitempty"`
	Price       decimal.Decimal     `json:"price"`
	Inventory   int                 `json:"inventory"`
	Rating      int                 `json:"rating"`
	Tags        []string            `json:"tags"`
	StoreID     int64               `json:"store_id"`
	StoreName   string              `json:"store_name"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

type productSummaryRecord struct {
	ID          int64
	Name        string
	Description sql.NullString
	Images      types.ProductImages
	Category    string
	Subcategory sql.NullString
	Price       decimal.Decimal
	Inventory   int
	Rating      int
	Tags        types.StringList
	StoreID     int64
	StoreName   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (r productSummaryRecord) toSummary() ProductSummary {
	images := r.Images
	if images == nil {
		images = types.ProductImages{}
	}
	tags := []string(r.Tags)
	if tags == nil {
		tags = []string{}
	}
	return ProductSummary{
		ID:          r.ID,
		Name:        r.Name,
		Description: nullStringPtr(r.Description),
		Images:      images,
		Category:    r.Category,
		Subcategory: nullStringPtr(r.Subcategory),
		Price:       r.Price,
		Inventory:   r.Inventory,
		Rating:      r.Rating,
		Tags:        tags,
		StoreID:     r.StoreID,
		StoreName:   r.StoreName,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func nullStringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	v := value.String
	return &v
}
