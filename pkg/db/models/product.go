package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

// Product is a catalog listing owned by a store.
type Product struct {
	ID          int64                 `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string                `gorm:"column:name;not null"`
	Description *string               `gorm:"column:description"`
	Images      types.ProductImages   `gorm:"column:images;type:jsonb"`
	Category    enums.ProductCategory `gorm:"column:category;not null;default:'skateboards'"`
	Subcategory *string               `gorm:"column:subcategory"`
	Price       decimal.Decimal       `gorm:"column:price;type:numeric(10,2);not null;default:0"`
	Inventory   int                   `gorm:"column:inventory;not null;default:0"`
	Rating      int                   `gorm:"column:rating;not null;default:0"`
	Tags        types.StringList      `gorm:"column:tags;type:jsonb"`
	StoreID     int64                 `gorm:"column:store_id;not null"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
