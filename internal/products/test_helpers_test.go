package product

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

var baseTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func mustCreateTestStore(t *testing.T, tx *gorm.DB, userID, name string, active bool) *models.Store {
	t.Helper()
	store := &models.Store{UserID: userID, Name: name, Active: active, CreatedAt: baseTime}
	if err := tx.Create(store).Error; err != nil {
		t.Fatalf("create store: %v", err)
	}
	return store
}

type productSeed struct {
	name        string
	category    enums.ProductCategory
	subcategory string
	price       string
	rating      int
	inventory   int
}

func mustCreateTestProduct(t *testing.T, tx *gorm.DB, storeID int64, seed productSeed, offset int) *models.Product {
	t.Helper()
	if seed.category == "" {
		seed.category = enums.ProductCategorySkateboards
	}
	if seed.price == "" {
		seed.price = "10.00"
	}
	product := &models.Product{
		Name:      seed.name,
		Category:  seed.category,
		Price:     decimal.RequireFromString(seed.price),
		Rating:    seed.rating,
		Inventory: seed.inventory,
		StoreID:   storeID,
		Images:    types.ProductImages{{ID: fmt.Sprintf("img-%d", offset), Name: seed.name, URL: "https://cdn.example.com/" + seed.name}},
		Tags:      types.StringList{"street"},
		CreatedAt: baseTime.Add(time.Duration(offset) * time.Minute),
	}
	if seed.subcategory != "" {
		sub := seed.subcategory
		product.Subcategory = &sub
	}
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

type dbStoreLoader struct {
	db *gorm.DB
}

func (l dbStoreLoader) FindByID(ctx context.Context, id int64) (*models.Store, error) {
	var store models.Store
	if err := l.db.WithContext(ctx).First(&store, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}
