package notifications

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/internal/repo"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
)

// Repository persists email preference rows.
type Repository struct {
	repo.Base
}

// NewRepository returns a preferences repository bound to the provided database.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) FindByToken(ctx context.Context, token string) (*models.EmailPreference, error) {
	var pref models.EmailPreference
	if err := r.DB(ctx).Where("token = ?", token).First(&pref).Error; err != nil {
		return nil, err
	}
	return &pref, nil
}

// FindByEmail matches the stored address case-insensitively.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.EmailPreference, error) {
	var pref models.EmailPreference
	if err := r.DB(ctx).Where("LOWER(email) = ?", strings.ToLower(email)).First(&pref).Error; err != nil {
		return nil, err
	}
	return &pref, nil
}

func (r *Repository) Create(ctx context.Context, pref *models.EmailPreference) error {
	if pref == nil {
		return fmt.Errorf("email preference is required")
	}
	return r.DB(ctx).Create(pref).Error
}

// UpdateFlags writes only the three subscription columns.
func (r *Repository) UpdateFlags(ctx context.Context, pref *models.EmailPreference) error {
	if pref == nil {
		return fmt.Errorf("email preference is required")
	}
	return r.DB(ctx).Model(pref).
		Select("newsletter", "marketing", "transactional", "updated_at").
		Updates(pref).Error
}
