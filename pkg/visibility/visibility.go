package visibility

import (
	"strings"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

// StoreVisibilityInput drives the shared store checks for catalog and dashboard reads.
// OwnerID is set for dashboard reads and must match the store's user.
type StoreVisibilityInput struct {
	Store   *models.Store
	OwnerID string
}

// EnsureStoreVisible enforces canonical rules so hidden and foreign stores look the
// same as missing ones.
func EnsureStoreVisible(input StoreVisibilityInput) error {
	if input.Store == nil {
		return pkgerrors.NotFound("store not found")
	}
	if owner := strings.TrimSpace(input.OwnerID); owner != "" {
		if input.Store.UserID != owner {
			return pkgerrors.NotFound("store not found")
		}
		return nil
	}
	if !input.Store.Active {
		return pkgerrors.NotFound("store not found")
	}
	return nil
}
