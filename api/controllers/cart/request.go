package cart

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/angelmondragon/storefront-backend/api/validators"
	cartsvc "github.com/angelmondragon/storefront-backend/internal/cart"
	"github.com/angelmondragon/storefront-backend/pkg/config"
)

const maxSubcategoryLen = 64

type addItemRequest struct {
	ProductID   int64   `json:"product_id" validate:"required,gt=0"`
	Quantity    int     `json:"quantity" validate:"required,gt=0"`
	Subcategory *string `json:"subcategory,omitempty" validate:"omitempty,max=64"`
}

func (r addItemRequest) toInput() cartsvc.AddItemInput {
	input := cartsvc.AddItemInput{ProductID: r.ProductID, Quantity: r.Quantity}
	if r.Subcategory != nil {
		if sub := validators.SanitizeString(*r.Subcategory, maxSubcategoryLen); sub != "" {
			input.Subcategory = &sub
		}
	}
	return input
}

type updateItemRequest struct {
	Quantity *int `json:"quantity" validate:"required,gte=0"`
}

func cartIDFromCookie(r *http.Request, cfg config.CatalogConfig) string {
	cookie, err := r.Cookie(cfg.CartCookieName)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(cookie.Value)
}

// setCartCookie points the browser at cartID when the mutation landed in a cart other
// than the one it sent.
func setCartCookie(w http.ResponseWriter, r *http.Request, cfg config.CatalogConfig, sent string, cartID int64) {
	value := strconv.FormatInt(cartID, 10)
	if sent == value {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CartCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(cfg.CartCookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}
