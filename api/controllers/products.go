package controllers

import (
	"net/http"

	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	productsvc "github.com/angelmondragon/storefront-backend/internal/products"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/listquery"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

// CatalogProducts lists products of active stores.
func CatalogProducts(svc productsvc.Service, cfg config.CatalogConfig, logg *logger.Logger) http.HandlerFunc {
	schema := productsvc.CatalogSchema.WithDefaultLimit(cfg.PublicPageSize)
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		page, err := svc.ListCatalog(r.Context(), listquery.Normalize(r.URL.Query(), schema))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// CatalogProductDetail returns a single product with its store name.
func CatalogProductDetail(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		productID, err := validators.ParseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// StoreCatalogProducts lists the products of one public store page.
func StoreCatalogProducts(svc productsvc.Service, cfg config.CatalogConfig, logg *logger.Logger) http.HandlerFunc {
	schema := productsvc.CatalogSchema.WithDefaultLimit(cfg.PublicPageSize)
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		storeID, err := validators.ParseIDParam(r, "storeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListStoreCatalog(r.Context(), storeID, listquery.Normalize(r.URL.Query(), schema))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// DashboardProducts lists the products of a store owned by the caller.
func DashboardProducts(svc productsvc.Service, cfg config.CatalogConfig, logg *logger.Logger) http.HandlerFunc {
	schema := productsvc.DashboardSchema.WithDefaultLimit(cfg.DashboardPageSize)
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		storeID, err := validators.ParseIDParam(r, "storeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListDashboard(r.Context(), userID, storeID, listquery.Normalize(r.URL.Query(), schema))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}
