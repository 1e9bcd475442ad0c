package controllers

import (
	"net/http"

	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	storesvc "github.com/angelmondragon/storefront-backend/internal/stores"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/listquery"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

const (
	maxStoreNameLen        = 120
	maxStoreDescriptionLen = 2000
)

// StoreDirectory lists active stores with their product counts.
func StoreDirectory(svc storesvc.Service, cfg config.CatalogConfig, logg *logger.Logger) http.HandlerFunc {
	schema := storesvc.DirectorySchema.WithDefaultLimit(cfg.PublicPageSize)
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		page, err := svc.ListDirectory(r.Context(), listquery.Normalize(r.URL.Query(), schema))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// DashboardListStores lists the caller's stores, active or not.
func DashboardListStores(svc storesvc.Service, cfg config.CatalogConfig, logg *logger.Logger) http.HandlerFunc {
	schema := storesvc.DirectorySchema.WithDefaultLimit(cfg.DashboardPageSize)
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		page, err := svc.ListOwned(r.Context(), userID, listquery.Normalize(r.URL.Query(), schema))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// DashboardGetStore returns an owned store with its payment status.
func DashboardGetStore(svc storesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
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

		store, err := svc.GetOwned(r.Context(), userID, storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, store)
	}
}

// DashboardCreateStore creates a store for the caller.
func DashboardCreateStore(svc storesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		var payload createStoreRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := svc.Create(r.Context(), userID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, store)
	}
}

// DashboardUpdateStore applies a partial update to an owned store.
func DashboardUpdateStore(svc storesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
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

		var payload updateStoreRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := svc.Update(r.Context(), userID, storeID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, store)
	}
}

type createStoreRequest struct {
	Name        string  `json:"name" validate:"required,notblank,max=120"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

func (r createStoreRequest) toInput() storesvc.CreateStoreInput {
	return storesvc.CreateStoreInput{
		Name:        validators.SanitizeString(r.Name, maxStoreNameLen),
		Description: validators.SanitizeOptional(r.Description, maxStoreDescriptionLen),
	}
}

type updateStoreRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,notblank,max=120"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Active      *bool   `json:"active,omitempty"`
}

func (r updateStoreRequest) toInput() storesvc.UpdateStoreInput {
	input := storesvc.UpdateStoreInput{
		Description: validators.SanitizeOptional(r.Description, maxStoreDescriptionLen),
		Active:      r.Active,
	}
	if r.Name != nil {
		name := validators.SanitizeString(*r.Name, maxStoreNameLen)
		input.Name = &name
	}
	return input
}
