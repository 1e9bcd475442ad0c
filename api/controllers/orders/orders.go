package orders

import (
	"net/http"

	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	ordersvc "github.com/angelmondragon/storefront-backend/internal/orders"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/listquery"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

// StoreOrderList returns the paginated orders of an owned store.
func StoreOrderList(svc ordersvc.Service, cfg config.CatalogConfig, logg *logger.Logger) http.HandlerFunc {
	schema := ordersvc.OrdersSchema.WithDefaultLimit(cfg.DashboardPageSize)
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		userID, storeID, err := storeScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListStoreOrders(r.Context(), userID, storeID, listquery.Normalize(r.URL.Query(), schema))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// StoreOrderDetail returns one order of an owned store with its line items and address.
func StoreOrderDetail(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		userID, storeID, err := storeScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := validators.ParseIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.GetStoreOrder(r.Context(), userID, storeID, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, detail)
	}
}

// StoreCustomerList returns the per-email rollup of a store's orders.
func StoreCustomerList(svc ordersvc.Service, cfg config.CatalogConfig, logg *logger.Logger) http.HandlerFunc {
	schema := ordersvc.CustomersSchema.WithDefaultLimit(cfg.DashboardPageSize)
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		userID, storeID, err := storeScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListCustomers(r.Context(), userID, storeID, listquery.Normalize(r.URL.Query(), schema))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// PurchaseList returns the caller's own orders across every store.
func PurchaseList(svc ordersvc.Service, cfg config.CatalogConfig, logg *logger.Logger) http.HandlerFunc {
	schema := ordersvc.OrdersSchema.WithDefaultLimit(cfg.DashboardPageSize)
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		page, err := svc.ListPurchases(r.Context(), middleware.EmailFromContext(r.Context()), listquery.Normalize(r.URL.Query(), schema))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// PurchaseDetail returns one of the caller's orders as a receipt.
func PurchaseDetail(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := validators.ParseIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.GetPurchase(r.Context(), middleware.EmailFromContext(r.Context()), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, detail)
	}
}

func storeScope(r *http.Request) (string, int64, error) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		return "", 0, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	storeID, err := validators.ParseIDParam(r, "storeId")
	if err != nil {
		return "", 0, err
	}
	return userID, storeID, nil
}
