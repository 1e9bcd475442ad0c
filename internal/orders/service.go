package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/listquery"
	"github.com/angelmondragon/storefront-backend/pkg/visibility"
)

type storeLoader interface {
	FindByID(ctx context.Context, id int64) (*models.Store, error)
}

type ordersRepository interface {
	FindForStore(ctx context.Context, storeID, orderID int64) (*models.Order, error)
	FindForBuyer(ctx context.Context, email string, orderID int64) (*models.Order, error)
	FindAddress(ctx context.Context, id int64) (*models.Address, error)
	FindStoreName(ctx context.Context, storeID int64) (string, error)
	ListStoreOrders(ctx context.Context, storeID int64, params listquery.Params) (listquery.Page[OrderSummary], error)
	ListPurchases(ctx context.Context, email string, params listquery.Params) (listquery.Page[OrderSummary], error)
	ListCustomers(ctx context.Context, storeID int64, params listquery.Params) (listquery.Page[CustomerSummary], error)
}

type lineItemResolver interface {
	Resolve(ctx context.Context, order *models.Order) ([]LineItem, error)
}

// Service exposes seller order views and buyer purchase history.
type Service interface {
	ListStoreOrders(ctx context.Context, userID string, storeID int64, params listquery.Params) (listquery.Page[OrderSummary], error)
	GetStoreOrder(ctx context.Context, userID string, storeID, orderID int64) (*OrderDetail, error)
	ListCustomers(ctx context.Context, userID string, storeID int64, params listquery.Params) (listquery.Page[CustomerSummary], error)
	ListPurchases(ctx context.Context, email string, params listquery.Params) (listquery.Page[OrderSummary], error)
	GetPurchase(ctx context.Context, email string, orderID int64) (*OrderDetail, error)
}

type service struct {
	repo     ordersRepository
	stores   storeLoader
	resolver lineItemResolver
}

// NewService constructs the orders service.
func NewService(repo ordersRepository, stores storeLoader, resolver lineItemResolver) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if stores == nil {
		return nil, fmt.Errorf("store loader required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("line item resolver required")
	}
	return &service{repo: repo, stores: stores, resolver: resolver}, nil
}

func (s *service) ListStoreOrders(ctx context.Context, userID string, storeID int64, params listquery.Params) (listquery.Page[OrderSummary], error) {
	if err := s.ensureOwner(ctx, userID, storeID); err != nil {
		return listquery.Page[OrderSummary]{}, err
	}
	return s.repo.ListStoreOrders(ctx, storeID, params)
}

func (s *service) GetStoreOrder(ctx context.Context, userID string, storeID, orderID int64) (*OrderDetail, error) {
	if err := s.ensureOwner(ctx, userID, storeID); err != nil {
		return nil, err
	}
	order, err := s.repo.FindForStore(ctx, storeID, orderID)
	if err != nil {
		return nil, notFoundOr(err, "order not found", "load order")
	}
	return s.detail(ctx, order)
}

func (s *service) ListCustomers(ctx context.Context, userID string, storeID int64, params listquery.Params) (listquery.Page[CustomerSummary], error) {
	if err := s.ensureOwner(ctx, userID, storeID); err != nil {
		return listquery.Page[CustomerSummary]{}, err
	}
	return s.repo.ListCustomers(ctx, storeID, params)
}

// ListPurchases lists every order placed under the buyer's email.
func (s *service) ListPurchases(ctx context.Context, email string, params listquery.Params) (listquery.Page[OrderSummary], error) {
	if strings.TrimSpace(email) == "" {
		return listquery.Page[OrderSummary]{}, pkgerrors.New(pkgerrors.CodeForbidden, "an email claim is required to view purchases")
	}
	return s.repo.ListPurchases(ctx, email, params)
}

func (s *service) GetPurchase(ctx context.Context, email string, orderID int64) (*OrderDetail, error) {
	if strings.TrimSpace(email) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "an email claim is required to view purchases")
	}
	order, err := s.repo.FindForBuyer(ctx, email, orderID)
	if err != nil {
		return nil, notFoundOr(err, "order not found", "load order")
	}
	return s.detail(ctx, order)
}

func (s *service) detail(ctx context.Context, order *models.Order) (*OrderDetail, error) {
	items, err := s.resolver.Resolve(ctx, order)
	if err != nil {
		return nil, err
	}

	storeName, err := s.repo.FindStoreName(ctx, order.StoreID)
	if err != nil && !db.IsNotFound(err) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order store")
	}

	detail := &OrderDetail{
		OrderSummary: OrderSummary{
			ID:        order.ID,
			StoreID:   order.StoreID,
			StoreName: storeName,
			Quantity:  order.Quantity,
			Amount:    order.Amount,
			Status:    string(order.StripePaymentIntentStatus),
			Name:      order.Name,
			Email:     order.Email,
			CreatedAt: order.CreatedAt,
		},
		Items: items,
	}

	if order.AddressID != nil {
		address, err := s.repo.FindAddress(ctx, *order.AddressID)
		switch {
		case err == nil:
			detail.Address = &AddressDTO{
				Line1:      address.Line1,
				Line2:      address.Line2,
				City:       address.City,
				State:      address.State,
				PostalCode: address.PostalCode,
				Country:    address.Country,
			}
		case !db.IsNotFound(err):
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order address")
		}
	}
	return detail, nil
}

func (s *service) ensureOwner(ctx context.Context, userID string, storeID int64) error {
	if strings.TrimSpace(userID) == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user required")
	}
	store, err := s.stores.FindByID(ctx, storeID)
	if err != nil {
		return notFoundOr(err, "store not found", "load store")
	}
	return visibility.EnsureStoreVisible(visibility.StoreVisibilityInput{Store: store, OwnerID: userID})
}

func notFoundOr(err error, notFound, op string) error {
	if db.IsNotFound(err) {
		return pkgerrors.NotFound(notFound)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, op)
}
