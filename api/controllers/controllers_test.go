package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/internal/notifications"
	productsvc "github.com/angelmondragon/storefront-backend/internal/products"
	storesvc "github.com/angelmondragon/storefront-backend/internal/stores"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/listquery"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: "debug", Output: io.Discard})
}

func testCatalogConfig() config.CatalogConfig {
	return config.CatalogConfig{PublicPageSize: 8, DashboardPageSize: 10}
}

func withURLParams(req *http.Request, kv ...string) *http.Request {
	routeCtx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		routeCtx.URLParams.Add(kv[i], kv[i+1])
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Error.Code
}

type stubProductService struct {
	params  listquery.Params
	storeID int64
	userID  string
	err     error
}

func (s *stubProductService) ListCatalog(_ context.Context, params listquery.Params) (listquery.Page[productsvc.ProductSummary], error) {
	s.params = params
	return listquery.Page[productsvc.ProductSummary]{Items: []productsvc.ProductSummary{}, Limit: params.Limit}, s.err
}

func (s *stubProductService) ListStoreCatalog(_ context.Context, storeID int64, params listquery.Params) (listquery.Page[productsvc.ProductSummary], error) {
	s.storeID = storeID
	s.params = params
	return listquery.Page[productsvc.ProductSummary]{Items: []productsvc.ProductSummary{}}, s.err
}

func (s *stubProductService) ListDashboard(_ context.Context, userID string, storeID int64, params listquery.Params) (listquery.Page[productsvc.ProductSummary], error) {
	s.userID = userID
	s.storeID = storeID
	s.params = params
	return listquery.Page[productsvc.ProductSummary]{Items: []productsvc.ProductSummary{}}, s.err
}

func (s *stubProductService) GetProduct(_ context.Context, id int64) (*productsvc.ProductSummary, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &productsvc.ProductSummary{ID: id, Name: "Tee"}, nil
}

func TestCatalogProductsNormalizesQuery(t *testing.T) {
	stub := &stubProductService{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?per_page=abc&page=2&sort=bogus.asc", nil)
	rec := httptest.NewRecorder()

	CatalogProducts(stub, testCatalogConfig(), testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.params.Limit != 8 {
		t.Fatalf("expected default limit 8, got %d", stub.params.Limit)
	}
	if stub.params.Offset != 8 {
		t.Fatalf("expected offset 8 for page 2, got %d", stub.params.Offset)
	}
	if stub.params.Sort.Field != "createdAt" {
		t.Fatalf("expected default sort field, got %q", stub.params.Sort.Field)
	}
}

func TestCatalogProductsNilService(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	rec := httptest.NewRecorder()

	CatalogProducts(nil, testCatalogConfig(), testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestCatalogProductDetail(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		req := withURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/products/abc", nil), "productId", "abc")
		rec := httptest.NewRecorder()
		CatalogProductDetail(&stubProductService{}, testLogger()).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		req := withURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/products/9", nil), "productId", "9")
		rec := httptest.NewRecorder()
		CatalogProductDetail(&stubProductService{err: pkgerrors.NotFound("product not found")}, testLogger()).ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		if code := decodeError(t, rec); code != string(pkgerrors.CodeNotFound) {
			t.Fatalf("expected NOT_FOUND code, got %q", code)
		}
	})

	t.Run("success", func(t *testing.T) {
		req := withURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/products/9", nil), "productId", "9")
		rec := httptest.NewRecorder()
		CatalogProductDetail(&stubProductService{}, testLogger()).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var body struct {
			Data productsvc.ProductSummary `json:"data"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Data.ID != 9 {
			t.Fatalf("expected product 9, got %d", body.Data.ID)
		}
	})
}

func TestDashboardProductsRequiresUser(t *testing.T) {
	stub := &stubProductService{}
	req := withURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stores/3/products", nil), "storeId", "3")
	rec := httptest.NewRecorder()

	DashboardProducts(stub, testCatalogConfig(), testLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	req = withURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stores/3/products", nil), "storeId", "3")
	req = req.WithContext(middleware.WithUserID(req.Context(), "user-1"))
	rec = httptest.NewRecorder()

	DashboardProducts(stub, testCatalogConfig(), testLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.userID != "user-1" || stub.storeID != 3 {
		t.Fatalf("unexpected scope user=%q store=%d", stub.userID, stub.storeID)
	}
	if stub.params.Limit != 10 {
		t.Fatalf("expected dashboard limit 10, got %d", stub.params.Limit)
	}
}

type stubStoreService struct {
	created storesvc.CreateStoreInput
	updated storesvc.UpdateStoreInput
	err     error
}

func (s *stubStoreService) ListDirectory(context.Context, listquery.Params) (listquery.Page[storesvc.StoreSummary], error) {
	return listquery.Page[storesvc.StoreSummary]{Items: []storesvc.StoreSummary{}}, s.err
}

func (s *stubStoreService) ListOwned(context.Context, string, listquery.Params) (listquery.Page[storesvc.StoreSummary], error) {
	return listquery.Page[storesvc.StoreSummary]{Items: []storesvc.StoreSummary{}}, s.err
}

func (s *stubStoreService) GetOwned(_ context.Context, userID string, storeID int64) (*storesvc.StoreDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &storesvc.StoreDTO{ID: storeID, UserID: userID}, nil
}

func (s *stubStoreService) Create(_ context.Context, userID string, input storesvc.CreateStoreInput) (*storesvc.StoreDTO, error) {
	s.created = input
	if s.err != nil {
		return nil, s.err
	}
	return &storesvc.StoreDTO{ID: 1, UserID: userID, Name: input.Name}, nil
}

func (s *stubStoreService) Update(_ context.Context, userID string, storeID int64, input storesvc.UpdateStoreInput) (*storesvc.StoreDTO, error) {
	s.updated = input
	if s.err != nil {
		return nil, s.err
	}
	return &storesvc.StoreDTO{ID: storeID, UserID: userID}, nil
}

func TestDashboardCreateStore(t *testing.T) {
	newRequest := func(body string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/dashboard/stores", strings.NewReader(body))
		return req.WithContext(middleware.WithUserID(req.Context(), "user-1"))
	}

	t.Run("sanitizes and creates", func(t *testing.T) {
		stub := &stubStoreService{}
		rec := httptest.NewRecorder()
		DashboardCreateStore(stub, testLogger()).ServeHTTP(rec, newRequest(`{"name":"  Corner Shop  "}`))
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
		if stub.created.Name != "Corner Shop" {
			t.Fatalf("expected trimmed name, got %q", stub.created.Name)
		}
	})

	t.Run("blank name", func(t *testing.T) {
		rec := httptest.NewRecorder()
		DashboardCreateStore(&stubStoreService{}, testLogger()).ServeHTTP(rec, newRequest(`{"name":"   "}`))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		rec := httptest.NewRecorder()
		DashboardCreateStore(&stubStoreService{}, testLogger()).ServeHTTP(rec, newRequest(`{"name":"Shop","owner":"x"}`))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("name conflict", func(t *testing.T) {
		stub := &stubStoreService{err: pkgerrors.New(pkgerrors.CodeConflict, "a store with this name already exists")}
		rec := httptest.NewRecorder()
		DashboardCreateStore(stub, testLogger()).ServeHTTP(rec, newRequest(`{"name":"Shop"}`))
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})
}

func TestDashboardUpdateStorePassesPartialInput(t *testing.T) {
	stub := &stubStoreService{}
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/dashboard/stores/4", strings.NewReader(`{"active":false}`))
	req = withURLParams(req, "storeId", "4")
	req = req.WithContext(middleware.WithUserID(req.Context(), "user-1"))
	rec := httptest.NewRecorder()

	DashboardUpdateStore(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.updated.Name != nil || stub.updated.Description != nil {
		t.Fatalf("expected untouched name and description")
	}
	if stub.updated.Active == nil || *stub.updated.Active {
		t.Fatalf("expected active=false")
	}
}

func TestStoreDirectoryDependencyFailure(t *testing.T) {
	stub := &stubStoreService{err: pkgerrors.Wrap(pkgerrors.CodeDependency, errors.New("conn refused"), "list stores")}
	rec := httptest.NewRecorder()

	StoreDirectory(stub, testCatalogConfig(), testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/stores", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

type stubPreferenceService struct {
	created bool
	email   string
	input   notifications.UpdatePreferencesInput
	err     error
}

func (s *stubPreferenceService) Get(context.Context, string) (*notifications.Preferences, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &notifications.Preferences{Email: "a@example.com", Newsletter: true}, nil
}

func (s *stubPreferenceService) Update(_ context.Context, _ string, input notifications.UpdatePreferencesInput) (*notifications.Preferences, error) {
	s.input = input
	if s.err != nil {
		return nil, s.err
	}
	return &notifications.Preferences{Email: "a@example.com"}, nil
}

func (s *stubPreferenceService) Subscribe(_ context.Context, email string) (*notifications.Preferences, bool, error) {
	s.email = email
	if s.err != nil {
		return nil, false, s.err
	}
	return &notifications.Preferences{Email: email, Newsletter: true}, s.created, nil
}

func TestNewsletterSubscribe(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		stub := &stubPreferenceService{created: true}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/newsletter", strings.NewReader(`{"email":"a@example.com"}`))
		rec := httptest.NewRecorder()
		NewsletterSubscribe(stub, testLogger()).ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
	})

	t.Run("already subscribed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/newsletter", strings.NewReader(`{"email":"a@example.com"}`))
		rec := httptest.NewRecorder()
		NewsletterSubscribe(&stubPreferenceService{}, testLogger()).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("invalid email", func(t *testing.T) {
		stub := &stubPreferenceService{}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/newsletter", strings.NewReader(`{"email":"nope"}`))
		rec := httptest.NewRecorder()
		NewsletterSubscribe(stub, testLogger()).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if stub.email != "" {
			t.Fatalf("service should not be called")
		}
	})
}

func TestUpdateEmailPreferences(t *testing.T) {
	stub := &stubPreferenceService{}
	req := httptest.NewRequest(http.MethodPut, "/api/v1/email-preferences/tok", strings.NewReader(`{"marketing":true}`))
	req = withURLParams(req, "token", "tok")
	rec := httptest.NewRecorder()

	UpdateEmailPreferences(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.input.Marketing == nil || !*stub.input.Marketing || stub.input.Newsletter != nil {
		t.Fatalf("unexpected update input %+v", stub.input)
	}
}

func TestGetEmailPreferencesUnknownToken(t *testing.T) {
	stub := &stubPreferenceService{err: pkgerrors.NotFound("email preferences not found")}
	req := withURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/email-preferences/x", nil), "token", "x")
	rec := httptest.NewRecorder()

	GetEmailPreferences(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func TestHealthReady(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "test"}}

	rec := httptest.NewRecorder()
	HealthReady(cfg, testLogger(), Dependency{Name: "db", Pinger: stubPinger{}}, Dependency{Name: "redis"}).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-Storefront-Env") != "test" {
		t.Fatalf("expected env header")
	}

	rec = httptest.NewRecorder()
	HealthReady(cfg, testLogger(), Dependency{Name: "db", Pinger: stubPinger{err: errors.New("down")}}).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
