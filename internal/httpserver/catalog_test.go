package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"skishop-bff/internal/domain"
)

func TestUpstreamStatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound, "not found"},
		{"upstream with message", &domain.UpstreamError{Service: "catalog-service", Status: 500, Message: "boom"}, http.StatusBadGateway, "boom"},
		{"upstream without message", &domain.UpstreamError{Service: "catalog-service", Status: 500}, http.StatusBadGateway, "upstream service error"},
		{"transport error", errors.New("connection refused"), http.StatusBadGateway, "upstream service unavailable"},
	}
	for _, tc := range cases {
		status, msg := upstreamStatus(tc.err)
		if status != tc.wantStatus || msg != tc.wantMsg {
			t.Fatalf("%s: got (%d, %q), want (%d, %q)", tc.name, status, msg, tc.wantStatus, tc.wantMsg)
		}
	}
}

func catalogRouter(t *testing.T, catalog Catalog) http.Handler {
	t.Helper()
	return testRouter(t, Deps{
		CartStores: testManager(&stubCartService{}, &stubProductCatalog{}, nil),
		Catalog:    catalog,
	})
}

func TestGetProduct(t *testing.T) {
	router := catalogRouter(t, &stubCatalogAPI{product: &domain.Product{ID: "p1", Name: "Alpine Pro Skis"}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, deviceRequest(http.MethodGet, "/api/v1/products/p1", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var product domain.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &product); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if product.Name != "Alpine Pro Skis" {
		t.Fatalf("unexpected product: %+v", product)
	}
}

func TestGetProductNotFound(t *testing.T) {
	router := catalogRouter(t, &stubCatalogAPI{err: domain.ErrNotFound})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, deviceRequest(http.MethodGet, "/api/v1/products/missing", ""))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestListProductsUpstreamDown(t *testing.T) {
	router := catalogRouter(t, &stubCatalogAPI{err: errors.New("connection refused")})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, deviceRequest(http.MethodGet, "/api/v1/products?search=skis", ""))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func TestListCategories(t *testing.T) {
	router := catalogRouter(t, &stubCatalogAPI{categories: []domain.Category{{ID: "c1", Name: "Skis"}}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, deviceRequest(http.MethodGet, "/api/v1/categories", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var categories []domain.Category
	if err := json.Unmarshal(rec.Body.Bytes(), &categories); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(categories) != 1 || categories[0].Name != "Skis" {
		t.Fatalf("unexpected categories: %+v", categories)
	}
}

func TestCatalogRoutesAbsentWithoutClient(t *testing.T) {
	router := testRouter(t, Deps{CartStores: testManager(&stubCartService{}, &stubProductCatalog{}, nil)})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, deviceRequest(http.MethodGet, "/api/v1/products", ""))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 when catalog proxying is not wired, got %d", rec.Code)
	}
}
