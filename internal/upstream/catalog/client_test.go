package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"skishop-bff/internal/cache"
	"skishop-bff/internal/domain"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type stubCache struct {
	entries map[string]string
	getErr  error
	setErr  error
	sets    map[string]time.Duration
}

func newStubCache() *stubCache {
	return &stubCache{entries: map[string]string{}, sets: map[string]time.Duration{}}
}

func (s *stubCache) Get(_ context.Context, key string) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	v, ok := s.entries[key]
	if !ok {
		return "", cache.Miss
	}
	return v, nil
}

func (s *stubCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.entries[key] = value
	s.sets[key] = ttl
	return nil
}

func productServer(t *testing.T, hits *atomic.Int32, product domain.Product) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(product)
	}))
}

func TestProductByIDCachesResult(t *testing.T) {
	var hits atomic.Int32
	srv := productServer(t, &hits, domain.Product{ID: "p1", Name: "Alpine Pro Skis", CurrentPrice: 499.99})
	defer srv.Close()

	store := newStubCache()
	client := New(srv.URL, srv.Client(), store, 5*time.Minute, logDiscard())

	first, err := client.ProductByID(context.Background(), "p1")
	if err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	second, err := client.ProductByID(context.Background(), "p1")
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}

	if hits.Load() != 1 {
		t.Fatalf("expected one origin hit, got %d", hits.Load())
	}
	if first.Name != second.Name || second.Name != "Alpine Pro Skis" {
		t.Fatalf("cached product mismatch: %+v vs %+v", first, second)
	}
	if ttl := store.sets["catalog:product:p1"]; ttl != 5*time.Minute {
		t.Fatalf("expected cache ttl 5m, got %s", ttl)
	}
}

func TestProductByIDCacheFailureFallsThrough(t *testing.T) {
	var hits atomic.Int32
	srv := productServer(t, &hits, domain.Product{ID: "p1", Name: "Skis"})
	defer srv.Close()

	store := newStubCache()
	store.getErr = errors.New("redis down")
	store.setErr = errors.New("redis down")
	client := New(srv.URL, srv.Client(), store, time.Minute, logDiscard())

	product, err := client.ProductByID(context.Background(), "p1")
	if err != nil {
		t.Fatalf("expected origin fallback, got %v", err)
	}
	if product.Name != "Skis" || hits.Load() != 1 {
		t.Fatalf("expected origin fetch despite cache failure")
	}
}

func TestProductByIDNilCache(t *testing.T) {
	var hits atomic.Int32
	srv := productServer(t, &hits, domain.Product{ID: "p1"})
	defer srv.Close()

	client := New(srv.URL, srv.Client(), nil, time.Minute, logDiscard())
	if _, err := client.ProductByID(context.Background(), "p1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := client.ProductByID(context.Background(), "p1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hits.Load() != 2 {
		t.Fatalf("expected every read at the origin without a cache, got %d", hits.Load())
	}
}

func TestProductsQueryPassthrough(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"p1"}]`))
	}))
	defer srv.Close()

	minPrice := 100.0
	page := 2
	client := New(srv.URL, srv.Client(), nil, time.Minute, logDiscard())
	products, err := client.Products(context.Background(), domain.ProductQuery{
		Search:   "skis",
		MinPrice: &minPrice,
		Page:     &page,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected one product, got %d", len(products))
	}
	for _, want := range []string{"search=skis", "minPrice=100", "page=2"} {
		if !strings.Contains(gotQuery, want) {
			t.Fatalf("expected query to contain %q, got %q", want, gotQuery)
		}
	}
}

func TestCategoriesCachedAsBlob(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"c1","name":"Skis"},{"id":"c2","name":"Boots"}]`))
	}))
	defer srv.Close()

	store := newStubCache()
	client := New(srv.URL, srv.Client(), store, time.Minute, logDiscard())

	if _, err := client.Categories(context.Background()); err != nil {
		t.Fatalf("first list: %v", err)
	}
	categories, err := client.Categories(context.Background())
	if err != nil {
		t.Fatalf("second list: %v", err)
	}
	if hits.Load() != 1 {
		t.Fatalf("expected one origin hit, got %d", hits.Load())
	}
	if len(categories) != 2 || categories[1].Name != "Boots" {
		t.Fatalf("unexpected categories: %+v", categories)
	}
}
