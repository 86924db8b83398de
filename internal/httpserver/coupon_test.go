package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"skishop-bff/internal/domain"
)

func TestValidateCouponUsesCartTotal(t *testing.T) {
	carts := &stubCartService{sessionCart: &domain.Cart{
		CartID: "cart-1",
		Totals: domain.CartTotals{TotalAmount: 250},
	}}
	coupons := &stubCoupons{validation: &domain.CouponValidation{Valid: true, DiscountAmount: 25}}
	router := testRouter(t, Deps{
		CartStores: testManager(carts, &stubProductCatalog{}, nil),
		Coupons:    coupons,
	})

	// Initialize the cart so the total is known.
	router.ServeHTTP(httptest.NewRecorder(), deviceRequest(http.MethodGet, "/api/v1/cart", ""))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, deviceRequest(http.MethodPost, "/api/v1/coupons/validate", `{"couponCode":"WINTER10"}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if coupons.lastCode != "WINTER10" || coupons.lastAmount != 250 {
		t.Fatalf("expected validation against the cart total, got code=%q amount=%v", coupons.lastCode, coupons.lastAmount)
	}
	var validation domain.CouponValidation
	if err := json.Unmarshal(rec.Body.Bytes(), &validation); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !validation.Valid || validation.DiscountAmount != 25 {
		t.Fatalf("unexpected validation: %+v", validation)
	}
}

func TestValidateCouponRequiresCode(t *testing.T) {
	router := testRouter(t, Deps{
		CartStores: testManager(&stubCartService{}, &stubProductCatalog{}, nil),
		Coupons:    &stubCoupons{},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, deviceRequest(http.MethodPost, "/api/v1/coupons/validate", `{"couponCode":"  "}`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestListCoupons(t *testing.T) {
	coupons := &stubCoupons{available: []domain.Coupon{{Code: "WINTER10", Active: true}}}
	router := testRouter(t, Deps{
		CartStores: testManager(&stubCartService{}, &stubProductCatalog{}, nil),
		Coupons:    coupons,
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, deviceRequest(http.MethodGet, "/api/v1/coupons", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var out []domain.Coupon
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 1 || out[0].Code != "WINTER10" {
		t.Fatalf("unexpected coupons: %+v", out)
	}
}

func TestApplyCouponUpstreamFailure(t *testing.T) {
	coupons := &stubCoupons{err: &domain.UpstreamError{Service: "coupon-service", Status: 409, Message: "already used"}}
	router := testRouter(t, Deps{
		CartStores: testManager(&stubCartService{}, &stubProductCatalog{}, nil),
		Coupons:    coupons,
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, deviceRequest(http.MethodPost, "/api/v1/coupons/apply", `{"couponCode":"WINTER10","orderId":"o1"}`))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	var out struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Error != "already used" {
		t.Fatalf("expected upstream message passed through, got %q", out.Error)
	}
}
