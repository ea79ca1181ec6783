package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"luxejewel/internal/domain"
	"luxejewel/internal/http/handlers"
	"luxejewel/internal/services"
	"luxejewel/internal/store/storetest"
)

type fixture struct {
	app     *fiber.App
	users   *storetest.Users
	prods   *storetest.Products
	carts   *storetest.Carts
	orders  *storetest.Orders
	gateway *storetest.Gateway
}

func newFixture(t *testing.T, seed ...domain.Product) *fixture {
	t.Helper()
	f := &fixture{
		users:   storetest.NewUsers(),
		prods:   storetest.NewProducts(seed...),
		carts:   storetest.NewCarts(),
		orders:  storetest.NewOrders(),
		gateway: storetest.NewGateway(),
	}
	auth := services.NewAuthService(f.users, "test-secret", time.Hour)
	deps := &handlers.Deps{
		AuthHandler:    &handlers.AuthHandler{Auth: auth},
		ProductHandler: &handlers.ProductHandler{Catalog: services.NewCatalogService(f.prods)},
		CartHandler:    &handlers.CartHandler{Cart: services.NewCartService(f.carts, f.prods)},
		OrderHandler:   &handlers.OrderHandler{Orders: services.NewOrderService(f.carts, f.prods, f.orders, f.gateway)},
		AdminHandler:   &handlers.AdminHandler{AnalyticsSvc: services.NewAnalyticsService(f.users, f.prods, f.orders)},
	}
	f.app = fiber.New()
	handlers.Register(f.app, auth, deps)
	return f
}

// seedUser inserts a user directly and logs in over HTTP for the token.
func (f *fixture) seedUser(t *testing.T, email string, admin bool) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, f.users.Insert(context.Background(), &domain.User{
		ID:        "user-" + email,
		Email:     email,
		Name:      "Test User",
		Hash:      string(hash),
		IsAdmin:   admin,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}))
	status, body := f.do(t, "POST", "/api/auth/login", "", map[string]any{
		"email": email, "password": "password1",
	})
	require.Equal(t, http.StatusOK, status)
	token, _ := body.(map[string]any)["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func (f *fixture) do(t *testing.T, method, path, token string, payload any) (int, any) {
	t.Helper()
	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reqBody)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp.StatusCode, decoded
}

func ring(stock int) domain.Product {
	return domain.Product{
		ID:        "ring-1",
		Name:      "Emerald Halo Ring",
		Category:  "Rings",
		Price:     2499,
		Stock:     stock,
		CreatedAt: "2025-07-01T00:00:00Z",
	}
}

func TestRegisterLoginMe(t *testing.T) {
	f := newFixture(t)

	status, body := f.do(t, "POST", "/api/auth/register", "", map[string]any{
		"email": "maya@example.com", "password": "secret99", "name": "Maya",
	})
	require.Equal(t, http.StatusOK, status)
	resp := body.(map[string]any)
	require.Equal(t, "bearer", resp["token_type"])
	token := resp["access_token"].(string)
	require.NotEmpty(t, token)
	user := resp["user"].(map[string]any)
	require.Equal(t, "maya@example.com", user["email"])
	require.NotContains(t, user, "password")

	// same email again
	status, body = f.do(t, "POST", "/api/auth/register", "", map[string]any{
		"email": "maya@example.com", "password": "secret99", "name": "Maya",
	})
	require.Equal(t, http.StatusConflict, status)
	require.Equal(t, "email already registered", body.(map[string]any)["error"])

	status, _ = f.do(t, "POST", "/api/auth/login", "", map[string]any{
		"email": "maya@example.com", "password": "wrong-pass",
	})
	require.Equal(t, http.StatusUnauthorized, status)

	status, body = f.do(t, "GET", "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "maya@example.com", body.(map[string]any)["email"])

	status, _ = f.do(t, "GET", "/api/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)

	status, _ = f.do(t, "GET", "/api/auth/me", "not-a-jwt", nil)
	require.Equal(t, http.StatusUnauthorized, status)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)

	status, body := f.do(t, "POST", "/api/auth/register", "", map[string]any{
		"email": "not-an-email", "password": "secret99", "name": "Maya",
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "invalid email", body.(map[string]any)["error"])

	status, _ = f.do(t, "POST", "/api/auth/register", "", map[string]any{
		"email": "maya@example.com", "password": "abc", "name": "Maya",
	})
	require.Equal(t, http.StatusBadRequest, status)
}

func TestCatalogReadsArePublic(t *testing.T) {
	f := newFixture(t, ring(5))

	status, body := f.do(t, "GET", "/api/products", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, body.([]any), 1)

	status, body = f.do(t, "GET", "/api/products/ring-1", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Emerald Halo Ring", body.(map[string]any)["name"])

	status, _ = f.do(t, "GET", "/api/products/nope", "", nil)
	require.Equal(t, http.StatusNotFound, status)

	status, body = f.do(t, "GET", "/api/categories", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, []any{"Rings"}, body.([]any))
}

func TestCatalogWritesAreAdminOnly(t *testing.T) {
	f := newFixture(t, ring(5))
	customer := f.seedUser(t, "customer@example.com", false)
	admin := f.seedUser(t, "admin@example.com", true)

	newProduct := map[string]any{
		"name": "Opal Pendant", "description": "Iridescent drop pendant",
		"price": 1899.0, "category": "Necklaces", "image_url": "https://img/opal.jpg", "stock": 7,
	}

	status, _ := f.do(t, "POST", "/api/products", "", newProduct)
	require.Equal(t, http.StatusUnauthorized, status)

	status, body := f.do(t, "POST", "/api/products", customer, newProduct)
	require.Equal(t, http.StatusForbidden, status)
	require.Equal(t, "not authorized", body.(map[string]any)["error"])

	status, _ = f.do(t, "PUT", "/api/products/ring-1", customer, newProduct)
	require.Equal(t, http.StatusForbidden, status)
	status, _ = f.do(t, "DELETE", "/api/products/ring-1", customer, nil)
	require.Equal(t, http.StatusForbidden, status)

	status, body = f.do(t, "POST", "/api/products", admin, newProduct)
	require.Equal(t, http.StatusOK, status)
	createdID := body.(map[string]any)["id"].(string)
	require.NotEmpty(t, createdID)

	status, body = f.do(t, "GET", "/api/products", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, body.([]any), 2)

	update := map[string]any{
		"name": "Emerald Halo Ring", "description": "Resized",
		"price": 2599.0, "category": "Rings", "image_url": "https://img/ring.jpg", "stock": 4,
	}
	status, body = f.do(t, "PUT", "/api/products/ring-1", admin, update)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 2599.0, body.(map[string]any)["price"])

	status, body = f.do(t, "DELETE", "/api/products/"+createdID, admin, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "product deleted successfully", body.(map[string]any)["message"])
	status, _ = f.do(t, "GET", "/api/products/"+createdID, "", nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestCartRequiresAuth(t *testing.T) {
	f := newFixture(t, ring(5))

	for _, tc := range []struct{ method, path string }{
		{"GET", "/api/cart/"},
		{"POST", "/api/cart/add"},
		{"PUT", "/api/cart/update"},
		{"DELETE", "/api/cart/clear"},
	} {
		status, _ := f.do(t, tc.method, tc.path, "", nil)
		require.Equal(t, http.StatusUnauthorized, status, "%s %s", tc.method, tc.path)
	}
}

func TestCartFlow(t *testing.T) {
	f := newFixture(t, ring(5))
	token := f.seedUser(t, "shopper@example.com", false)

	status, body := f.do(t, "GET", "/api/cart/", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, body.(map[string]any)["items"])

	status, _ = f.do(t, "POST", "/api/cart/add", token, map[string]any{"product_id": "ring-1", "quantity": 2})
	require.Equal(t, http.StatusOK, status)

	status, body = f.do(t, "GET", "/api/cart/", token, nil)
	require.Equal(t, http.StatusOK, status)
	items := body.(map[string]any)["items"].([]any)
	require.Len(t, items, 1)
	line := items[0].(map[string]any)
	require.Equal(t, 2.0, line["quantity"])
	require.Equal(t, "Emerald Halo Ring", line["product"].(map[string]any)["name"])

	status, body = f.do(t, "POST", "/api/cart/add", token, map[string]any{"product_id": "missing"})
	require.Equal(t, http.StatusNotFound, status)
	require.Contains(t, body.(map[string]any)["error"], "missing")

	status, _ = f.do(t, "PUT", "/api/cart/update", token, map[string]any{"product_id": "ring-1", "quantity": 0})
	require.Equal(t, http.StatusOK, status)
	status, body = f.do(t, "GET", "/api/cart/", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, body.(map[string]any)["items"])
}

func TestOrderCheckoutAndVerify(t *testing.T) {
	f := newFixture(t, ring(5))
	token := f.seedUser(t, "buyer@example.com", false)

	// empty cart cannot check out
	status, body := f.do(t, "POST", "/api/orders/create", token, map[string]any{})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "cart is empty", body.(map[string]any)["error"])

	status, _ = f.do(t, "POST", "/api/cart/add", token, map[string]any{"product_id": "ring-1", "quantity": 2})
	require.Equal(t, http.StatusOK, status)

	status, body = f.do(t, "POST", "/api/orders/create", token, map[string]any{
		"shipping_address": map[string]string{"city": "Pune", "pin": "411001"},
	})
	require.Equal(t, http.StatusOK, status)
	checkout := body.(map[string]any)
	orderID := checkout["order_id"].(string)
	require.NotEmpty(t, orderID)
	require.NotEmpty(t, checkout["razorpay_order_id"])
	require.Equal(t, 4998.0, checkout["amount"])
	require.Equal(t, "INR", checkout["currency"])
	require.Equal(t, "rzp_test_key", checkout["key_id"])
	require.Equal(t, []int64{499800}, f.gateway.CreatedAmounts())

	status, body = f.do(t, "POST", "/api/orders/verify-payment", token, map[string]any{
		"razorpay_order_id":   checkout["razorpay_order_id"],
		"razorpay_payment_id": "pay_001",
		"razorpay_signature":  "valid-signature",
		"order_id":            orderID,
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "payment verified successfully", body.(map[string]any)["message"])

	status, body = f.do(t, "GET", "/api/orders/"+orderID, token, nil)
	require.Equal(t, http.StatusOK, status)
	got := body.(map[string]any)
	require.Equal(t, "confirmed", got["status"])
	require.Equal(t, "completed", got["payment_status"])

	// stock moved, cart gone
	status, body = f.do(t, "GET", "/api/products/ring-1", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 3.0, body.(map[string]any)["stock"])
	status, body = f.do(t, "GET", "/api/cart/", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, body.(map[string]any)["items"])
}

func TestVerifyPaymentRejectsBadSignature(t *testing.T) {
	f := newFixture(t, ring(5))
	token := f.seedUser(t, "buyer@example.com", false)
	_, _ = f.do(t, "POST", "/api/cart/add", token, map[string]any{"product_id": "ring-1", "quantity": 1})
	status, body := f.do(t, "POST", "/api/orders/create", token, map[string]any{})
	require.Equal(t, http.StatusOK, status)
	checkout := body.(map[string]any)

	status, body = f.do(t, "POST", "/api/orders/verify-payment", token, map[string]any{
		"razorpay_order_id":   checkout["razorpay_order_id"],
		"razorpay_payment_id": "pay_001",
		"razorpay_signature":  "tampered",
		"order_id":            checkout["order_id"],
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "payment verification failed", body.(map[string]any)["error"])

	status, body = f.do(t, "GET", "/api/orders/"+checkout["order_id"].(string), token, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "failed", body.(map[string]any)["payment_status"])
}

func TestOrderVisibility(t *testing.T) {
	f := newFixture(t, ring(10))
	buyer := f.seedUser(t, "buyer@example.com", false)
	other := f.seedUser(t, "other@example.com", false)
	admin := f.seedUser(t, "admin@example.com", true)

	_, _ = f.do(t, "POST", "/api/cart/add", buyer, map[string]any{"product_id": "ring-1", "quantity": 1})
	status, body := f.do(t, "POST", "/api/orders/create", buyer, map[string]any{})
	require.Equal(t, http.StatusOK, status)
	orderID := body.(map[string]any)["order_id"].(string)

	status, _ = f.do(t, "GET", "/api/orders/"+orderID, other, nil)
	require.Equal(t, http.StatusForbidden, status)
	status, _ = f.do(t, "GET", "/api/orders/"+orderID, admin, nil)
	require.Equal(t, http.StatusOK, status)

	status, body = f.do(t, "GET", "/api/orders/", other, nil)
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, body)
	status, body = f.do(t, "GET", "/api/orders/", admin, nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, body.([]any), 1)
}

func TestOrderStatusUpdateIsAdminOnly(t *testing.T) {
	f := newFixture(t, ring(10))
	buyer := f.seedUser(t, "buyer@example.com", false)
	admin := f.seedUser(t, "admin@example.com", true)

	_, _ = f.do(t, "POST", "/api/cart/add", buyer, map[string]any{"product_id": "ring-1", "quantity": 1})
	status, body := f.do(t, "POST", "/api/orders/create", buyer, map[string]any{})
	require.Equal(t, http.StatusOK, status)
	orderID := body.(map[string]any)["order_id"].(string)

	status, _ = f.do(t, "PUT", fmt.Sprintf("/api/orders/%s/status?status=shipped", orderID), buyer, nil)
	require.Equal(t, http.StatusForbidden, status)

	status, _ = f.do(t, "PUT", fmt.Sprintf("/api/orders/%s/status?status=shipped", orderID), admin, nil)
	require.Equal(t, http.StatusOK, status)
	status, body = f.do(t, "GET", "/api/orders/"+orderID, admin, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "shipped", body.(map[string]any)["status"])

	status, _ = f.do(t, "PUT", "/api/orders/ghost/status?status=shipped", admin, nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestAnalyticsIsAdminOnly(t *testing.T) {
	f := newFixture(t, ring(10))
	customer := f.seedUser(t, "customer@example.com", false)
	admin := f.seedUser(t, "admin@example.com", true)

	status, _ := f.do(t, "GET", "/api/admin/analytics", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)
	status, _ = f.do(t, "GET", "/api/admin/analytics", customer, nil)
	require.Equal(t, http.StatusForbidden, status)

	status, body := f.do(t, "GET", "/api/admin/analytics", admin, nil)
	require.Equal(t, http.StatusOK, status)
	report := body.(map[string]any)
	require.Equal(t, 1.0, report["total_products"])
	require.Equal(t, 1.0, report["total_users"], "admins are not customers")
	require.Contains(t, report, "category_sales")
}
