package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"MonoStore/internal/app"
	"MonoStore/internal/auth"
	"MonoStore/internal/cart"
	"MonoStore/internal/catalog"
	"MonoStore/internal/config"
	"MonoStore/internal/order"
)

const jwtSecret = "test-secret"

func newTestAPI(t *testing.T) (*httptest.Server, auth.UserStore) {
	t.Helper()

	cfg := &config.Config{
		Env: "test",
		JWT: config.JWTConfig{Secret: jwtSecret, TokenTTL: 15 * time.Minute},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"http://localhost:5173"},
		},
	}

	users := auth.NewMemStore()
	products := catalog.NewMemStore()

	h := app.NewHandler(app.Deps{
		Log:     zap.NewNop(),
		Config:  cfg,
		Users:   users,
		JWT:     auth.NewTokenMaker(jwtSecret),
		Catalog: products,
		Carts:   cart.NewStore(products),
		Orders:  order.NewMemStore(),
	})

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts, users
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, url, r)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed), "body: %s", raw)
	}
	return resp, parsed
}

func registerUser(t *testing.T, ts *httptest.Server, username, email string) string {
	t.Helper()

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/users/register", "", map[string]any{
		"username": username,
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	tok, _ := body["token"].(string)
	require.NotEmpty(t, tok)
	return tok
}

func adminToken(t *testing.T, ts *httptest.Server, users auth.UserStore) string {
	t.Helper()

	_, err := users.Create(context.Background(), "admin", "admin@example.com", "adminpass", auth.RoleAdmin)
	require.NoError(t, err)

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/users/login", "", map[string]any{
		"email":    "admin@example.com",
		"password": "adminpass",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	tok, _ := body["token"].(string)
	require.NotEmpty(t, tok)
	return tok
}

func TestIndexAndNotFound(t *testing.T) {
	ts, _ := newTestAPI(t)

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "E-commerce API is running", body["message"])

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Not Found", body["error"])
}

func TestCart_RequiresAuth(t *testing.T) {
	ts, _ := newTestAPI(t)

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/api/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.NotContains(t, body, "cart")
}

func TestProducts_AdminOnlyWrites(t *testing.T) {
	ts, users := newTestAPI(t)

	product := map[string]any{
		"name":        "Mechanical Keyboard",
		"description": "Tactile switches, aluminium frame",
		"price":       149.99,
		"category":    "electronics",
		"stock":       10,
	}

	customer := registerUser(t, ts, "johndoe", "john@example.com")
	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/products", customer, product)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	admin := adminToken(t, ts, users)
	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/products", admin, product)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Product created successfully", body["message"])

	created := body["product"].(map[string]any)
	id := created["id"].(string)
	require.NotEmpty(t, id)

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/api/products/"+id, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Mechanical Keyboard", body["product"].(map[string]any)["name"])

	resp, body = doJSON(t, http.MethodDelete, ts.URL+"/api/products/"+id, admin, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Product deleted successfully", body["message"])
}

func TestProducts_ValidationError(t *testing.T) {
	ts, users := newTestAPI(t)
	admin := adminToken(t, ts, users)

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/products", admin, map[string]any{
		"name":        "ab",
		"description": "too short",
		"price":       -5,
		"category":    "x",
		"stock":       -1,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Validation Error", body["error"])
	assert.NotEmpty(t, body["details"])
}

func TestProducts_ListFilterAndSort(t *testing.T) {
	ts, _ := newTestAPI(t)

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/api/products?category=electronics&sort=price-asc", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	products := body["products"].([]any)
	require.Len(t, products, 3)

	prev := -1.0
	for _, p := range products {
		m := p.(map[string]any)
		assert.Equal(t, "electronics", m["category"])
		price := m["price"].(float64)
		assert.GreaterOrEqual(t, price, prev)
		prev = price
	}
}

func TestShoppingFlow(t *testing.T) {
	ts, _ := newTestAPI(t)
	tok := registerUser(t, ts, "johndoe", "john@example.com")

	// empty cart checkout fails before anything is in it
	orderBody := map[string]any{
		"shippingAddress": map[string]any{
			"street": "1 Main St", "city": "Springfield", "state": "IL", "zip": "62701", "country": "US",
		},
		"paymentMethod": "card",
	}
	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/orders", tok, orderBody)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Cart is empty", body["error"])

	// add two headphones at 299.99
	resp, body = doJSON(t, http.MethodPost, ts.URL+"/api/cart/items", tok, map[string]any{
		"productId": "1",
		"quantity":  2,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Item added to cart", body["message"])

	c := body["cart"].(map[string]any)
	assert.Len(t, c["items"].([]any), 1)
	assert.InDelta(t, 599.98, c["total"].(float64), 1e-9)

	// quantity above stock is rejected, cart untouched
	resp, body = doJSON(t, http.MethodPost, ts.URL+"/api/cart/items", tok, map[string]any{
		"productId": "3",
		"quantity":  100,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Not enough stock available", body["error"])

	// checkout succeeds and clears the cart
	resp, body = doJSON(t, http.MethodPost, ts.URL+"/api/orders", tok, orderBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Order created successfully", body["message"])
	orderID := body["orderId"].(string)
	require.NotEmpty(t, orderID)

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/api/cart", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	c = body["cart"].(map[string]any)
	assert.Empty(t, c["items"])
	assert.Zero(t, c["total"].(float64))

	// the order is listed and matches the pre-checkout cart
	resp, body = doJSON(t, http.MethodGet, ts.URL+"/api/orders", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	orders := body["orders"].([]any)
	require.Len(t, orders, 1)
	o := orders[0].(map[string]any)
	assert.Equal(t, orderID, o["id"])
	assert.Equal(t, "pending", o["status"])
	assert.InDelta(t, 599.98, o["total"].(float64), 1e-9)

	// a different user cannot read it
	other := registerUser(t, ts, "janedoe", "jane@example.com")
	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/api/orders/"+orderID, other, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ts, _ := newTestAPI(t)
	registerUser(t, ts, "johndoe", "john@example.com")

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/users/register", "", map[string]any{
		"username": "johnny",
		"email":    "john@example.com",
		"password": "password456",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Email already in use", body["error"])
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ts, _ := newTestAPI(t)
	registerUser(t, ts, "johndoe", "john@example.com")

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/users/login", "", map[string]any{
		"email":    "john@example.com",
		"password": "wrongpass",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid credentials", body["error"])
}

func TestProfile(t *testing.T) {
	ts, _ := newTestAPI(t)
	tok := registerUser(t, ts, "johndoe", "john@example.com")

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/api/users/profile", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	u := body["user"].(map[string]any)
	assert.Equal(t, "johndoe", u["username"])
	assert.Equal(t, "john@example.com", u["email"])
	assert.Equal(t, "customer", u["role"])
	assert.NotContains(t, u, "password")
	assert.NotContains(t, u, "hash")
}

func TestLogout(t *testing.T) {
	ts, _ := newTestAPI(t)

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/users/logout", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Logged out successfully", body["message"])
}

func TestCORS_Preflight(t *testing.T) {
	ts, _ := newTestAPI(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/products", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
}
