package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"pasar/internal/handlers"
	"pasar/internal/middleware"
	"pasar/internal/models"
	"pasar/internal/repositories"
	"pasar/internal/services"
	"pasar/pkg/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBCounter int64

// setupApp builds the full Fiber app on an in-memory SQLite database with
// one seeded category, mirroring the production wiring minus the broker.
func setupApp(t *testing.T) (*fiber.App, *models.Category) {
	t.Helper()

	viper.SetDefault("JWT_SECRET", "test_jwt_secret")
	viper.AutomaticEnv()
	jwtSecret := viper.GetString("JWT_SECRET")

	// A distinct shared-cache DSN per test keeps GORM's pool on one
	// database without leaking state between tests.
	dsn := fmt.Sprintf("file:pasar_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	)
	assert.NoError(t, err)

	store, err := storage.New(storage.Config{Driver: "local", LocalPath: t.TempDir()})
	assert.NoError(t, err)

	userRepo := repositories.NewGORMUserRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	authService := services.NewAuthService(userRepo, jwtSecret)
	catalogService := services.NewCatalogService(productRepo, categoryRepo)
	productService := services.NewProductService(productRepo, orderRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	orderService := services.NewOrderService(orderRepo, cartRepo, nil)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")

	handlers.NewCatalogHandler(catalogService).RegisterRoutes(apiV1)
	authHandler := handlers.NewAuthHandler(authService, store)
	authHandler.RegisterRoutes(apiV1)

	protected := apiV1.Group("", middleware.AuthRequired(authService))
	authHandler.RegisterProtectedRoutes(protected)
	handlers.NewCartHandler(cartService).RegisterRoutes(protected)
	handlers.NewOrderHandler(orderService).RegisterRoutes(protected)

	vendor := protected.Group("", middleware.VendorOnly())
	handlers.NewProductHandler(productService, store).RegisterRoutes(vendor)

	category := &models.Category{Name: "Components", Slug: "components"}
	assert.NoError(t, categoryRepo.Create(category))

	return app, category
}

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	if len(raw) > 0 && raw[0] == '{' {
		assert.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func registerVendor(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/register-vendor", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
		"phone":    "081234567890",
		"address":  "Jl. Gatot Subroto 10",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	token, _ := body["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

func registerBuyer(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	token, _ := body["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

func createProduct(t *testing.T, app *fiber.App, token, categoryID, name string, price float64, stock int) map[string]interface{} {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/vendor/products", token, map[string]interface{}{
		"category_id": categoryID,
		"name":        name,
		"description": "Integration test item",
		"price":       price,
		"stock":       stock,
		"is_active":   true,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, body["id"])
	return body
}

func TestShoppingFlow(t *testing.T) {
	app, category := setupApp(t)

	vendorToken := registerVendor(t, app, "techparts_store")
	product := createProduct(t, app, vendorToken, category.ID, "Ryzen 7 CPU", 300, 10)
	assert.Equal(t, "ryzen-7-cpu", product["slug"])

	// Public browsing: search finds the new product, detail works by slug
	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/products?search=ryzen", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, detail := doJSON(t, app, http.MethodGet, "/api/v1/products/ryzen-7-cpu", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotNil(t, detail["product"])

	buyerToken := registerBuyer(t, app, "budi_buyer")

	// Two adds collapse into one row with quantity 2
	resp, item := doJSON(t, app, http.MethodPost, "/api/v1/cart/items", buyerToken, map[string]string{
		"product_id": product["id"].(string),
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, item = doJSON(t, app, http.MethodPost, "/api/v1/cart/items", buyerToken, map[string]string{
		"product_id": product["id"].(string),
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(2), item["quantity"])

	// Bump to 3, then check the total
	resp, item = doJSON(t, app, http.MethodPut, "/api/v1/cart/items/"+item["id"].(string), buyerToken, map[string]int{
		"quantity": 3,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, cart := doJSON(t, app, http.MethodGet, "/api/v1/cart", buyerToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 900.0, cart["total"])

	// Checkout snapshots the cart into an immutable order
	resp, order := doJSON(t, app, http.MethodPost, "/api/v1/checkout", buyerToken, map[string]string{
		"address": "Jl. Sudirman 42",
		"city":    "Jakarta",
		"zip":     "10110",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 900.0, order["total_amount"])
	assert.Equal(t, "pending", order["status"])
	assert.NotEmpty(t, order["order_number"])
	items := order["items"].([]interface{})
	assert.Len(t, items, 1)
	line := items[0].(map[string]interface{})
	assert.Equal(t, float64(3), line["quantity"])
	assert.Equal(t, 300.0, line["price"])

	// The cart is empty afterwards
	resp, cart = doJSON(t, app, http.MethodGet, "/api/v1/cart", buyerToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0.0, cart["total"])

	// Order history shows the order; a second checkout fails on empty cart
	resp, fetched := doJSON(t, app, http.MethodGet, "/api/v1/orders/"+order["id"].(string), buyerToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, order["order_number"], fetched["order_number"])
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/checkout", buyerToken, map[string]string{
		"address": "Jl. Sudirman 42",
		"city":    "Jakarta",
		"zip":     "10110",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// The recent feed resolves as its own route, not as an order ID
	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/orders/recent", buyerToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The vendor dashboard reflects the sale
	resp, dashboard := doJSON(t, app, http.MethodGet, "/api/v1/vendor/dashboard", vendorToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), dashboard["total_orders"])
	assert.Equal(t, 300.0, dashboard["total_revenue"])
	assert.Equal(t, float64(1), dashboard["total_products"])
}

func TestOutOfStockRejected(t *testing.T) {
	app, category := setupApp(t)

	vendorToken := registerVendor(t, app, "empty_shelf_store")
	product := createProduct(t, app, vendorToken, category.ID, "Sold Out GPU", 999, 0)

	buyerToken := registerBuyer(t, app, "eager_buyer")
	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/cart/items", buyerToken, map[string]string{
		"product_id": product["id"].(string),
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestDeletedProductNameReusable(t *testing.T) {
	app, category := setupApp(t)

	vendorToken := registerVendor(t, app, "recycling_store")
	product := createProduct(t, app, vendorToken, category.ID, "RTX 4090 Founders", 95999, 5)
	assert.Equal(t, "rtx-4090-founders", product["slug"])

	resp, _ := doJSON(t, app, http.MethodDelete, "/api/v1/vendor/products/"+product["id"].(string), vendorToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Gone from the public catalog
	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/products/rtx-4090-founders", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// The freed name can be listed again and gets its original slug back
	recreated := createProduct(t, app, vendorToken, category.ID, "RTX 4090 Founders", 89999, 3)
	assert.Equal(t, "rtx-4090-founders", recreated["slug"])
	assert.NotEqual(t, product["id"], recreated["id"])
}

func TestVendorRoutesRequireVendorRole(t *testing.T) {
	app, category := setupApp(t)

	buyerToken := registerBuyer(t, app, "plain_buyer")

	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/vendor/dashboard", buyerToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/vendor/products", buyerToken, map[string]interface{}{
		"category_id": category.ID,
		"name":        "Smuggled Item",
		"price":       1.0,
		"stock":       1,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	app, _ := setupApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/checkout", "", map[string]string{
		"address": "x", "city": "y", "zip": "z",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Public catalog stays open
	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/home", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDuplicateRegistrationRejected(t *testing.T) {
	app, _ := setupApp(t)

	registerBuyer(t, app, "dupe_user")

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "dupe_user",
		"email":    "other@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Wrong password on login
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "dupe_user",
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProfileUpdate(t *testing.T) {
	app, _ := setupApp(t)

	token := registerBuyer(t, app, "profile_user")

	resp, body := doJSON(t, app, http.MethodPut, "/api/v1/profile", token, map[string]string{
		"first_name": "Budi",
		"last_name":  "Santoso",
		"phone":      "081234567890",
		"address":    "Jl. Merdeka 1",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "Budi", user["first_name"])

	resp, profile := doJSON(t, app, http.MethodGet, "/api/v1/profile", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Santoso", profile["last_name"])
	assert.Equal(t, "buyer", profile["role"])
}
