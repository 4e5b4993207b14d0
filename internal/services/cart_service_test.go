package services_test

import (
	"testing"

	"pasar/internal/models"
	"pasar/internal/repositories"
	"pasar/internal/services"

	"github.com/stretchr/testify/assert"
)

func seedProduct(t *testing.T, repo *repositories.MockProductRepository, name string, price float64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		VendorID:   "vendor-1",
		CategoryID: "cat-1",
		Name:       name,
		Price:      price,
		Stock:      stock,
		IsActive:   true,
	}
	assert.NoError(t, repo.Create(product))
	return product
}

func TestCartService_AddToCart(t *testing.T) {
	productRepo := repositories.NewMockProductRepository()
	cartRepo := repositories.NewMockCartRepository()
	cartService := services.NewCartService(cartRepo, productRepo)

	product := seedProduct(t, productRepo, "Mechanical Keyboard", 100, 5)

	// First add creates the row with quantity 1
	item, err := cartService.AddToCart("buyer-1", product.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)
	assert.NotNil(t, item.Product)

	// Repeated adds bump the quantity of the same row
	item, err = cartService.AddToCart("buyer-1", product.ID)
	assert.NoError(t, err)
	item, err = cartService.AddToCart("buyer-1", product.ID)
	assert.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)

	items, total, err := cartService.GetCart("buyer-1")
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 300.0, total)

	// Another buyer's cart is untouched
	items, _, err = cartService.GetCart("buyer-2")
	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartService_AddToCart_OutOfStock(t *testing.T) {
	productRepo := repositories.NewMockProductRepository()
	cartRepo := repositories.NewMockCartRepository()
	cartService := services.NewCartService(cartRepo, productRepo)

	product := seedProduct(t, productRepo, "Sold Out GPU", 999, 0)

	_, err := cartService.AddToCart("buyer-1", product.ID)
	assert.ErrorIs(t, err, services.ErrOutOfStock)

	items, _, err := cartService.GetCart("buyer-1")
	assert.NoError(t, err)
	assert.Empty(t, items)

	// Unknown products surface as not found, not out of stock
	_, err = cartService.AddToCart("buyer-1", "no-such-product")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestCartService_SetQuantity(t *testing.T) {
	productRepo := repositories.NewMockProductRepository()
	cartRepo := repositories.NewMockCartRepository()
	cartService := services.NewCartService(cartRepo, productRepo)

	product := seedProduct(t, productRepo, "SSD 1TB", 50, 10)
	item, err := cartService.AddToCart("buyer-1", product.ID)
	assert.NoError(t, err)

	updated, err := cartService.SetQuantity("buyer-1", item.ID, 4)
	assert.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)

	// Zero and negative quantities are ignored, the row keeps its value
	updated, err = cartService.SetQuantity("buyer-1", item.ID, 0)
	assert.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)
	updated, err = cartService.SetQuantity("buyer-1", item.ID, -3)
	assert.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)

	// Someone else's cart item behaves like a missing one
	_, err = cartService.SetQuantity("buyer-2", item.ID, 2)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestCartService_RemoveItem(t *testing.T) {
	productRepo := repositories.NewMockProductRepository()
	cartRepo := repositories.NewMockCartRepository()
	cartService := services.NewCartService(cartRepo, productRepo)

	product := seedProduct(t, productRepo, "CPU Cooler", 35, 8)
	item, err := cartService.AddToCart("buyer-1", product.ID)
	assert.NoError(t, err)

	// Ownership is enforced before anything is deleted
	err = cartService.RemoveItem("buyer-2", item.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	assert.NoError(t, cartService.RemoveItem("buyer-1", item.ID))
	items, total, err := cartService.GetCart("buyer-1")
	assert.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, 0.0, total)
}
