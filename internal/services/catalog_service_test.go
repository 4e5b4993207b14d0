package services_test

import (
	"fmt"
	"testing"

	"pasar/internal/models"
	"pasar/internal/repositories"
	"pasar/internal/services"

	"github.com/stretchr/testify/assert"
)

func seedCatalog(t *testing.T) (*repositories.MockProductRepository, *repositories.MockCategoryRepository) {
	t.Helper()
	productRepo := repositories.NewMockProductRepository()
	categoryRepo := repositories.NewMockCategoryRepository()

	keyboards := &models.Category{Name: "Keyboards", Slug: "keyboards"}
	storage := &models.Category{Name: "Storage", Slug: "storage"}
	assert.NoError(t, categoryRepo.Create(keyboards))
	assert.NoError(t, categoryRepo.Create(storage))

	products := []*models.Product{
		{Name: "Mechanical Keyboard", Slug: "mechanical-keyboard", Description: "Clicky switches", Price: 100, Stock: 5, IsActive: true, CategoryID: keyboards.ID, Category: keyboards, VendorID: "vendor-1"},
		{Name: "Wireless Keyboard", Slug: "wireless-keyboard", Description: "Low profile", Price: 60, Stock: 5, IsActive: true, CategoryID: keyboards.ID, Category: keyboards, VendorID: "vendor-1"},
		{Name: "SSD 1TB", Slug: "ssd-1tb", Description: "NVMe drive", Price: 90, Stock: 5, IsActive: true, CategoryID: storage.ID, Category: storage, VendorID: "vendor-2"},
		{Name: "Hidden Keyboard", Slug: "hidden-keyboard", Description: "Not for sale", Price: 10, Stock: 5, IsActive: false, CategoryID: keyboards.ID, Category: keyboards, VendorID: "vendor-1"},
	}
	for _, p := range products {
		assert.NoError(t, productRepo.Create(p))
	}
	return productRepo, categoryRepo
}

func TestCatalogService_ListProducts(t *testing.T) {
	productRepo, categoryRepo := seedCatalog(t)
	catalogService := services.NewCatalogService(productRepo, categoryRepo)

	// No filter: every active product, never the inactive one
	all, err := catalogService.ListProducts("", "")
	assert.NoError(t, err)
	assert.Len(t, all, 3)
	for _, p := range all {
		assert.True(t, p.IsActive)
	}

	// Search matches name and description, case-insensitively
	hits, err := catalogService.ListProducts("KEYBOARD", "")
	assert.NoError(t, err)
	assert.Len(t, hits, 2)
	hits, err = catalogService.ListProducts("nvme", "")
	assert.NoError(t, err)
	assert.Len(t, hits, 1)
	assert.Equal(t, "ssd-1tb", hits[0].Slug)

	// Category filter by slug
	hits, err = catalogService.ListProducts("", "storage")
	assert.NoError(t, err)
	assert.Len(t, hits, 1)

	// Both filters combine
	hits, err = catalogService.ListProducts("keyboard", "storage")
	assert.NoError(t, err)
	assert.Empty(t, hits)
}

func TestCatalogService_GetProductBySlug(t *testing.T) {
	productRepo, categoryRepo := seedCatalog(t)
	catalogService := services.NewCatalogService(productRepo, categoryRepo)

	product, related, err := catalogService.GetProductBySlug("mechanical-keyboard")
	assert.NoError(t, err)
	assert.Equal(t, "Mechanical Keyboard", product.Name)

	// Related products share the category and exclude the product itself
	assert.Len(t, related, 1)
	assert.Equal(t, "wireless-keyboard", related[0].Slug)

	_, _, err = catalogService.GetProductBySlug("no-such-slug")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestCatalogService_RelatedProductsCapped(t *testing.T) {
	productRepo := repositories.NewMockProductRepository()
	categoryRepo := repositories.NewMockCategoryRepository()
	catalogService := services.NewCatalogService(productRepo, categoryRepo)

	category := &models.Category{Name: "Fans", Slug: "fans"}
	assert.NoError(t, categoryRepo.Create(category))
	for i := 0; i < 7; i++ {
		p := &models.Product{
			Name:       fmt.Sprintf("Case Fan %d", i),
			Slug:       fmt.Sprintf("case-fan-%d", i),
			Price:      10,
			Stock:      5,
			IsActive:   true,
			CategoryID: category.ID,
			Category:   category,
			VendorID:   "vendor-1",
		}
		assert.NoError(t, productRepo.Create(p))
	}

	_, related, err := catalogService.GetProductBySlug("case-fan-0")
	assert.NoError(t, err)
	assert.Len(t, related, 4)
	for _, p := range related {
		assert.NotEqual(t, "case-fan-0", p.Slug)
	}
}

func TestCatalogService_Home(t *testing.T) {
	productRepo := repositories.NewMockProductRepository()
	categoryRepo := repositories.NewMockCategoryRepository()
	catalogService := services.NewCatalogService(productRepo, categoryRepo)

	for i := 0; i < 9; i++ {
		assert.NoError(t, categoryRepo.Create(&models.Category{
			Name: fmt.Sprintf("Category %d", i),
			Slug: fmt.Sprintf("category-%d", i),
		}))
	}
	for i := 0; i < 12; i++ {
		assert.NoError(t, productRepo.Create(&models.Product{
			Name:       fmt.Sprintf("Product %d", i),
			Slug:       fmt.Sprintf("product-%d", i),
			Price:      10,
			Stock:      5,
			IsActive:   true,
			CategoryID: "cat-1",
			VendorID:   "vendor-1",
		}))
	}

	feed, err := catalogService.Home()
	assert.NoError(t, err)
	assert.Len(t, feed.FeaturedProducts, 8)
	assert.Len(t, feed.Categories, 6)
}
