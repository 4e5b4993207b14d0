package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"pasar/internal/services"
)

// CatalogHandler handles public catalog browsing.
type CatalogHandler struct {
	catalogService *services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// RegisterRoutes registers the public catalog routes.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/home", h.HandleHome)
	router.Get("/categories", h.HandleListCategories)
	router.Get("/products", h.HandleListProducts)
	router.Get("/products/:slug", h.HandleGetProduct)
}

// HandleHome returns the landing feed: featured products and categories.
func (h *CatalogHandler) HandleHome(c *fiber.Ctx) error {
	feed, err := h.catalogService.Home()
	if err != nil {
		log.Printf("error building home feed: %v", err)
		return errorJSON(c, err, "Could not load home feed")
	}
	return c.JSON(feed)
}

// HandleListCategories returns all categories.
func (h *CatalogHandler) HandleListCategories(c *fiber.Ctx) error {
	categories, err := h.catalogService.ListCategories()
	if err != nil {
		log.Printf("error listing categories: %v", err)
		return errorJSON(c, err, "Could not retrieve categories")
	}
	return c.JSON(categories)
}

// HandleListProducts returns active products, filtered by the optional
// search and category query parameters.
func (h *CatalogHandler) HandleListProducts(c *fiber.Ctx) error {
	products, err := h.catalogService.ListProducts(c.Query("search"), c.Query("category"))
	if err != nil {
		log.Printf("error listing products: %v", err)
		return errorJSON(c, err, "Could not retrieve products")
	}
	return c.JSON(products)
}

// HandleGetProduct returns a product by slug together with up to four
// related products from the same category.
func (h *CatalogHandler) HandleGetProduct(c *fiber.Ctx) error {
	slug := c.Params("slug")
	product, related, err := h.catalogService.GetProductBySlug(slug)
	if err != nil {
		return errorJSON(c, err, "Could not retrieve product")
	}
	return c.JSON(fiber.Map{
		"product":          product,
		"related_products": related,
	})
}
