package handlers

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"pasar/internal/middleware"
	"pasar/internal/models"
	"pasar/internal/services"
	"pasar/pkg/storage"
)

// ProductHandler handles vendor-side product management and the dashboard.
// All routes registered here sit behind the vendor role gate.
type ProductHandler struct {
	productService *services.ProductService
	store          storage.Storage
	validate       *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService *services.ProductService, store storage.Storage) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		store:          store,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the vendor routes.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	vendorRoutes := router.Group("/vendor")
	vendorRoutes.Get("/dashboard", h.HandleDashboard)
	vendorRoutes.Post("/products", h.HandleCreateProduct)
	vendorRoutes.Put("/products/:id", h.HandleUpdateProduct)
	vendorRoutes.Delete("/products/:id", h.HandleDeleteProduct)
	vendorRoutes.Put("/products/:id/image", h.HandleUploadProductImage)
}

// CreateProductRequest is the product creation payload.
type CreateProductRequest struct {
	CategoryID  string  `json:"category_id" validate:"required"`
	Name        string  `json:"name" validate:"required,min=3,max=200"`
	Description string  `json:"description" validate:"omitempty,max=2000"`
	Price       float64 `json:"price" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	IsActive    bool    `json:"is_active"`
}

// HandleCreateProduct creates a product owned by the calling vendor.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationJSON(c, err)
	}

	product := &models.Product{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		IsActive:    req.IsActive,
	}
	if err := h.productService.CreateProduct(middleware.UserID(c), product); err != nil {
		log.Printf("error creating product: %v", err)
		return errorJSON(c, err, "Could not create product")
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct edits a product the calling vendor owns.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var upd services.ProductUpdate
	if err := c.BodyParser(&upd); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(upd); err != nil {
		return validationJSON(c, err)
	}

	product, err := h.productService.UpdateProduct(middleware.UserID(c), c.Params("id"), upd)
	if err != nil {
		return errorJSON(c, err, "Could not update product")
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product the calling vendor owns.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.productService.DeleteProduct(middleware.UserID(c), c.Params("id")); err != nil {
		return errorJSON(c, err, "Could not delete product")
	}
	return c.JSON(fiber.Map{
		"message": "Product deleted successfully",
	})
}

// HandleUploadProductImage stores an uploaded product image and records its
// storage key on the product.
func (h *ProductHandler) HandleUploadProductImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "An 'image' file field is required",
			"error":   err.Error(),
		})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not read uploaded file",
			"error":   err.Error(),
		})
	}
	defer f.Close()

	productID := c.Params("id")
	key := fmt.Sprintf("products/%s%s", productID, filepath.Ext(fileHeader.Filename))
	if err := h.store.Put(key, f); err != nil {
		log.Printf("failed to store product image for %s: %v", productID, err)
		return errorJSON(c, err, "Could not store image")
	}

	product, err := h.productService.SetProductImage(middleware.UserID(c), productID, key)
	if err != nil {
		return errorJSON(c, err, "Could not update product image")
	}
	return c.JSON(fiber.Map{
		"message": "Product image updated",
		"product": product,
		"url":     h.store.URL(key),
	})
}

// HandleDashboard returns the vendor's products, recent sold items and
// sales aggregates.
func (h *ProductHandler) HandleDashboard(c *fiber.Ctx) error {
	dashboard, err := h.productService.Dashboard(middleware.UserID(c))
	if err != nil {
		log.Printf("error building vendor dashboard: %v", err)
		return errorJSON(c, err, "Could not load dashboard")
	}
	return c.JSON(dashboard)
}
