package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"pasar/internal/middleware"
	"pasar/internal/services"
)

// CartHandler handles the authenticated caller's shopping cart.
type CartHandler struct {
	cartService *services.CartService
	validate    *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the cart routes.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Put("/items/:id", h.HandleSetQuantity)
	cartRoutes.Delete("/items/:id", h.HandleRemoveItem)
}

// HandleGetCart returns the cart items and their total at current prices.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	items, total, err := h.cartService.GetCart(middleware.UserID(c))
	if err != nil {
		log.Printf("error loading cart: %v", err)
		return errorJSON(c, err, "Could not load cart")
	}
	return c.JSON(fiber.Map{
		"items": items,
		"total": total,
	})
}

// AddItemRequest is the add-to-cart payload.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// HandleAddItem puts one unit of a product into the cart, bumping the
// quantity when the product is already there.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationJSON(c, err)
	}

	item, err := h.cartService.AddToCart(middleware.UserID(c), req.ProductID)
	if err != nil {
		return errorJSON(c, err, "Could not add to cart")
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// SetQuantityRequest is the quantity update payload.
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// HandleSetQuantity changes a cart item's quantity. Zero or negative
// quantities are ignored and the item is returned unchanged.
func (h *CartHandler) HandleSetQuantity(c *fiber.Ctx) error {
	var req SetQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	item, err := h.cartService.SetQuantity(middleware.UserID(c), c.Params("id"), req.Quantity)
	if err != nil {
		return errorJSON(c, err, "Could not update cart item")
	}
	return c.JSON(item)
}

// HandleRemoveItem deletes a cart item the caller owns.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	if err := h.cartService.RemoveItem(middleware.UserID(c), c.Params("id")); err != nil {
		return errorJSON(c, err, "Could not remove cart item")
	}
	return c.JSON(fiber.Map{
		"message": "Item removed from cart",
	})
}
