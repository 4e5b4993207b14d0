package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"pasar/internal/middleware"
	"pasar/internal/services"
)

// OrderHandler handles checkout and order history for the authenticated
// caller. Orders are immutable once placed; there is no update surface.
type OrderHandler struct {
	orderService *services.OrderService
	validate     *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the checkout and order routes.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/checkout", h.HandleCheckout)
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleListOrders)
	// Registered before the :id route so "recent" is never read as an ID.
	orderRoutes.Get("/recent", h.HandleRecentOrders)
	orderRoutes.Get("/:id", h.HandleGetOrder)
}

// HandleCheckout converts the caller's cart into an order.
func (h *OrderHandler) HandleCheckout(c *fiber.Ctx) error {
	var shipping services.ShippingDetails
	if err := c.BodyParser(&shipping); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(shipping); err != nil {
		return validationJSON(c, err)
	}

	order, err := h.orderService.Checkout(middleware.UserID(c), shipping)
	if err != nil {
		log.Printf("checkout failed for user %s: %v", middleware.UserID(c), err)
		return errorJSON(c, err, "Checkout failed")
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleListOrders returns the caller's orders, newest first.
func (h *OrderHandler) HandleListOrders(c *fiber.Ctx) error {
	orders, err := h.orderService.ListOrders(middleware.UserID(c))
	if err != nil {
		log.Printf("error listing orders: %v", err)
		return errorJSON(c, err, "Could not retrieve orders")
	}
	return c.JSON(orders)
}

// HandleRecentOrders returns the caller's five most recent orders.
func (h *OrderHandler) HandleRecentOrders(c *fiber.Ctx) error {
	orders, err := h.orderService.RecentOrders(middleware.UserID(c))
	if err != nil {
		log.Printf("error listing recent orders: %v", err)
		return errorJSON(c, err, "Could not retrieve recent orders")
	}
	return c.JSON(orders)
}

// HandleGetOrder returns one of the caller's orders with its items.
func (h *OrderHandler) HandleGetOrder(c *fiber.Ctx) error {
	order, err := h.orderService.GetOrder(middleware.UserID(c), c.Params("id"))
	if err != nil {
		return errorJSON(c, err, "Could not retrieve order")
	}
	return c.JSON(order)
}
