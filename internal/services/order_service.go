package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"pasar/internal/models"
	"pasar/internal/repositories"
)

// EventPublisher publishes domain events. Satisfied by rabbitmq.Client;
// a nil publisher disables eventing.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

const recentOrdersLimit = 5

// OrderService converts carts into orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	cartRepo  repositories.CartRepository
	publisher EventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, cartRepo repositories.CartRepository, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		publisher: publisher,
	}
}

// ShippingDetails are supplied by the buyer at checkout. Presence is the
// only validation applied.
type ShippingDetails struct {
	Address string `json:"address" validate:"required"`
	City    string `json:"city" validate:"required"`
	Zip     string `json:"zip" validate:"required"`
}

// newOrderNumber returns a short human-readable token: the first eight
// characters of a UUIDv4, uppercased. Uniqueness is probabilistic; the
// unique index on order_number turns the astronomically rare collision into
// a checkout error rather than a duplicate.
func newOrderNumber() string {
	return strings.ToUpper(uuid.New().String()[:8])
}

// Checkout turns the user's cart into one immutable order.
//
// All writes happen in a single repository transaction: the order, one item
// per cart row (snapshotting the product's current price and vendor), and
// the cart cleanup. Stock is not decremented or re-checked here; it is only
// consulted at add-to-cart time, so concurrent checkouts can oversell.
func (s *OrderService) Checkout(userID string, shipping ShippingDetails) (*models.Order, error) {
	cartItems, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrEmptyCart
	}

	var total float64
	items := make([]models.OrderItem, 0, len(cartItems))
	for i := range cartItems {
		product := cartItems[i].Product
		if product == nil {
			return nil, fmt.Errorf("cart item %s has no product loaded", cartItems[i].ID)
		}
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			VendorID:  product.VendorID,
			Quantity:  cartItems[i].Quantity,
			Price:     product.Price,
		})
		total += product.Price * float64(cartItems[i].Quantity)
	}

	order := &models.Order{
		ID:              uuid.New().String(),
		UserID:          userID,
		OrderNumber:     newOrderNumber(),
		TotalAmount:     total,
		ShippingAddress: shipping.Address,
		ShippingCity:    shipping.City,
		ShippingZip:     shipping.Zip,
		Status:          models.OrderStatusPending,
		Items:           items,
		CreatedAt:       time.Now(),
	}

	if err := s.orderRepo.PlaceOrder(order); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	s.publishOrderPlaced(order)
	return order, nil
}

// publishOrderPlaced emits an order.placed event. Publishing is best
// effort: the order is already committed, so failures are only logged.
func (s *OrderService) publishOrderPlaced(order *models.Order) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"user_id":      order.UserID,
		"total":        order.TotalAmount,
		"items":        len(order.Items),
	})
	if err != nil {
		log.Printf("failed to marshal order event for %s: %v", order.OrderNumber, err)
		return
	}
	if err := s.publisher.Publish("order.placed", body); err != nil {
		log.Printf("warning: failed to publish order.placed for %s: %v", order.OrderNumber, err)
	}
}

// ListOrders returns the user's orders, newest first.
func (s *OrderService) ListOrders(userID string) ([]models.Order, error) {
	return s.orderRepo.ListByUser(userID)
}

// RecentOrders returns the user's five most recent orders, the buyer's
// dashboard feed.
func (s *OrderService) RecentOrders(userID string) ([]models.Order, error) {
	return s.orderRepo.ListRecentByUser(userID, recentOrdersLimit)
}

// GetOrder returns one of the user's orders with its items.
func (s *OrderService) GetOrder(userID, orderID string) (*models.Order, error) {
	return s.orderRepo.GetByIDForUser(orderID, userID)
}
