package services_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"pasar/internal/models"
	"pasar/internal/repositories"
	"pasar/internal/services"

	"github.com/stretchr/testify/assert"
)

// capturingPublisher records published events instead of talking to a broker.
type capturingPublisher struct {
	keys   []string
	bodies [][]byte
}

func (p *capturingPublisher) Publish(routingKey string, body []byte) error {
	p.keys = append(p.keys, routingKey)
	p.bodies = append(p.bodies, body)
	return nil
}

var testShipping = services.ShippingDetails{
	Address: "Jl. Sudirman 42",
	City:    "Jakarta",
	Zip:     "10110",
}

func TestOrderService_Checkout(t *testing.T) {
	productRepo := repositories.NewMockProductRepository()
	cartRepo := repositories.NewMockCartRepository()
	orderRepo := repositories.NewMockOrderRepository(cartRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	publisher := &capturingPublisher{}
	orderService := services.NewOrderService(orderRepo, cartRepo, publisher)

	keyboard := seedProduct(t, productRepo, "Mechanical Keyboard", 100, 5)
	mouse := seedProduct(t, productRepo, "Gaming Mouse", 50, 5)

	// 2 keyboards + 1 mouse
	_, err := cartService.AddToCart("buyer-1", keyboard.ID)
	assert.NoError(t, err)
	_, err = cartService.AddToCart("buyer-1", keyboard.ID)
	assert.NoError(t, err)
	_, err = cartService.AddToCart("buyer-1", mouse.ID)
	assert.NoError(t, err)

	_, cartTotal, err := cartService.GetCart("buyer-1")
	assert.NoError(t, err)

	order, err := orderService.Checkout("buyer-1", testShipping)
	assert.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Len(t, order.OrderNumber, 8)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "Jl. Sudirman 42", order.ShippingAddress)

	// One item per cart row, unit prices snapshotted, total matches the cart
	assert.Len(t, order.Items, 2)
	assert.Equal(t, 250.0, order.TotalAmount)
	assert.Equal(t, cartTotal, order.TotalAmount)
	byProduct := map[string]models.OrderItem{}
	for _, it := range order.Items {
		byProduct[it.ProductID] = it
	}
	assert.Equal(t, 2, byProduct[keyboard.ID].Quantity)
	assert.Equal(t, 100.0, byProduct[keyboard.ID].Price)
	assert.Equal(t, "vendor-1", byProduct[keyboard.ID].VendorID)
	assert.Equal(t, 1, byProduct[mouse.ID].Quantity)
	assert.Equal(t, 50.0, byProduct[mouse.ID].Price)

	// The cart is emptied by checkout
	items, _, err := cartService.GetCart("buyer-1")
	assert.NoError(t, err)
	assert.Empty(t, items)

	// An order.placed event went out with the order number on it
	assert.Equal(t, []string{"order.placed"}, publisher.keys)
	var event map[string]interface{}
	assert.NoError(t, json.Unmarshal(publisher.bodies[0], &event))
	assert.Equal(t, order.OrderNumber, event["order_number"])
}

func TestOrderService_Checkout_EmptyCart(t *testing.T) {
	cartRepo := repositories.NewMockCartRepository()
	orderRepo := repositories.NewMockOrderRepository(cartRepo)
	orderService := services.NewOrderService(orderRepo, cartRepo, nil)

	_, err := orderService.Checkout("buyer-1", testShipping)
	assert.ErrorIs(t, err, services.ErrEmptyCart)
}

func TestOrderService_PriceSnapshotSurvivesEdits(t *testing.T) {
	productRepo := repositories.NewMockProductRepository()
	cartRepo := repositories.NewMockCartRepository()
	orderRepo := repositories.NewMockOrderRepository(cartRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	orderService := services.NewOrderService(orderRepo, cartRepo, nil)

	product := seedProduct(t, productRepo, "RAM 16GB", 80, 10)
	_, err := cartService.AddToCart("buyer-1", product.ID)
	assert.NoError(t, err)

	order, err := orderService.Checkout("buyer-1", testShipping)
	assert.NoError(t, err)

	// Repricing the product later must not touch the placed order
	product.Price = 120
	assert.NoError(t, productRepo.Update(product))

	got, err := orderService.GetOrder("buyer-1", order.ID)
	assert.NoError(t, err)
	assert.Equal(t, 80.0, got.Items[0].Price)
	assert.Equal(t, 80.0, got.TotalAmount)
}

func TestOrderService_RecentOrders(t *testing.T) {
	productRepo := repositories.NewMockProductRepository()
	cartRepo := repositories.NewMockCartRepository()
	orderRepo := repositories.NewMockOrderRepository(cartRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	orderService := services.NewOrderService(orderRepo, cartRepo, nil)

	for i := 0; i < 6; i++ {
		product := seedProduct(t, productRepo, fmt.Sprintf("Case Fan %d", i), 10, 5)
		_, err := cartService.AddToCart("buyer-1", product.ID)
		assert.NoError(t, err)
		_, err = orderService.Checkout("buyer-1", testShipping)
		assert.NoError(t, err)
	}

	all, err := orderService.ListOrders("buyer-1")
	assert.NoError(t, err)
	assert.Len(t, all, 6)

	// The recent feed caps at five, newest first, dropping the oldest order
	recent, err := orderService.RecentOrders("buyer-1")
	assert.NoError(t, err)
	assert.Len(t, recent, 5)
	assert.Equal(t, all[0].ID, recent[0].ID)
	for _, o := range recent {
		assert.NotEqual(t, all[5].ID, o.ID)
	}
}

func TestOrderService_OrdersAreScopedToOwner(t *testing.T) {
	productRepo := repositories.NewMockProductRepository()
	cartRepo := repositories.NewMockCartRepository()
	orderRepo := repositories.NewMockOrderRepository(cartRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	orderService := services.NewOrderService(orderRepo, cartRepo, nil)

	product := seedProduct(t, productRepo, "PSU 650W", 60, 10)
	_, err := cartService.AddToCart("buyer-1", product.ID)
	assert.NoError(t, err)
	order, err := orderService.Checkout("buyer-1", testShipping)
	assert.NoError(t, err)

	// Another buyer cannot see the order, by ID or in their list
	_, err = orderService.GetOrder("buyer-2", order.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	orders, err := orderService.ListOrders("buyer-2")
	assert.NoError(t, err)
	assert.Empty(t, orders)

	orders, err = orderService.ListOrders("buyer-1")
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, order.OrderNumber, orders[0].OrderNumber)
}
