package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"pasar/internal/models"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
// When constructed with a cart repository it mirrors the real PlaceOrder
// transaction by clearing the buyer's cart after storing the order.
type MockOrderRepository struct {
	orders map[string]models.Order
	carts  CartRepository
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
// carts may be nil when cart cleanup is irrelevant to the test.
func NewMockOrderRepository(carts CartRepository) *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
		carts:  carts,
	}
}

// PlaceOrder stores the order and clears the buyer's cart.
func (r *MockOrderRepository) PlaceOrder(order *models.Order) error {
	r.mu.Lock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.New().String()
		}
		order.Items[i].OrderID = order.ID
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	for _, existing := range r.orders {
		if existing.OrderNumber == order.OrderNumber {
			r.mu.Unlock()
			return fmt.Errorf("order number %s already exists", order.OrderNumber)
		}
	}
	r.orders[order.ID] = *order
	r.mu.Unlock()

	if r.carts != nil {
		return r.carts.ClearForUser(order.UserID)
	}
	return nil
}

// ListByUser returns a user's orders, newest first.
func (r *MockOrderRepository) ListByUser(userID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ListRecentByUser returns the user's newest orders, capped at limit.
func (r *MockOrderRepository) ListRecentByUser(userID string, limit int) ([]models.Order, error) {
	out, err := r.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// GetByIDForUser returns an order only if the user owns it.
func (r *MockOrderRepository) GetByIDForUser(id, userID string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok || o.UserID != userID {
		return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	return &o, nil
}

// ListItemsForVendor returns up to limit of the vendor's order items.
func (r *MockOrderRepository) ListItemsForVendor(vendorID string, limit int) ([]models.OrderItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []models.OrderItem
	for _, o := range r.orders {
		for _, it := range o.Items {
			if it.VendorID == vendorID {
				items = append(items, it)
			}
		}
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// StatsForVendor aggregates the vendor's order items.
func (r *MockOrderRepository) StatsForVendor(vendorID string) (*VendorStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &VendorStats{}
	for _, o := range r.orders {
		hit := false
		for _, it := range o.Items {
			if it.VendorID == vendorID {
				hit = true
				stats.TotalRevenue += it.Price
			}
		}
		if hit {
			stats.TotalOrders++
		}
	}
	return stats, nil
}
