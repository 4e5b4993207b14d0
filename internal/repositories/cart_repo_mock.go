package repositories

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"pasar/internal/models"
)

// MockCartRepository is an in-memory implementation of CartRepository.
type MockCartRepository struct {
	items []models.CartItem
	mu    sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{}
}

// ListByUser returns a user's cart items in insertion order.
func (r *MockCartRepository) ListByUser(userID string) ([]models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.CartItem
	for _, it := range r.items {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

// GetByUserAndProduct returns the cart row for a (user, product) pair.
func (r *MockCartRepository) GetByUserAndProduct(userID, productID string) (*models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, it := range r.items {
		if it.UserID == userID && it.ProductID == productID {
			cp := it
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("cart item for product %s: %w", productID, ErrNotFound)
}

// GetByIDForUser returns a cart item only if the user owns it.
func (r *MockCartRepository) GetByIDForUser(id, userID string) (*models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, it := range r.items {
		if it.ID == id && it.UserID == userID {
			cp := it
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("cart item %s: %w", id, ErrNotFound)
}

// Create adds a new cart item.
func (r *MockCartRepository) Create(item *models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	r.items = append(r.items, *item)
	return nil
}

// Update modifies an existing cart item.
func (r *MockCartRepository) Update(item *models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, it := range r.items {
		if it.ID == item.ID {
			r.items[i].Quantity = item.Quantity
			return nil
		}
	}
	return fmt.Errorf("cart item %s: %w", item.ID, ErrNotFound)
}

// Delete removes a cart item only if the user owns it.
func (r *MockCartRepository) Delete(id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, it := range r.items {
		if it.ID == id && it.UserID == userID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("cart item %s: %w", id, ErrNotFound)
}

// ClearForUser removes every cart row belonging to a user.
func (r *MockCartRepository) ClearForUser(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.items[:0]
	for _, it := range r.items {
		if it.UserID != userID {
			kept = append(kept, it)
		}
	}
	r.items = kept
	return nil
}
