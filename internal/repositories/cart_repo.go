package repositories

import "pasar/internal/models"

// CartRepository defines the interface for cart data access. All reads and
// writes are scoped to one user; touching another user's row yields
// ErrNotFound.
type CartRepository interface {
	ListByUser(userID string) ([]models.CartItem, error)
	GetByUserAndProduct(userID, productID string) (*models.CartItem, error)
	GetByIDForUser(id, userID string) (*models.CartItem, error)
	Create(item *models.CartItem) error
	Update(item *models.CartItem) error
	Delete(id, userID string) error
	ClearForUser(userID string) error
}
