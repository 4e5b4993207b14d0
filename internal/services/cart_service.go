package services

import (
	"errors"
	"fmt"

	"pasar/internal/models"
	"pasar/internal/repositories"
)

// CartService handles the per-user shopping cart.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// AddToCart puts one unit of a product into the user's cart. A product with
// no stock is rejected; stock is otherwise only informational here and is
// never decremented. Repeated adds bump the quantity of the single
// (user, product) row instead of inserting duplicates.
func (s *CartService) AddToCart(userID, productID string) (*models.CartItem, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product.Stock <= 0 {
		return nil, fmt.Errorf("product %s: %w", product.Name, ErrOutOfStock)
	}

	item, err := s.cartRepo.GetByUserAndProduct(userID, productID)
	switch {
	case err == nil:
		item.Quantity++
		if err := s.cartRepo.Update(item); err != nil {
			return nil, err
		}
	case errors.Is(err, repositories.ErrNotFound):
		item = &models.CartItem{
			UserID:    userID,
			ProductID: productID,
			Product:   product,
			Quantity:  1,
		}
		if err := s.cartRepo.Create(item); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	item.Product = product
	return item, nil
}

// SetQuantity changes a cart item's quantity. A quantity of zero or less is
// silently ignored and the item returned unchanged; callers wanting removal
// use RemoveItem.
func (s *CartService) SetQuantity(userID, cartItemID string, quantity int) (*models.CartItem, error) {
	item, err := s.cartRepo.GetByIDForUser(cartItemID, userID)
	if err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return item, nil
	}
	item.Quantity = quantity
	if err := s.cartRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem deletes a cart item the user owns.
func (s *CartService) RemoveItem(userID, cartItemID string) error {
	return s.cartRepo.Delete(cartItemID, userID)
}

// GetCart returns the user's cart items and their total at current prices.
func (s *CartService) GetCart(userID string) ([]models.CartItem, float64, error) {
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, 0, err
	}
	var total float64
	for i := range items {
		total += items[i].Total()
	}
	return items, total, nil
}
