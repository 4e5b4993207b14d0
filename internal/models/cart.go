package models

import "gorm.io/gorm"

// CartItem is one user's intent to buy a product at some quantity.
// There is at most one row per (user, product) pair; repeated adds
// increment Quantity instead of inserting duplicates.
type CartItem struct {
	ID         string   `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string   `json:"user_id" gorm:"uniqueIndex:idx_cart_user_product;type:varchar(36)"`
	ProductID  string   `json:"product_id" gorm:"uniqueIndex:idx_cart_user_product;type:varchar(36)"`
	Product    *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity   int      `json:"quantity" validate:"gte=1"`
	gorm.Model `json:"-"`
}

// Total is the line total at the product's current price.
func (c *CartItem) Total() float64 {
	if c.Product == nil {
		return 0
	}
	return c.Product.Price * float64(c.Quantity)
}
