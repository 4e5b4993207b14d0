package repositories

import "pasar/internal/models"

// VendorStats aggregates a vendor's sales for the dashboard.
type VendorStats struct {
	TotalOrders  int64   `json:"total_orders"`  // distinct orders containing the vendor's items
	TotalRevenue float64 `json:"total_revenue"` // sum of the vendor's item price snapshots
}

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// PlaceOrder atomically creates the order with its items and clears the
	// buyer's cart. Either everything is written or nothing is.
	PlaceOrder(order *models.Order) error
	ListByUser(userID string) ([]models.Order, error)
	ListRecentByUser(userID string, limit int) ([]models.Order, error)
	GetByIDForUser(id, userID string) (*models.Order, error)
	ListItemsForVendor(vendorID string, limit int) ([]models.OrderItem, error)
	StatsForVendor(vendorID string) (*VendorStats, error)
}
