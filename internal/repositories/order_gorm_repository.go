package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pasar/internal/models"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

// PlaceOrder writes the order, its items and the cart cleanup in a single
// transaction so a crash or concurrent failure never leaves a partial order.
// Stock is deliberately not touched here.
func (r *GORMOrderRepository) PlaceOrder(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.New().String()
		}
		order.Items[i].OrderID = order.ID
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.CartItem{}, "user_id = ?", order.UserID).Error
	})
	if err != nil {
		return fmt.Errorf("failed to place order: %w", err)
	}
	return nil
}

// ListByUser retrieves a user's orders, newest first, with items.
func (r *GORMOrderRepository) ListByUser(userID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for user %s: %w", userID, err)
	}
	return orders, nil
}

// ListRecentByUser retrieves the user's newest orders, capped at limit.
func (r *GORMOrderRepository) ListRecentByUser(userID string, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recent orders for user %s: %w", userID, err)
	}
	return orders, nil
}

// GetByIDForUser retrieves an order only if the user owns it.
func (r *GORMOrderRepository) GetByIDForUser(id, userID string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").First(&order, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order %s for user %s: %w", id, userID, err)
	}
	return &order, nil
}

// ListItemsForVendor retrieves the vendor's most recent order items.
func (r *GORMOrderRepository) ListItemsForVendor(vendorID string, limit int) ([]models.OrderItem, error) {
	var items []models.OrderItem
	q := r.db.Where("vendor_id = ?", vendorID).Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list order items for vendor %s: %w", vendorID, err)
	}
	return items, nil
}

// StatsForVendor aggregates distinct order count and revenue over the
// vendor's order items. Revenue sums the unit price snapshots, matching the
// dashboard's historical definition.
func (r *GORMOrderRepository) StatsForVendor(vendorID string) (*VendorStats, error) {
	var stats VendorStats

	err := r.db.Model(&models.OrderItem{}).
		Where("vendor_id = ?", vendorID).
		Distinct("order_id").
		Count(&stats.TotalOrders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count orders for vendor %s: %w", vendorID, err)
	}

	err = r.db.Model(&models.OrderItem{}).
		Where("vendor_id = ?", vendorID).
		Select("COALESCE(SUM(price), 0)").
		Scan(&stats.TotalRevenue).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum revenue for vendor %s: %w", vendorID, err)
	}
	return &stats, nil
}
