package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"pasar/internal/models"
	"pasar/internal/repositories"
)

const dashboardRecentItems = 10

// ProductService handles vendor-side product management. Every method is
// scoped to the acting vendor; a product owned by someone else behaves
// exactly like one that does not exist.
type ProductService struct {
	productRepo repositories.ProductRepository
	orderRepo   repositories.OrderRepository
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo repositories.ProductRepository, orderRepo repositories.OrderRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

// slugFor derives a unique slug from a product name. On collision a short
// uuid suffix is appended instead of failing the create.
func (s *ProductService) slugFor(name string) (string, error) {
	base := slug.Make(name)
	taken, err := s.productRepo.SlugExists(base)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}
	return fmt.Sprintf("%s-%s", base, uuid.New().String()[:8]), nil
}

// CreateProduct creates a product owned by the vendor.
func (s *ProductService) CreateProduct(vendorID string, product *models.Product) error {
	product.VendorID = vendorID
	sl, err := s.slugFor(product.Name)
	if err != nil {
		return fmt.Errorf("failed to derive slug: %w", err)
	}
	product.Slug = sl
	if err := s.productRepo.Create(product); err != nil {
		return err
	}
	return nil
}

// ProductUpdate carries the editable product fields.
type ProductUpdate struct {
	CategoryID  string  `json:"category_id" validate:"required"`
	Name        string  `json:"name" validate:"required,min=3,max=200"`
	Description string  `json:"description" validate:"omitempty,max=2000"`
	Price       float64 `json:"price" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	IsActive    bool    `json:"is_active"`
}

// UpdateProduct edits a product the vendor owns. The slug is kept stable so
// existing links keep working after a rename.
func (s *ProductService) UpdateProduct(vendorID, productID string, upd ProductUpdate) (*models.Product, error) {
	product, err := s.productRepo.GetByIDForVendor(productID, vendorID)
	if err != nil {
		return nil, err
	}

	product.CategoryID = upd.CategoryID
	product.Name = upd.Name
	product.Description = upd.Description
	product.Price = upd.Price
	product.Stock = upd.Stock
	product.IsActive = upd.IsActive

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct deletes a product the vendor owns.
func (s *ProductService) DeleteProduct(vendorID, productID string) error {
	return s.productRepo.Delete(productID, vendorID)
}

// SetProductImage records the storage key of an uploaded product image.
func (s *ProductService) SetProductImage(vendorID, productID, key string) (*models.Product, error) {
	product, err := s.productRepo.GetByIDForVendor(productID, vendorID)
	if err != nil {
		return nil, err
	}
	product.Image = key
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// VendorDashboard is the vendor's overview payload.
type VendorDashboard struct {
	Products      []models.Product   `json:"products"`
	RecentItems   []models.OrderItem `json:"recent_items"`
	TotalProducts int                `json:"total_products"`
	TotalOrders   int64              `json:"total_orders"`
	TotalRevenue  float64            `json:"total_revenue"`
}

// Dashboard assembles the vendor's products, their ten most recent sold
// items, and sales aggregates.
func (s *ProductService) Dashboard(vendorID string) (*VendorDashboard, error) {
	products, err := s.productRepo.ListByVendor(vendorID)
	if err != nil {
		return nil, err
	}
	items, err := s.orderRepo.ListItemsForVendor(vendorID, dashboardRecentItems)
	if err != nil {
		return nil, err
	}
	stats, err := s.orderRepo.StatsForVendor(vendorID)
	if err != nil {
		return nil, err
	}
	return &VendorDashboard{
		Products:      products,
		RecentItems:   items,
		TotalProducts: len(products),
		TotalOrders:   stats.TotalOrders,
		TotalRevenue:  stats.TotalRevenue,
	}, nil
}
