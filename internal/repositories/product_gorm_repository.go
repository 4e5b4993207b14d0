package repositories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pasar/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{db: db}
}

// ListActive retrieves active products matching the filter, in insertion order.
func (r *GORMProductRepository) ListActive(filter ProductFilter) ([]models.Product, error) {
	q := r.db.Preload("Category").Where("is_active = ?", true).Order("products.created_at")

	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ?", like, like)
	}
	if filter.CategorySlug != "" {
		q = q.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}

	var products []models.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list active products: %w", err)
	}
	return products, nil
}

// ListFeatured retrieves the first limit active products.
func (r *GORMProductRepository) ListFeatured(limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Preload("Category").
		Where("is_active = ?", true).
		Order("created_at").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list featured products: %w", err)
	}
	return products, nil
}

// ListRelated retrieves up to limit active products sharing a category,
// excluding the product itself.
func (r *GORMProductRepository) ListRelated(categoryID, excludeID string, limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.
		Where("category_id = ? AND id <> ? AND is_active = ?", categoryID, excludeID, true).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list related products: %w", err)
	}
	return products, nil
}

// ListByVendor retrieves all products owned by a vendor, active or not.
func (r *GORMProductRepository) ListByVendor(vendorID string) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Preload("Category").
		Where("vendor_id = ?", vendorID).
		Order("created_at").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products for vendor %s: %w", vendorID, err)
	}
	return products, nil
}

// GetBySlug retrieves a single product by its slug.
func (r *GORMProductRepository) GetBySlug(slug string) (*models.Product, error) {
	var product models.Product
	err := r.db.Preload("Category").Preload("Vendor").First(&product, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %q: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by slug %q: %w", slug, err)
	}
	return &product, nil
}

// GetByID retrieves a single product by its ID.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// GetByIDForVendor retrieves a product only if the vendor owns it.
func (r *GORMProductRepository) GetByIDForVendor(id, vendorID string) (*models.Product, error) {
	var product models.Product
	err := r.db.First(&product, "id = ? AND vendor_id = ?", id, vendorID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product %s for vendor %s: %w", id, vendorID, err)
	}
	return &product, nil
}

// SlugExists reports whether any product already uses the slug.
func (r *GORMProductRepository) SlugExists(slug string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check slug %q: %w", slug, err)
	}
	return count > 0, nil
}

// Create creates a new product.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update updates an existing product. Save writes all fields, including
// zero values, so callers must pass a fully loaded product.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Save(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// Save does not return ErrRecordNotFound for an update that
		// matched nothing, so check RowsAffected.
		return fmt.Errorf("product %s: %w", product.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes a product only if the vendor owns it. The delete is hard:
// a soft-deleted row would keep occupying the unique slug index and make the
// name unusable for new products.
func (r *GORMProductRepository) Delete(id, vendorID string) error {
	res := r.db.Unscoped().Delete(&models.Product{}, "id = ? AND vendor_id = ?", id, vendorID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return nil
}
