package repositories

import "pasar/internal/models"

// ProductFilter narrows ListActive results. Zero values mean "no filter".
type ProductFilter struct {
	Search       string // case-insensitive substring on name or description
	CategorySlug string
}

// ProductRepository defines the interface for product data access.
// Vendor-scoped methods treat a wrong-owner lookup the same as a missing
// record and return ErrNotFound.
type ProductRepository interface {
	ListActive(filter ProductFilter) ([]models.Product, error)
	ListFeatured(limit int) ([]models.Product, error)
	ListRelated(categoryID, excludeID string, limit int) ([]models.Product, error)
	ListByVendor(vendorID string) ([]models.Product, error)
	GetBySlug(slug string) (*models.Product, error)
	GetByID(id string) (*models.Product, error)
	GetByIDForVendor(id, vendorID string) (*models.Product, error)
	SlugExists(slug string) (bool, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id, vendorID string) error
}
