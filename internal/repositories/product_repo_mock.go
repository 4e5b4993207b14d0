package repositories

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"pasar/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// A slice keeps insertion order, which listing methods rely on.
type MockProductRepository struct {
	products []models.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{}
}

func matchesFilter(p models.Product, filter ProductFilter) bool {
	if !p.IsActive {
		return false
	}
	if filter.Search != "" {
		s := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(p.Name), s) &&
			!strings.Contains(strings.ToLower(p.Description), s) {
			return false
		}
	}
	if filter.CategorySlug != "" {
		if p.Category == nil || p.Category.Slug != filter.CategorySlug {
			return false
		}
	}
	return true
}

// ListActive returns active products matching the filter in insertion order.
func (r *MockProductRepository) ListActive(filter ProductFilter) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if matchesFilter(p, filter) {
			out = append(out, p)
		}
	}
	return out, nil
}

// ListFeatured returns the first limit active products.
func (r *MockProductRepository) ListFeatured(limit int) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Product
	for _, p := range r.products {
		if !p.IsActive {
			continue
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// ListRelated returns up to limit active products sharing a category,
// excluding the product itself.
func (r *MockProductRepository) ListRelated(categoryID, excludeID string, limit int) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Product
	for _, p := range r.products {
		if p.CategoryID == categoryID && p.ID != excludeID && p.IsActive {
			out = append(out, p)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

// ListByVendor returns all products owned by a vendor.
func (r *MockProductRepository) ListByVendor(vendorID string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Product
	for _, p := range r.products {
		if p.VendorID == vendorID {
			out = append(out, p)
		}
	}
	return out, nil
}

// GetBySlug returns a product by its slug.
func (r *MockProductRepository) GetBySlug(slug string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.Slug == slug {
			cp := p
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("product %q: %w", slug, ErrNotFound)
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
}

// GetByIDForVendor returns a product only if the vendor owns it.
func (r *MockProductRepository) GetByIDForVendor(id, vendorID string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id && p.VendorID == vendorID {
			cp := p
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
}

// SlugExists reports whether any product already uses the slug.
func (r *MockProductRepository) SlugExists(slug string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	r.products = append(r.products, *product)
	return nil
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == product.ID {
			r.products[i] = *product
			return nil
		}
	}
	return fmt.Errorf("product %s: %w", product.ID, ErrNotFound)
}

// Delete removes a product only if the vendor owns it.
func (r *MockProductRepository) Delete(id, vendorID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id && p.VendorID == vendorID {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("product %s: %w", id, ErrNotFound)
}
