package services

import (
	"pasar/internal/models"
	"pasar/internal/repositories"
)

const (
	relatedProductsLimit    = 4
	featuredProductsLimit   = 8
	featuredCategoriesLimit = 6
)

// CatalogService handles public, read-only catalog browsing.
type CatalogService struct {
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(productRepo repositories.ProductRepository, categoryRepo repositories.CategoryRepository) *CatalogService {
	return &CatalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// ListProducts returns active products, optionally narrowed by a search term
// and a category slug.
func (s *CatalogService) ListProducts(search, categorySlug string) ([]models.Product, error) {
	return s.productRepo.ListActive(repositories.ProductFilter{
		Search:       search,
		CategorySlug: categorySlug,
	})
}

// GetProductBySlug returns a product and up to four related products from
// the same category.
func (s *CatalogService) GetProductBySlug(slug string) (*models.Product, []models.Product, error) {
	product, err := s.productRepo.GetBySlug(slug)
	if err != nil {
		return nil, nil, err
	}
	related, err := s.productRepo.ListRelated(product.CategoryID, product.ID, relatedProductsLimit)
	if err != nil {
		return nil, nil, err
	}
	return product, related, nil
}

// ListCategories returns all categories.
func (s *CatalogService) ListCategories() ([]models.Category, error) {
	return s.categoryRepo.GetAll()
}

// HomeFeed is the landing-page payload.
type HomeFeed struct {
	FeaturedProducts []models.Product  `json:"featured_products"`
	Categories       []models.Category `json:"categories"`
}

// Home returns the first eight active products and the first six categories.
func (s *CatalogService) Home() (*HomeFeed, error) {
	products, err := s.productRepo.ListFeatured(featuredProductsLimit)
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.GetAll()
	if err != nil {
		return nil, err
	}
	if len(categories) > featuredCategoriesLimit {
		categories = categories[:featuredCategoriesLimit]
	}
	return &HomeFeed{FeaturedProducts: products, Categories: categories}, nil
}
