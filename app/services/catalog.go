package services

import (
	"strings"
	"time"

	"github.com/shashiranjanraj/digiteria/app/models"
	"github.com/shashiranjanraj/digiteria/app/store"
	"github.com/shashiranjanraj/digiteria/pkg/cache"
	"github.com/shashiranjanraj/digiteria/pkg/collection"
)

const (
	catalogCacheKey = "catalog:approved"
	catalogCacheTTL = 5 * time.Minute
)

// CatalogService serves the public storefront listing: approved products,
// optionally filtered, cached in Redis. The cache entry is dropped whenever
// the document changes, so listings never serve stale products longer than
// one change-bus tick.
type CatalogService struct {
	store *store.Store
}

func NewCatalogService(st *store.Store) *CatalogService {
	s := &CatalogService{store: st}
	st.Subscribe(func() { cache.Forget(catalogCacheKey) })
	return s
}

// Approved returns all approved products, newest first.
func (s *CatalogService) Approved() []models.Product {
	var products []models.Product
	if cache.Get(catalogCacheKey, &products) {
		return products
	}

	products = collection.Filter(s.store.Products(), func(p models.Product) bool {
		return p.Status == models.StatusApproved
	})
	cache.Set(catalogCacheKey, products, catalogCacheTTL)
	return products
}

// Search filters the approved listing by free-text query and category.
// sortBy is one of "newest" (default), "price_asc", "price_desc", "popular".
func (s *CatalogService) Search(query, category, sortBy string) []models.Product {
	products := s.Approved()

	if category != "" {
		products = collection.Filter(products, func(p models.Product) bool {
			return strings.EqualFold(p.Category, category)
		})
	}
	if query != "" {
		q := strings.ToLower(query)
		products = collection.Filter(products, func(p models.Product) bool {
			return strings.Contains(strings.ToLower(p.Title), q) ||
				strings.Contains(strings.ToLower(p.Description), q)
		})
	}

	switch sortBy {
	case "price_asc":
		collection.SortBy(products, func(a, b models.Product) bool { return a.Price < b.Price })
	case "price_desc":
		collection.SortBy(products, func(a, b models.Product) bool { return a.Price > b.Price })
	case "popular":
		collection.SortBy(products, func(a, b models.Product) bool { return a.SalesCount > b.SalesCount })
	}
	return products
}

// Page slices a product list for one page. page is 1-based.
// Always returns a non-nil slice so the JSON listing encodes as [] rather
// than null.
func Page(products []models.Product, page, perPage int) []models.Product {
	if perPage < 1 {
		perPage = 20
	}
	out := collection.Paginate(products, page, perPage)
	if out == nil {
		return []models.Product{}
	}
	return out
}
