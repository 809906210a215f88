package repository

import (
	"context"
	"fmt"

	"github.com/ikkim/catalog-backend/internal/app/query"
	"github.com/ikkim/catalog-backend/pkg/logger"
)

// ProductListLimit caps the product listing and filter results.
const ProductListLimit = 189

type ProductSort string

const (
	ProductSortDefault   ProductSort = ""
	ProductSortPriceAsc  ProductSort = "price_asc"
	ProductSortPriceDesc ProductSort = "price_desc"
	ProductSortNewest    ProductSort = "newest"
	ProductSortOldest    ProductSort = "oldest"
)

var productSortOrders = map[ProductSort][]query.Order{
	ProductSortDefault:   nil,
	ProductSortPriceAsc:  {query.Asc("price")},
	ProductSortPriceDesc: {query.Desc("price")},
	ProductSortNewest:    {query.Desc("created_at")},
	ProductSortOldest:    {query.Asc("created_at")},
}

// Valid reports whether s is a supported sort.
func (s ProductSort) Valid() bool {
	_, ok := productSortOrders[s]
	return ok
}

type ProductFilter struct {
	ParentID *uint
	Keyword  string
	Sort     ProductSort
}

var (
	productImages = query.Include{Alias: "images", Attributes: []string{"id", "url", "is_thumbnail"}}
	productTags   = query.Include{Alias: "tags", Attributes: []string{"id", "name"}}
	productStores = query.Include{Alias: "stores", Attributes: []string{"store_id", "store_name", "store_info"}}

	productReviews = query.Include{
		Alias:      "reviews",
		Attributes: []string{"id", "member_id", "share_star_id", "comment", "created_at", "updated_at"},
		Include: []query.Include{
			{Alias: "star", Attributes: []string{"id", "name", "numbers"}},
			{Alias: "member", Attributes: []string{"id", "name"}},
		},
	}

	productListQuery = query.Query{
		Entity: EntityProduct,
		Include: []query.Include{
			productImages,
			productTags,
			{Alias: "category", Attributes: []string{"id", "name", "parent_id"}},
			productStores,
			{Alias: "colors", Attributes: []string{"name", "code"}},
			productReviews,
		},
		Limit: ProductListLimit,
	}

	productDetailQuery = query.Query{
		Entity: EntityProduct,
		Include: []query.Include{
			productImages,
			{Alias: "category", Attributes: []string{"name"}},
			productStores,
			productTags,
			productReviews,
		},
	}
)

type ProductRepository interface {
	FindAll(ctx context.Context) ([]query.Record, error)
	FindWithFilter(ctx context.Context, filter ProductFilter) ([]query.Record, error)
	FindByID(ctx context.Context, id string) (query.Record, error)
}

type productRepository struct {
	composer *query.Composer
}

func NewProductRepository(composer *query.Composer) (ProductRepository, error) {
	if err := validateQueries(composer.Registry(), productListQuery, productDetailQuery); err != nil {
		return nil, err
	}
	return &productRepository{composer: composer}, nil
}

func (r *productRepository) FindAll(ctx context.Context) ([]query.Record, error) {
	logger.Debug("Fetching all products from database", nil)

	products, err := r.composer.Find(ctx, productListQuery)
	if err != nil {
		logFetchError("Failed to fetch products", err, nil)
		return nil, err
	}

	logger.Debug("Products fetched from database", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (r *productRepository) FindWithFilter(ctx context.Context, filter ProductFilter) ([]query.Record, error) {
	fields := map[string]interface{}{
		"parent_id": filter.ParentID,
		"keyword":   filter.Keyword,
		"sort":      filter.Sort,
	}
	logger.Debug("Fetching products with filter from database", fields)

	q := productListQuery
	if filter.ParentID != nil {
		q.Where = append(q.Where, query.Eq("category.parent_id", *filter.ParentID))
	}
	if filter.Keyword != "" {
		q.Where = append(q.Where, query.Contains("name", filter.Keyword))
	}
	order, ok := productSortOrders[filter.Sort]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported sort %q", query.ErrQuery, filter.Sort)
	}
	q.Order = order

	products, err := r.composer.Find(ctx, q)
	if err != nil {
		logFetchError("Failed to fetch products with filter", err, fields)
		return nil, err
	}

	logger.Debug("Products with filter fetched from database", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (r *productRepository) FindByID(ctx context.Context, id string) (query.Record, error) {
	logger.Debug("Fetching product by ID from database", map[string]interface{}{
		"product_id": id,
	})

	product, err := r.composer.FindByPK(ctx, productDetailQuery, id)
	if err != nil {
		logFetchError("Failed to fetch product by ID", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return product, nil
}
