package service

import (
	"context"
	"errors"

	"github.com/ikkim/catalog-backend/internal/app/query"
	"github.com/ikkim/catalog-backend/internal/app/repository"
	"github.com/ikkim/catalog-backend/pkg/logger"
)

type ProductFilterOptions struct {
	ParentID *uint
	Keyword  string
	Sort     string
}

type ProductService interface {
	ListProducts(ctx context.Context) ([]query.Record, error)
	FilterProducts(ctx context.Context, opts ProductFilterOptions) ([]query.Record, error)
	GetProductByID(ctx context.Context, id string) (query.Record, error)
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) ListProducts(ctx context.Context) ([]query.Record, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to list products", err)
		return nil, err
	}

	logger.Info("Products listed", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (s *productService) FilterProducts(ctx context.Context, opts ProductFilterOptions) ([]query.Record, error) {
	logger.Debug("Filtering products", map[string]interface{}{
		"parent_id": opts.ParentID,
		"keyword":   opts.Keyword,
		"sort":      opts.Sort,
	})

	sort := repository.ProductSort(opts.Sort)
	if !sort.Valid() {
		logger.Warn("Unsupported product sort", map[string]interface{}{
			"sort": opts.Sort,
		})
		return nil, ErrInvalidProductSort
	}

	products, err := s.productRepo.FindWithFilter(ctx, repository.ProductFilter{
		ParentID: opts.ParentID,
		Keyword:  opts.Keyword,
		Sort:     sort,
	})
	if err != nil {
		logger.Error("Failed to filter products", err)
		return nil, err
	}

	logger.Info("Products filtered", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (s *productService) GetProductByID(ctx context.Context, id string) (query.Record, error) {
	logger.Debug("Fetching product by ID", map[string]interface{}{
		"product_id": id,
	})

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, query.ErrNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return product, nil
}
