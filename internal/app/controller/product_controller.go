package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/ikkim/catalog-backend/internal/app/service"
	apperrors "github.com/ikkim/catalog-backend/internal/errors"
	"github.com/ikkim/catalog-backend/internal/middleware"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

// GetAllProducts returns the product list
// GET /products
func (ctrl *ProductController) GetAllProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	products, err := ctrl.productService.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, log, "Failed to fetch products", err, "", nil)
		return
	}

	log.Info("Products fetched successfully", map[string]interface{}{
		"count": len(products),
	})
	apperrors.RespondSuccess(c, gin.H{"products": products})
}

// FilterProducts narrows the product list by parent category and keyword
// GET /products/filter?parent_id=&keyword=&sort=
func (ctrl *ProductController) FilterProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	opts := service.ProductFilterOptions{
		Keyword: c.Query("keyword"),
		Sort:    c.Query("sort"),
	}
	parentID, ok, err := parseUintQuery(c, "parent_id")
	if err != nil {
		log.Warn("Invalid parent category filter", map[string]interface{}{
			"parent_id": c.Query("parent_id"),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid parent_id")
		return
	}
	if ok {
		opts.ParentID = &parentID
	}

	products, err := ctrl.productService.FilterProducts(c.Request.Context(), opts)
	if err != nil {
		respondError(c, log, "Failed to filter products", err, "", map[string]interface{}{
			"keyword": opts.Keyword,
			"sort":    opts.Sort,
		})
		return
	}

	log.Info("Products filtered successfully", map[string]interface{}{
		"count": len(products),
	})
	apperrors.RespondSuccess(c, gin.H{"products": products})
}

// GetProductByID returns a product by ID
// GET /products/:id
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	product, err := ctrl.productService.GetProductByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, log, "Failed to fetch product", err, "Product not found", map[string]interface{}{
			"product_id": id,
		})
		return
	}

	log.Info("Product fetched successfully", map[string]interface{}{
		"product_id": id,
	})
	apperrors.RespondSuccess(c, gin.H{"product": product})
}
