package router

import (
	"github.com/gin-gonic/gin"
	"github.com/ikkim/catalog-backend/config"
	"github.com/ikkim/catalog-backend/internal/app/controller"
	apperrors "github.com/ikkim/catalog-backend/internal/errors"
	"github.com/ikkim/catalog-backend/internal/middleware"
)

type Router struct {
	courseController      *controller.CourseController
	productController     *controller.ProductController
	courseOrderController *controller.CourseOrderController
	healthController      *controller.HealthController
	authMiddleware        *middleware.AuthMiddleware
	config                *config.Config
}

func NewRouter(
	courseController *controller.CourseController,
	productController *controller.ProductController,
	courseOrderController *controller.CourseOrderController,
	healthController *controller.HealthController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		courseController:      courseController,
		productController:     productController,
		courseOrderController: courseOrderController,
		healthController:      healthController,
		authMiddleware:        authMiddleware,
		config:                cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.CustomRecovery(recoverPanic))
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", r.healthController.Health)

	// API_PREFIX 가 비어 있으면 루트에 마운트
	api := router.Group(r.config.Server.APIPrefix)
	{
		courses := api.Group("/courses")
		{
			courses.GET("", r.courseController.GetCourses)
			courses.GET("/categories", r.courseController.GetCategories)
			courses.GET("/latest", r.courseController.GetLatestCourses)
			courses.GET("/random", r.courseController.GetRandomCourses)
			courses.GET("/search", r.courseController.SearchCourses)
			courses.GET("/:id", r.courseController.GetCourseByID)
		}

		products := api.Group("/products")
		{
			products.GET("", r.productController.GetAllProducts)
			products.GET("/filter", r.productController.FilterProducts)
			products.GET("/:id", r.productController.GetProductByID)
		}

		api.GET("/course-orders", r.authMiddleware.OptionalAuthenticate(), r.courseOrderController.GetMemberOrders)
	}

	router.NoRoute(func(c *gin.Context) {
		apperrors.NotFound(c, "Route not found")
	})

	return router
}

// recoverPanic answers a panicking handler with the standard 500 envelope
func recoverPanic(c *gin.Context, recovered interface{}) {
	middleware.GetLoggerFromContext(c).Error("Panic recovered", nil, map[string]interface{}{
		"path":  c.Request.URL.Path,
		"panic": recovered,
	})
	apperrors.InternalError(c)
	c.Abort()
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
