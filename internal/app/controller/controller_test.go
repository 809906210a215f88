package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/catalog-backend/internal/app/query"
	"github.com/ikkim/catalog-backend/internal/app/repository"
	"github.com/ikkim/catalog-backend/internal/app/service"
	"github.com/ikkim/catalog-backend/internal/db"
	apperrors "github.com/ikkim/catalog-backend/internal/errors"
	"github.com/ikkim/catalog-backend/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
}

// setupControllerTest wires every catalog route against a seeded database.
// memberID, when non-zero, is injected as the authenticated member.
func setupControllerTest(t *testing.T, memberID uint) *gin.Engine {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	require.NoError(t, db.SeedTestCatalog(testDB))
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	reg, err := repository.NewRegistry(testDB.NamingStrategy)
	require.NoError(t, err)
	composer := query.NewComposer(testDB, reg, query.Options{})

	courseRepo, err := repository.NewCourseRepository(composer)
	require.NoError(t, err)
	productRepo, err := repository.NewProductRepository(composer)
	require.NoError(t, err)
	orderRepo, err := repository.NewCourseOrderRepository(composer)
	require.NoError(t, err)

	courseController := NewCourseController(service.NewCourseService(courseRepo))
	productController := NewProductController(service.NewProductService(productRepo))
	orderController := NewCourseOrderController(service.NewCourseOrderService(orderRepo))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if memberID != 0 {
			c.Set(middleware.MemberIDKey, memberID)
		}
		c.Next()
	})

	router.GET("/courses", courseController.GetCourses)
	router.GET("/courses/categories", courseController.GetCategories)
	router.GET("/courses/latest", courseController.GetLatestCourses)
	router.GET("/courses/random", courseController.GetRandomCourses)
	router.GET("/courses/search", courseController.SearchCourses)
	router.GET("/courses/:id", courseController.GetCourseByID)
	router.GET("/products", productController.GetAllProducts)
	router.GET("/products/filter", productController.FilterProducts)
	router.GET("/products/:id", productController.GetProductByID)
	router.GET("/course-orders", orderController.GetMemberOrders)

	return router
}

func get(t *testing.T, router *gin.Engine, target string) (*httptest.ResponseRecorder, envelope) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func decodeData(t *testing.T, raw json.RawMessage, v interface{}) {
	require.NoError(t, json.Unmarshal(raw, v))
}

func ids(records []map[string]interface{}) []float64 {
	out := make([]float64, 0, len(records))
	for _, r := range records {
		out = append(out, r["id"].(float64))
	}
	return out
}

func TestCourseController_Lists(t *testing.T) {
	router := setupControllerTest(t, 0)

	tests := []struct {
		path    string
		key     string
		wantLen int
	}{
		{"/courses", "courses", repository.CourseListLimit},
		{"/courses/latest", "latestCourses", repository.CourseListLimit},
		{"/courses/random", "randomCourses", repository.CourseListLimit},
		{"/courses/categories", "categories", 2},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w, body := get(t, router, tt.path)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, apperrors.StatusSuccess, body.Status)

			var data map[string][]map[string]interface{}
			decodeData(t, body.Data, &data)
			assert.Len(t, data[tt.key], tt.wantLen)
		})
	}
}

func TestCourseController_GetCourses_ShapesImages(t *testing.T) {
	router := setupControllerTest(t, 0)

	_, body := get(t, router, "/courses")
	var data struct {
		Courses []map[string]interface{} `json:"courses"`
	}
	decodeData(t, body.Data, &data)
	require.NotEmpty(t, data.Courses)

	first := data.Courses[0]
	assert.Equal(t, float64(1), first["id"])
	assert.Equal(t, "Course 1", first["name"])
	assert.Equal(t, []interface{}{
		map[string]interface{}{"id": float64(1), "path": "c1-main.jpg", "is_main": true},
		map[string]interface{}{"id": float64(2), "path": "c1-side.jpg", "is_main": false},
	}, first["images"])
}

func TestCourseController_GetLatestCourses_Order(t *testing.T) {
	router := setupControllerTest(t, 0)

	_, body := get(t, router, "/courses/latest")
	var data struct {
		LatestCourses []map[string]interface{} `json:"latestCourses"`
	}
	decodeData(t, body.Data, &data)
	assert.Equal(t, []float64{10, 9, 8, 7, 6, 5, 4, 3}, ids(data.LatestCourses))
}

func TestCourseController_SearchCourses(t *testing.T) {
	router := setupControllerTest(t, 0)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantIDs    []float64
		wantCode   string
	}{
		{"category and store", "/courses/search?category=2&store=2", http.StatusOK, []float64{6, 8, 10}, ""},
		{"store only", "/courses/search?store=1", http.StatusOK, []float64{1, 3, 5, 7, 9}, ""},
		{"no filters", "/courses/search", http.StatusOK, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, ""},
		{"invalid category", "/courses/search?category=abc", http.StatusBadRequest, nil, apperrors.ValidationInvalidInput},
		{"invalid store", "/courses/search?store=-1", http.StatusBadRequest, nil, apperrors.ValidationInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := get(t, router, tt.target)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCode != "" {
				assert.Equal(t, apperrors.StatusError, body.Status)
				assert.Equal(t, tt.wantCode, body.Code)
				return
			}

			var data struct {
				Courses []map[string]interface{} `json:"courses"`
			}
			decodeData(t, body.Data, &data)
			assert.Equal(t, tt.wantIDs, ids(data.Courses))
		})
	}
}

func TestCourseController_GetCourseByID(t *testing.T) {
	router := setupControllerTest(t, 0)

	w, body := get(t, router, "/courses/1")
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Course map[string]interface{} `json:"course"`
	}
	decodeData(t, body.Data, &data)
	course := data.Course
	assert.Equal(t, float64(1), course["id"])
	assert.Equal(t, map[string]interface{}{
		"store_id":      float64(1),
		"store_name":    "Bloom Studio",
		"store_address": "1 Garden Rd",
		"store_tel":     "02-1234-5678",
	}, course["store"])
	assert.Len(t, course["datetimes"], 3)
	assert.Len(t, course["news"], 1)

	reviews := course["reviews"].([]interface{})
	require.Len(t, reviews, 1)
	review := reviews[0].(map[string]interface{})
	assert.Equal(t, float64(5), review["rating"])
	assert.Equal(t, map[string]interface{}{"name": "Alice"}, review["member"])
}

func TestCourseController_GetCourseByID_Errors(t *testing.T) {
	router := setupControllerTest(t, 0)

	tests := []struct {
		name        string
		target      string
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{"missing", "/courses/999", http.StatusNotFound, apperrors.ResourceNotFound, "Course not found"},
		{"malformed", "/courses/abc", http.StatusBadRequest, apperrors.ValidationInvalidQuery, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := get(t, router, tt.target)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, apperrors.StatusError, body.Status)
			assert.Equal(t, tt.wantCode, body.Code)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, body.Message)
			}
		})
	}
}

func TestProductController_GetAllProducts(t *testing.T) {
	router := setupControllerTest(t, 0)

	w, body := get(t, router, "/products")
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Products []map[string]interface{} `json:"products"`
	}
	decodeData(t, body.Data, &data)
	require.Equal(t, []float64{1, 2, 3, 4}, ids(data.Products))

	first := data.Products[0]
	assert.Equal(t, map[string]interface{}{"name": "Red", "code": "#FF0000"}, first["colors"])
	assert.Equal(t, map[string]interface{}{"id": float64(2), "name": "Roses", "parent_id": float64(1)}, first["category"])
	assert.Len(t, first["tags"], 2)
	assert.Len(t, first["reviews"], 2)

	// Products without reviews still carry an empty list.
	assert.Equal(t, []interface{}{}, data.Products[3]["reviews"])
}

func TestProductController_FilterProducts(t *testing.T) {
	router := setupControllerTest(t, 0)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantIDs    []float64
		wantCode   string
	}{
		{"parent category", "/products/filter?parent_id=1", http.StatusOK, []float64{1, 2}, ""},
		{"keyword", "/products/filter?keyword=Pot", http.StatusOK, []float64{3, 4}, ""},
		{"parent and price desc", "/products/filter?parent_id=4&sort=price_desc", http.StatusOK, []float64{4, 3}, ""},
		{"newest", "/products/filter?sort=newest", http.StatusOK, []float64{4, 3, 2, 1}, ""},
		{"no match", "/products/filter?keyword=Orchid", http.StatusOK, []float64{}, ""},
		{"invalid parent", "/products/filter?parent_id=x", http.StatusBadRequest, nil, apperrors.ValidationInvalidInput},
		{"invalid sort", "/products/filter?sort=name", http.StatusBadRequest, nil, apperrors.ValidationInvalidQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := get(t, router, tt.target)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, body.Code)
				return
			}

			var data struct {
				Products []map[string]interface{} `json:"products"`
			}
			decodeData(t, body.Data, &data)
			assert.Equal(t, tt.wantIDs, ids(data.Products))
		})
	}
}

func TestProductController_GetProductByID(t *testing.T) {
	router := setupControllerTest(t, 0)

	w, body := get(t, router, "/products/2")
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Product map[string]interface{} `json:"product"`
	}
	decodeData(t, body.Data, &data)
	assert.Equal(t, "White Tulips", data.Product["name"])
	assert.Equal(t, map[string]interface{}{"name": "Tulips"}, data.Product["category"])

	w, body = get(t, router, "/products/999")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found", body.Message)
}

func TestCourseOrderController_GetMemberOrders(t *testing.T) {
	tests := []struct {
		name       string
		memberID   uint
		target     string
		wantStatus int
		wantOrders []float64
		wantCode   string
	}{
		{"query parameter", 0, "/course-orders?memberId=1", http.StatusOK, []float64{1}, ""},
		{"authenticated member wins", 2, "/course-orders?memberId=1", http.StatusOK, []float64{2}, ""},
		{"member without orders", 0, "/course-orders?memberId=42", http.StatusOK, []float64{}, ""},
		{"missing member", 0, "/course-orders", http.StatusBadRequest, nil, apperrors.ValidationRequired},
		{"zero member", 0, "/course-orders?memberId=0", http.StatusBadRequest, nil, apperrors.ValidationRequired},
		{"malformed member", 0, "/course-orders?memberId=abc", http.StatusBadRequest, nil, apperrors.ValidationInvalidID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupControllerTest(t, tt.memberID)

			w, body := get(t, router, tt.target)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, body.Code)
				return
			}

			var orders []map[string]interface{}
			decodeData(t, body.Data, &orders)
			assert.Equal(t, tt.wantOrders, ids(orders))
		})
	}
}

func TestCourseOrderController_GetMemberOrders_Shape(t *testing.T) {
	router := setupControllerTest(t, 0)

	_, body := get(t, router, "/course-orders?memberId=1")
	var orders []map[string]interface{}
	decodeData(t, body.Data, &orders)
	require.Len(t, orders, 1)

	order := orders[0]
	assert.Equal(t, map[string]interface{}{"name": "credit card"}, order["payment"])
	assert.Equal(t, map[string]interface{}{"name": "paid"}, order["payment_status"])
	assert.Equal(t, map[string]interface{}{"name": "completed"}, order["order_status"])

	items := order["items"].([]interface{})
	require.Len(t, items, 3)

	// Item 2 booked period 2 of course 1, so only that period's datetime shows.
	item := items[1].(map[string]interface{})
	assert.Equal(t, float64(2), item["period"])
	course := item["course"].(map[string]interface{})
	assert.Equal(t, []interface{}{map[string]interface{}{"path": "c1-main.jpg"}}, course["images"])

	datetimes := course["datetimes"].([]interface{})
	require.Len(t, datetimes, 1)
	assert.Equal(t, float64(3), datetimes[0].(map[string]interface{})["id"])
}

func TestHealthController_Health(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		ping       Pinger
		wantStatus int
	}{
		{"database up", func(context.Context) error { return nil }, http.StatusOK},
		{"database down", func(context.Context) error { return errors.New("connection refused") }, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/health", NewHealthController(tt.ping).Health)

			w, body := get(t, router, "/health")
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus != http.StatusOK {
				assert.Equal(t, apperrors.InternalStorageUnavailable, body.Code)
				assert.NotContains(t, w.Body.String(), "connection refused")
			}
		})
	}
}
