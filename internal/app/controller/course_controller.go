package controller

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/catalog-backend/internal/app/query"
	"github.com/ikkim/catalog-backend/internal/app/service"
	apperrors "github.com/ikkim/catalog-backend/internal/errors"
	"github.com/ikkim/catalog-backend/internal/middleware"
)

type CourseController struct {
	courseService service.CourseService
}

func NewCourseController(courseService service.CourseService) *CourseController {
	return &CourseController{
		courseService: courseService,
	}
}

func (ctrl *CourseController) list(c *gin.Context, key string, fetch func(context.Context) ([]query.Record, error)) {
	log := middleware.GetLoggerFromContext(c)

	records, err := fetch(c.Request.Context())
	if err != nil {
		respondError(c, log, "Failed to fetch courses", err, "", map[string]interface{}{
			"list": key,
		})
		return
	}

	log.Info("Courses fetched successfully", map[string]interface{}{
		"list":  key,
		"count": len(records),
	})
	apperrors.RespondSuccess(c, gin.H{key: records})
}

// GetCourses returns the course list
// GET /courses
func (ctrl *CourseController) GetCourses(c *gin.Context) {
	ctrl.list(c, "courses", ctrl.courseService.ListCourses)
}

// GetCategories returns every course category
// GET /courses/categories
func (ctrl *CourseController) GetCategories(c *gin.Context) {
	ctrl.list(c, "categories", ctrl.courseService.ListCategories)
}

// GetLatestCourses returns the newest courses
// GET /courses/latest
func (ctrl *CourseController) GetLatestCourses(c *gin.Context) {
	ctrl.list(c, "latestCourses", ctrl.courseService.ListLatestCourses)
}

// GetRandomCourses returns a random sample of courses
// GET /courses/random
func (ctrl *CourseController) GetRandomCourses(c *gin.Context) {
	ctrl.list(c, "randomCourses", ctrl.courseService.ListRandomCourses)
}

// SearchCourses filters courses by category and store
// GET /courses/search?category=&store=
func (ctrl *CourseController) SearchCourses(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var opts service.CourseSearchOptions
	categoryID, _, err := parseUintQuery(c, "category")
	if err != nil {
		log.Warn("Invalid category filter", map[string]interface{}{
			"category": c.Query("category"),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid category")
		return
	}
	storeID, _, err := parseUintQuery(c, "store")
	if err != nil {
		log.Warn("Invalid store filter", map[string]interface{}{
			"store": c.Query("store"),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid store")
		return
	}
	opts.CategoryID = categoryID
	opts.StoreID = storeID

	courses, err := ctrl.courseService.SearchCourses(c.Request.Context(), opts)
	if err != nil {
		respondError(c, log, "Failed to search courses", err, "", nil)
		return
	}

	apperrors.RespondSuccess(c, gin.H{"courses": courses})
}

// GetCourseByID returns one course with its detail includes
// GET /courses/:id
func (ctrl *CourseController) GetCourseByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	course, err := ctrl.courseService.GetCourseByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, log, "Failed to fetch course", err, "Course not found", map[string]interface{}{
			"course_id": id,
		})
		return
	}

	log.Info("Course fetched successfully", map[string]interface{}{
		"course_id": id,
	})
	apperrors.RespondSuccess(c, gin.H{"course": course})
}
