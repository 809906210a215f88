package repository

import (
	"context"

	"github.com/ikkim/catalog-backend/internal/app/query"
	"github.com/ikkim/catalog-backend/pkg/logger"
)

// CourseListLimit caps the home page course lists.
const CourseListLimit = 8

var courseCardImages = query.Include{
	Alias:      "images",
	Attributes: []string{"id", "path", "is_main"},
}

var (
	courseListQuery = query.Query{
		Entity:  EntityCourse,
		Include: []query.Include{courseCardImages},
		Limit:   CourseListLimit,
	}

	courseLatestQuery = query.Query{
		Entity:  EntityCourse,
		Include: []query.Include{courseCardImages},
		Order:   []query.Order{query.Desc("created_at")},
		Limit:   CourseListLimit,
	}

	courseRandomQuery = query.Query{
		Entity:  EntityCourse,
		Include: []query.Include{courseCardImages},
		Random:  true,
		Limit:   CourseListLimit,
	}

	courseCategoryQuery = query.Query{
		Entity:     EntityCourseCategory,
		Attributes: []string{"id", "name", "path"},
		Order:      []query.Order{query.Asc("id")},
	}

	courseDetailQuery = query.Query{
		Entity: EntityCourse,
		Include: []query.Include{
			courseCardImages,
			{Alias: "store", Attributes: []string{"store_id", "store_name", "store_address", "store_tel"}},
			{Alias: "news", Attributes: []string{"id", "title", "content", "created_at"}},
			{Alias: "datetimes", Attributes: []string{"id", "period", "date", "start_time", "end_time"}},
			{
				Alias:      "reviews",
				Attributes: []string{"member_id", "rating", "comment", "created_at"},
				Include:    []query.Include{{Alias: "member", Attributes: []string{"name"}}},
			},
		},
	}
)

// CourseFilter narrows the course search. Zero values are ignored.
type CourseFilter struct {
	CategoryID uint
	StoreID    uint
}

type CourseRepository interface {
	FindAll(ctx context.Context) ([]query.Record, error)
	FindLatest(ctx context.Context) ([]query.Record, error)
	FindRandom(ctx context.Context) ([]query.Record, error)
	FindCategories(ctx context.Context) ([]query.Record, error)
	Search(ctx context.Context, filter CourseFilter) ([]query.Record, error)
	FindByID(ctx context.Context, id string) (query.Record, error)
}

type courseRepository struct {
	composer *query.Composer
}

func NewCourseRepository(composer *query.Composer) (CourseRepository, error) {
	err := validateQueries(composer.Registry(),
		courseListQuery, courseLatestQuery, courseRandomQuery, courseCategoryQuery, courseDetailQuery)
	if err != nil {
		return nil, err
	}
	return &courseRepository{composer: composer}, nil
}

func (r *courseRepository) find(ctx context.Context, name string, q query.Query) ([]query.Record, error) {
	logger.Debug("Fetching courses from database", map[string]interface{}{
		"query": name,
		"limit": q.Limit,
	})

	courses, err := r.composer.Find(ctx, q)
	if err != nil {
		logFetchError("Failed to fetch courses", err, map[string]interface{}{
			"query": name,
		})
		return nil, err
	}

	logger.Debug("Courses fetched from database", map[string]interface{}{
		"query": name,
		"count": len(courses),
	})
	return courses, nil
}

func (r *courseRepository) FindAll(ctx context.Context) ([]query.Record, error) {
	return r.find(ctx, "list", courseListQuery)
}

func (r *courseRepository) FindLatest(ctx context.Context) ([]query.Record, error) {
	return r.find(ctx, "latest", courseLatestQuery)
}

func (r *courseRepository) FindRandom(ctx context.Context) ([]query.Record, error) {
	return r.find(ctx, "random", courseRandomQuery)
}

func (r *courseRepository) FindCategories(ctx context.Context) ([]query.Record, error) {
	return r.find(ctx, "categories", courseCategoryQuery)
}

func (r *courseRepository) Search(ctx context.Context, filter CourseFilter) ([]query.Record, error) {
	q := courseListQuery
	q.Limit = 0
	if filter.CategoryID != 0 {
		q.Where = append(q.Where, query.Eq("category_id", filter.CategoryID))
	}
	if filter.StoreID != 0 {
		q.Where = append(q.Where, query.Eq("store_id", filter.StoreID))
	}
	return r.find(ctx, "search", q)
}

func (r *courseRepository) FindByID(ctx context.Context, id string) (query.Record, error) {
	logger.Debug("Fetching course by ID from database", map[string]interface{}{
		"course_id": id,
	})

	course, err := r.composer.FindByPK(ctx, courseDetailQuery, id)
	if err != nil {
		logFetchError("Failed to fetch course by ID", err, map[string]interface{}{
			"course_id": id,
		})
		return nil, err
	}
	return course, nil
}
