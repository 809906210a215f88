package service

import (
	"context"
	"errors"

	"github.com/ikkim/catalog-backend/internal/app/query"
	"github.com/ikkim/catalog-backend/internal/app/repository"
	"github.com/ikkim/catalog-backend/pkg/logger"
)

type CourseSearchOptions struct {
	CategoryID uint
	StoreID    uint
}

type CourseService interface {
	ListCourses(ctx context.Context) ([]query.Record, error)
	ListLatestCourses(ctx context.Context) ([]query.Record, error)
	ListRandomCourses(ctx context.Context) ([]query.Record, error)
	ListCategories(ctx context.Context) ([]query.Record, error)
	SearchCourses(ctx context.Context, opts CourseSearchOptions) ([]query.Record, error)
	GetCourseByID(ctx context.Context, id string) (query.Record, error)
}

type courseService struct {
	courseRepo repository.CourseRepository
}

func NewCourseService(courseRepo repository.CourseRepository) CourseService {
	return &courseService{courseRepo: courseRepo}
}

func (s *courseService) ListCourses(ctx context.Context) ([]query.Record, error) {
	courses, err := s.courseRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to list courses", err)
		return nil, err
	}
	return courses, nil
}

func (s *courseService) ListLatestCourses(ctx context.Context) ([]query.Record, error) {
	courses, err := s.courseRepo.FindLatest(ctx)
	if err != nil {
		logger.Error("Failed to list latest courses", err)
		return nil, err
	}
	return courses, nil
}

func (s *courseService) ListRandomCourses(ctx context.Context) ([]query.Record, error) {
	courses, err := s.courseRepo.FindRandom(ctx)
	if err != nil {
		logger.Error("Failed to list random courses", err)
		return nil, err
	}
	return courses, nil
}

func (s *courseService) ListCategories(ctx context.Context) ([]query.Record, error) {
	categories, err := s.courseRepo.FindCategories(ctx)
	if err != nil {
		logger.Error("Failed to list course categories", err)
		return nil, err
	}
	return categories, nil
}

func (s *courseService) SearchCourses(ctx context.Context, opts CourseSearchOptions) ([]query.Record, error) {
	logger.Debug("Searching courses", map[string]interface{}{
		"category_id": opts.CategoryID,
		"store_id":    opts.StoreID,
	})

	courses, err := s.courseRepo.Search(ctx, repository.CourseFilter{
		CategoryID: opts.CategoryID,
		StoreID:    opts.StoreID,
	})
	if err != nil {
		logger.Error("Failed to search courses", err, map[string]interface{}{
			"category_id": opts.CategoryID,
			"store_id":    opts.StoreID,
		})
		return nil, err
	}

	logger.Info("Courses searched", map[string]interface{}{
		"count": len(courses),
	})
	return courses, nil
}

func (s *courseService) GetCourseByID(ctx context.Context, id string) (query.Record, error) {
	logger.Debug("Fetching course by ID", map[string]interface{}{
		"course_id": id,
	})

	course, err := s.courseRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, query.ErrNotFound) {
			logger.Warn("Course not found", map[string]interface{}{
				"course_id": id,
			})
			return nil, ErrCourseNotFound
		}
		logger.Error("Failed to fetch course", err, map[string]interface{}{
			"course_id": id,
		})
		return nil, err
	}
	return course, nil
}
