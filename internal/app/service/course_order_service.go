package service

import (
	"context"

	"github.com/ikkim/catalog-backend/internal/app/query"
	"github.com/ikkim/catalog-backend/internal/app/repository"
	"github.com/ikkim/catalog-backend/pkg/logger"
)

type CourseOrderService interface {
	ListMemberOrders(ctx context.Context, memberID uint) ([]query.Record, error)
}

type courseOrderService struct {
	orderRepo repository.CourseOrderRepository
}

func NewCourseOrderService(orderRepo repository.CourseOrderRepository) CourseOrderService {
	return &courseOrderService{orderRepo: orderRepo}
}

func (s *courseOrderService) ListMemberOrders(ctx context.Context, memberID uint) ([]query.Record, error) {
	if memberID == 0 {
		return nil, ErrMemberIDRequired
	}

	orders, err := s.orderRepo.FindByMember(ctx, memberID)
	if err != nil {
		logger.Error("Failed to list course orders", err, map[string]interface{}{
			"member_id": memberID,
		})
		return nil, err
	}

	logger.Info("Course orders listed", map[string]interface{}{
		"member_id": memberID,
		"count":     len(orders),
	})
	return orders, nil
}
