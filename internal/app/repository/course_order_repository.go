package repository

import (
	"context"

	"github.com/ikkim/catalog-backend/internal/app/query"
	"github.com/ikkim/catalog-backend/pkg/logger"
)

// courseOrderQuery loads a member's orders. Each item sees its course with
// only the main image and only the datetimes of the period it booked.
var courseOrderQuery = query.Query{
	Entity: EntityCourseOrder,
	Include: []query.Include{
		{
			Alias:      "items",
			Attributes: []string{"id", "order_id", "course_id", "period"},
			Include: []query.Include{{
				Alias:      "course",
				Attributes: []string{"name", "price"},
				Include: []query.Include{
					{
						Alias:      "images",
						Attributes: []string{"path"},
						Where:      []query.Filter{query.Eq("is_main", true)},
					},
					{
						Alias:      "datetimes",
						Attributes: []string{"id", "period", "date", "start_time", "end_time"},
						Correlate:  &query.Correlation{Ancestor: "items", AncestorField: "period", Field: "period"},
					},
					{Alias: "store", Attributes: []string{"store_id", "store_name", "store_address"}},
				},
			}},
		},
		{Alias: "payment", Attributes: []string{"name"}},
		{Alias: "payment_status", Attributes: []string{"name"}},
		{Alias: "order_status", Attributes: []string{"name"}},
	},
}

type CourseOrderRepository interface {
	FindByMember(ctx context.Context, memberID uint) ([]query.Record, error)
}

type courseOrderRepository struct {
	composer *query.Composer
}

func NewCourseOrderRepository(composer *query.Composer) (CourseOrderRepository, error) {
	if err := validateQueries(composer.Registry(), courseOrderQuery); err != nil {
		return nil, err
	}
	return &courseOrderRepository{composer: composer}, nil
}

func (r *courseOrderRepository) FindByMember(ctx context.Context, memberID uint) ([]query.Record, error) {
	logger.Debug("Fetching course orders by member from database", map[string]interface{}{
		"member_id": memberID,
	})

	q := courseOrderQuery
	q.Where = []query.Filter{query.Eq("member_id", memberID)}

	orders, err := r.composer.Find(ctx, q)
	if err != nil {
		logFetchError("Failed to fetch course orders", err, map[string]interface{}{
			"member_id": memberID,
		})
		return nil, err
	}

	logger.Debug("Course orders fetched from database", map[string]interface{}{
		"member_id": memberID,
		"count":     len(orders),
	})
	return orders, nil
}
