package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/ikkim/catalog-backend/internal/app/service"
	apperrors "github.com/ikkim/catalog-backend/internal/errors"
	"github.com/ikkim/catalog-backend/internal/middleware"
)

type CourseOrderController struct {
	orderService service.CourseOrderService
}

func NewCourseOrderController(orderService service.CourseOrderService) *CourseOrderController {
	return &CourseOrderController{
		orderService: orderService,
	}
}

// GetMemberOrders returns the course orders of one member. An authenticated
// member always sees their own orders; guests must pass memberId.
// GET /course-orders?memberId=
func (ctrl *CourseOrderController) GetMemberOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	memberID, ok := middleware.GetMemberID(c)
	if !ok {
		id, _, err := parseUintQuery(c, "memberId")
		if err != nil {
			log.Warn("Invalid member ID format", map[string]interface{}{
				"member_id": c.Query("memberId"),
			})
			apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid memberId")
			return
		}
		memberID = id
	}
	if memberID == 0 {
		log.Warn("Member ID missing", map[string]interface{}{
			"path": c.Request.URL.Path,
		})
		apperrors.BadRequest(c, apperrors.ValidationRequired, "memberId is required")
		return
	}

	orders, err := ctrl.orderService.ListMemberOrders(c.Request.Context(), memberID)
	if err != nil {
		respondError(c, log, "Failed to fetch course orders", err, "", map[string]interface{}{
			"member_id": memberID,
		})
		return
	}

	log.Info("Course orders fetched successfully", map[string]interface{}{
		"member_id": memberID,
		"count":     len(orders),
	})
	apperrors.RespondSuccess(c, orders)
}
