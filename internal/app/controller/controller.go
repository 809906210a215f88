package controller

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/catalog-backend/internal/app/query"
	apperrors "github.com/ikkim/catalog-backend/internal/errors"
	"github.com/ikkim/catalog-backend/pkg/logger"
)

// respondError logs err at the level its class deserves and writes the error
// envelope. Only unclassified failures are logged as errors.
func respondError(c *gin.Context, log *logger.Logger, msg string, err error, notFoundMessage string, fields map[string]interface{}) {
	switch {
	case errors.Is(err, query.ErrNotFound), errors.Is(err, query.ErrQuery):
		if fields == nil {
			fields = map[string]interface{}{}
		}
		fields["error"] = err.Error()
		log.Warn(msg, fields)
	default:
		log.Error(msg, err, fields)
	}
	apperrors.RespondWithErr(c, err, notFoundMessage)
}

// parseUintQuery reads an optional unsigned query parameter. A missing or
// empty value yields ok=false with no error.
func parseUintQuery(c *gin.Context, name string) (value uint, ok bool, err error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false, err
	}
	return uint(v), true, nil
}
