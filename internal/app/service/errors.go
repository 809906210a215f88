package service

import (
	"fmt"

	"github.com/ikkim/catalog-backend/internal/app/query"
)

// Domain errors wrap the query sentinels so the HTTP layer can map them by
// class while callers still match the specific error.
var (
	ErrCourseNotFound     = fmt.Errorf("course %w", query.ErrNotFound)
	ErrProductNotFound    = fmt.Errorf("product %w", query.ErrNotFound)
	ErrInvalidProductSort = fmt.Errorf("%w: unsupported product sort", query.ErrQuery)
	ErrMemberIDRequired   = fmt.Errorf("%w: member id is required", query.ErrQuery)
)
