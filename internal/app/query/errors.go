package query

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a single-entity fetch matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrQuery is returned for filters or include paths that do not resolve
	// against the registry and for malformed primary key values.
	ErrQuery = errors.New("invalid query")
	// ErrStorageUnavailable covers connection failures and fetch timeouts.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ConfigurationError reports a relation declaration or a static include tree
// that does not match the schema. It is raised at startup only.
type ConfigurationError struct {
	Entity string
	Alias  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Alias == "" {
		return fmt.Sprintf("relation config: %s: %s", e.Entity, e.Reason)
	}
	return fmt.Sprintf("relation config: %s.%s: %s", e.Entity, e.Alias, e.Reason)
}

func queryErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrQuery, fmt.Sprintf(format, args...))
}

// classify maps driver level failures onto the package error taxonomy.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, ErrQuery) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrStorageUnavailable) {
		return err
	}
	if isUnavailable(err) {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return err
}

func isUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	if pgconn.Timeout(err) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
