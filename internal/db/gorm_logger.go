package db

import (
	"fmt"
	"time"

	appLogger "github.com/ikkim/catalog-backend/pkg/logger"
	"gorm.io/gorm/logger"
)

// gormWriter routes GORM's own log lines through the application logger.
type gormWriter struct{}

func (gormWriter) Printf(format string, args ...interface{}) {
	appLogger.Warn("gorm", map[string]interface{}{
		"detail": fmt.Sprintf(format, args...),
	})
}

// newGormLogger reports slow statements and driver errors. Record-not-found
// is an expected outcome of FindByPK and stays quiet.
func newGormLogger(slowThreshold time.Duration) logger.Interface {
	return logger.New(gormWriter{}, logger.Config{
		SlowThreshold:             slowThreshold,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
