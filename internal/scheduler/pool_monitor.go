package scheduler

import (
	"database/sql"
	"fmt"

	"github.com/ikkim/catalog-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// StatsSource 커넥션 풀 통계 제공자 (*sql.DB)
type StatsSource interface {
	Stats() sql.DBStats
}

// PoolMonitor DB 커넥션 풀 상태 주기 로깅 스케줄러
type PoolMonitor struct {
	cron     *cron.Cron
	schedule string
	source   StatsSource
}

// NewPoolMonitor 풀 모니터 생성
func NewPoolMonitor(schedule string, source StatsSource) *PoolMonitor {
	return &PoolMonitor{
		cron:     cron.New(),
		schedule: schedule,
		source:   source,
	}
}

// Start 스케줄러 시작
func (m *PoolMonitor) Start() error {
	if _, err := m.cron.AddFunc(m.schedule, m.Report); err != nil {
		logger.Error("Failed to add cron job for pool monitor", err, map[string]interface{}{
			"schedule": m.schedule,
		})
		return fmt.Errorf("invalid pool monitor schedule %q: %w", m.schedule, err)
	}

	m.cron.Start()
	logger.Info("Pool monitor started", map[string]interface{}{
		"schedule": m.schedule,
	})
	return nil
}

// Report 현재 풀 통계를 한 번 기록
// 대기가 발생했으면 Warn, 아니면 Debug
func (m *PoolMonitor) Report() {
	stats := m.source.Stats()
	fields := map[string]interface{}{
		"open":           stats.OpenConnections,
		"in_use":         stats.InUse,
		"idle":           stats.Idle,
		"max_open":       stats.MaxOpenConnections,
		"wait_count":     stats.WaitCount,
		"wait_duration":  stats.WaitDuration.String(),
		"max_idle_close": stats.MaxIdleClosed,
	}

	if stats.WaitCount > 0 {
		logger.Warn("Database pool has waiting callers", fields)
		return
	}
	logger.Debug("Database pool stats", fields)
}

// Stop 스케줄러 중지
func (m *PoolMonitor) Stop() {
	logger.Info("Stopping pool monitor...", nil)
	<-m.cron.Stop().Done()
	logger.Info("Pool monitor stopped", nil)
}
