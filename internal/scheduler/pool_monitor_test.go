package scheduler

import (
	"database/sql"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStats struct {
	calls atomic.Int32
	stats sql.DBStats
}

func (f *fakeStats) Stats() sql.DBStats {
	f.calls.Add(1)
	return f.stats
}

func TestPoolMonitor_InvalidSchedule(t *testing.T) {
	m := NewPoolMonitor("not a schedule", &fakeStats{})
	assert.Error(t, m.Start())
}

func TestPoolMonitor_Report(t *testing.T) {
	tests := []struct {
		name  string
		stats sql.DBStats
	}{
		{"idle pool", sql.DBStats{OpenConnections: 2, Idle: 2, MaxOpenConnections: 10}},
		{"waiting callers", sql.DBStats{OpenConnections: 10, InUse: 10, WaitCount: 3, WaitDuration: time.Second}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &fakeStats{stats: tt.stats}
			NewPoolMonitor("@every 1m", source).Report()
			assert.Equal(t, int32(1), source.calls.Load())
		})
	}
}

func TestPoolMonitor_RunsOnSchedule(t *testing.T) {
	source := &fakeStats{}
	m := NewPoolMonitor("@every 1s", source)
	require.NoError(t, m.Start())
	defer m.Stop()

	assert.Eventually(t, func() bool {
		return source.calls.Load() > 0
	}, 3*time.Second, 50*time.Millisecond)
}
