package stats

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lens/internal/config/logger"
)

func newStatsTestLogger(ctrl *gomock.Controller) logger.Logger {
	mockLog := logger.NewMockLogger(ctrl)
	componentLog := logger.NewMockLogger(ctrl)
	mockLog.EXPECT().WithComponent(gomock.Any()).Return(componentLog).AnyTimes()
	componentLog.EXPECT().Debug().Return(nil).AnyTimes()

	return mockLog
}

func Test_NewCollector(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c := NewCollector(newStatsTestLogger(ctrl))
	require.NotNil(t, c)

	impl := c.(*collector)
	assert.Equal(t, os.Getpid(), impl.pid)
	assert.False(t, impl.startedAt.IsZero())
}

func Test_Collector_Snapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c := NewCollector(newStatsTestLogger(ctrl))

	time.Sleep(10 * time.Millisecond)
	snap := c.Snapshot()

	assert.Equal(t, os.Getpid(), snap.PID)
	assert.Greater(t, snap.Goroutines, 0)
	assert.Greater(t, snap.Uptime, time.Duration(0))
	assert.GreaterOrEqual(t, snap.CPUPercent, 0.0)
	assert.GreaterOrEqual(t, snap.MemoryRSS, uint64(0))
}

func Test_Collector_Snapshot_InvalidPID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c := &collector{
		pid:       -1,
		startedAt: time.Now(),
		log:       newStatsTestLogger(ctrl).WithComponent("STATS"),
	}

	snap := c.Snapshot()

	assert.Equal(t, -1, snap.PID)
	assert.Zero(t, snap.CPUPercent)
	assert.Zero(t, snap.MemoryRSS)
	assert.Greater(t, snap.Goroutines, 0)
}

func Test_FormatMemory(t *testing.T) {
	tests := []struct {
		name     string
		bytes    uint64
		expected string
	}{
		{"Bytes", 512, "  512B"},
		{"Kilobytes", 2048, "2.00 Kb"},
		{"Megabytes", 10 * 1024 * 1024, "10.0 Mb"},
		{"Gigabytes", 5 * 1024 * 1024 * 1024, "5.00 Gb"},
		{"Large megabytes", 150 * 1024 * 1024, " 150 Mb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatMemory(tt.bytes)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func Test_FormatUptime(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{"Seconds", 30 * time.Second, "30s"},
		{"Minutes and seconds", 2*time.Minute + 15*time.Second, "2m15s"},
		{"Hours and minutes", 3*time.Hour + 45*time.Minute, "3h45m"},
		{"One second", 1 * time.Second, "1s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatUptime(tt.duration)
			assert.Equal(t, tt.expected, result)
		})
	}
}
