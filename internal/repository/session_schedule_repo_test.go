package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intraday-levels/config"
	"intraday-levels/internal/dto"
)

func newTestScheduleRepo() SessionScheduleRepository {
	return NewSessionScheduleRepository(&config.Config{
		Sessions: []config.Session{
			{ID: "test_utc", Name: "Test UTC", TZ: "UTC", OpenHour: 9, OpenMinute: 30, CloseHour: 16},
		},
	})
}

func TestResolveMostRecentOpen(t *testing.T) {
	repo := newTestScheduleRepo()

	now := time.Date(2026, 8, 21, 10, 0, 0, 0, time.UTC)
	sched, err := repo.Resolve("test_utc", now)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 8, 21, 9, 30, 0, 0, time.UTC), sched.StartTS)
	assert.Equal(t, time.Date(2026, 8, 21, 10, 0, 0, 0, time.UTC), sched.CalibrationEnd)
	assert.Equal(t, time.Date(2026, 8, 21, 16, 0, 0, 0, time.UTC), sched.CloseTS)
	assert.Equal(t, "2026-08-21", sched.DateKey)
}

func TestResolveBeforeOpenRollsBack(t *testing.T) {
	repo := newTestScheduleRepo()

	now := time.Date(2026, 8, 21, 8, 0, 0, 0, time.UTC)
	sched, err := repo.Resolve("test_utc", now)
	require.NoError(t, err)

	assert.Equal(t, "2026-08-20", sched.DateKey)
	assert.Equal(t, dto.SessionClosed, sched.Status(now))
}

func TestResolveUnknownSession(t *testing.T) {
	repo := newTestScheduleRepo()

	_, err := repo.Resolve("nope", time.Now())
	assert.Error(t, err)
}

func TestScheduleStatusTransitions(t *testing.T) {
	repo := newTestScheduleRepo()
	now := time.Date(2026, 8, 21, 12, 0, 0, 0, time.UTC)
	sched, err := repo.Resolve("test_utc", now)
	require.NoError(t, err)

	tests := []struct {
		name string
		at   time.Time
		want dto.SessionStatus
	}{
		{"during calibration", time.Date(2026, 8, 21, 9, 45, 0, 0, time.UTC), dto.SessionCalibrating},
		{"after lock", time.Date(2026, 8, 21, 11, 0, 0, 0, time.UTC), dto.SessionActive},
		{"after close", time.Date(2026, 8, 21, 17, 0, 0, 0, time.UTC), dto.SessionClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sched.Status(tt.at))
		})
	}
}
