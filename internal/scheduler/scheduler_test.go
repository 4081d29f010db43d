package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groupmanagement/internal/config"
	"groupmanagement/internal/jobs"
)

func runner(schedule string) *jobs.JobRunner {
	cfg := &config.Config{Scheduler: config.SchedulerConfig{SendRequestNotifications: schedule}}
	return jobs.NewJobRunner(nil, &jobs.Services{}, cfg)
}

func TestNewScheduler(t *testing.T) {
	s, err := NewScheduler(runner("0 */5 * * * *"))
	require.NoError(t, err)
	assert.True(t, s.IsRunning())

	s.Start()
	s.Stop()
}

func TestNewScheduler_InvalidSchedule(t *testing.T) {
	_, err := NewScheduler(runner("every five minutes"))
	assert.Error(t, err)
}

func TestNewScheduler_RequiresSeconds(t *testing.T) {
	_, err := NewScheduler(runner("*/5 * * * *"))
	assert.Error(t, err)
}
