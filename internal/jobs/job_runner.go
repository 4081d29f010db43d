package jobs

import (
	"groupmanagement/internal/config"
	"groupmanagement/internal/logger"
	"groupmanagement/internal/repository"
	"groupmanagement/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	uow      repository.UnitOfWork
	services *Services
	config   *config.Config
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Email service.EmailService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(uow repository.UnitOfWork, services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{
		uow:      uow,
		services: services,
		config:   cfg,
	}
}

func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAll runs every job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.SendRequestNotifications()
}
