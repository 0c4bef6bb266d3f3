package worker

import (
	"context"
	"fmt"
	"os"
	"time"

	"kishi-backend/models"
	"kishi-backend/utils/logger"

	"github.com/google/uuid"
	"github.com/robfig/cron"
)

// Service runs the infrastructure worker: a provisioning pass at startup and
// a periodic re-check on a cron schedule, serialized through a file lock.
type Service struct {
	config      *models.Config
	logger      logger.Logger
	cronJob     *cron.Cron
	lockManager *LockManager
	setup       *InfrastructureSetup
	ownerID     string
	cancel      context.CancelFunc
	ctx         context.Context
}

// NewService creates the infrastructure worker
func NewService(ctx context.Context, cfg *models.Config, log logger.Logger) (*Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if log == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	// Unique owner ID for this instance
	hostname := os.Getenv("HOSTNAME")
	if hostname == "" {
		hostname = "localhost"
	}
	ownerID := fmt.Sprintf("worker-%s-%s", hostname, uuid.New().String()[:8])

	setup, err := NewInfrastructureSetup(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create infrastructure setup: %w", err)
	}

	lockManager := NewLockManager(
		fmt.Sprintf("/tmp/kishi-infrastructure-%s.lock", cfg.AppEnv),
		30*time.Minute,
		cfg.AppEnv,
	)

	ctx, cancel := context.WithCancel(ctx)

	return &Service{
		config:      cfg,
		logger:      log,
		cronJob:     cron.New(),
		lockManager: lockManager,
		setup:       setup,
		ownerID:     ownerID,
		ctx:         ctx,
		cancel:      cancel,
	}, nil
}

// StartInBackground runs the provisioning pass immediately and schedules the
// periodic re-check. It returns once the scheduler is running.
func (s *Service) StartInBackground() error {
	schedule := cronScheduleForEnvironment(s.config.AppEnv)

	if err := s.cronJob.AddFunc(schedule, s.runSetupJob); err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	go s.runSetupJob()
	s.cronJob.Start()

	s.logger.Infof("Infrastructure worker started (owner %s, schedule %q)", s.ownerID, schedule)
	return nil
}

// Stop halts the scheduler and releases the lock if held
func (s *Service) Stop() {
	s.cronJob.Stop()
	s.cancel()
	if err := s.lockManager.ReleaseLock(s.ownerID); err != nil {
		s.logger.Warnf("Failed to release provisioning lock: %v", err)
	}
	s.logger.Info("Infrastructure worker stopped")
}

func (s *Service) runSetupJob() {
	if err := s.lockManager.CleanupExpiredLocks(); err != nil {
		s.logger.Warnf("Failed to clean up expired locks: %v", err)
	}

	if _, err := s.lockManager.AcquireLock(s.ownerID); err != nil {
		s.logger.Infof("Skipping provisioning run: %v", err)
		return
	}
	defer func() {
		if err := s.lockManager.ReleaseLock(s.ownerID); err != nil {
			s.logger.Warnf("Failed to release provisioning lock: %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(s.ctx, 5*time.Minute)
	defer cancel()

	if err := s.setup.EnsureTables(ctx); err != nil {
		s.logger.Errorf("Infrastructure provisioning failed: %v", err)
		return
	}
	s.logger.Info("Infrastructure verified")
}

// cronScheduleForEnvironment re-checks more often outside production, where
// local DynamoDB containers come and go.
func cronScheduleForEnvironment(env string) string {
	if env == "production" {
		return "@every 6h"
	}
	return "@every 1h"
}
