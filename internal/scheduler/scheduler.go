package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/onionprice/internal/config"
)

const backupTimeout = 2 * time.Minute

// Backupper copies the persisted history under another key.
type Backupper interface {
	Backup(ctx context.Context, destKey string) error
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron      *cron.Cron
	history   Backupper
	schedule  string
	backupKey string
	logger    *zap.Logger
}

// NewScheduler creates a new scheduler instance running in the configured time zone.
func NewScheduler(cfg config.Config, history Backupper, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Backup.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", cfg.Backup.Timezone, err)
	}

	// Standard 5-field cron expressions (min, hour, dom, month, dow).
	c := cron.New(cron.WithLocation(loc))

	return &Scheduler{
		cron:      c,
		history:   history,
		schedule:  cfg.Backup.CronSchedule,
		backupKey: cfg.Store.BackupKey(),
		logger:    logger,
	}, nil
}

// Start registers the backup job and starts the scheduler. An empty schedule disables it.
func (s *Scheduler) Start() error {
	if s.schedule == "" {
		s.logger.Info("history backup disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, s.backupHistory); err != nil {
		return fmt.Errorf("schedule history backup %q: %w", s.schedule, err)
	}

	s.logger.Info("starting scheduler", zap.String("backup_schedule", s.schedule), zap.String("backup_key", s.backupKey))
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running backup to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) backupHistory() {
	ctx, cancel := context.WithTimeout(context.Background(), backupTimeout)
	defer cancel()

	if err := s.history.Backup(ctx, s.backupKey); err != nil {
		s.logger.Error("failed to back up history", zap.Error(err))
		return
	}
	s.logger.Info("history backed up", zap.String("key", s.backupKey))
}
