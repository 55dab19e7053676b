package scheduler

import (
	"github.com/MATrsx/freegameping/internal/config"
	"github.com/MATrsx/freegameping/internal/scan"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Service triggers scheduled scan runs
type Service struct {
	config *config.Config
	scans  *scan.Service
	cron   *cron.Cron
}

// NewService creates a new scheduler service
func NewService(cfg *config.Config, scans *scan.Service) *Service {
	return &Service{
		config: cfg,
		scans:  scans,
		cron:   cron.New(cron.WithSeconds()),
	}
}

// Start begins the scheduled scans
func (s *Service) Start() error {
	_, err := s.cron.AddFunc(s.config.ScanSchedule, func() {
		runID, started := s.scans.TriggerAsync("scheduled")
		if !started {
			// A manual scan (or a slow previous tick) holds the lock;
			// this tick is dropped, the next one will catch up.
			logrus.Warn("Skipping scheduled scan: another scan is still running")
			return
		}
		logrus.Infof("Scheduled scan %s started", runID)
	})

	if err != nil {
		return err
	}

	s.cron.Start()
	logrus.Infof("Scheduler started with schedule %q", s.config.ScanSchedule)
	return nil
}

// Stop stops the scheduler
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		logrus.Info("Scheduler stopped")
	}
}
