package jobs

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"Qarzdorlik/internal/config"
	"Qarzdorlik/internal/logger"
	"Qarzdorlik/internal/serviceiface"
	"Qarzdorlik/internal/store"
)

// CronService runs the recurring background work: the daily exchange-rate
// refresh and the nightly state backup save.
type CronService struct {
	config map[string]interface{}
	store  *store.Store
	rates  *RateCache
	cron   *cron.Cron
}

func NewCronService(cfg map[string]interface{}, st *store.Store, rates *RateCache) serviceiface.Service {
	return &CronService{config: cfg, store: st, rates: rates}
}

func (s *CronService) Name() string {
	return "jobs"
}

func (s *CronService) Start() error {
	rateSchedule := config.DefaultRateSchedule
	backupSchedule := config.DefaultBackupSchedule
	if s.config != nil {
		if v, ok := s.config["rate_schedule"].(string); ok && v != "" {
			rateSchedule = v
		}
		if v, ok := s.config["backup_schedule"].(string); ok && v != "" {
			backupSchedule = v
		}
	}

	s.cron = cron.New()
	if _, err := s.cron.AddFunc(rateSchedule, s.rates.Refresh); err != nil {
		return fmt.Errorf("bad rate schedule %q: %w", rateSchedule, err)
	}
	if _, err := s.cron.AddFunc(backupSchedule, s.backup); err != nil {
		return fmt.Errorf("bad backup schedule %q: %w", backupSchedule, err)
	}

	// Prime the rate cache at boot instead of waiting for the first tick.
	go s.rates.Refresh()

	s.cron.Start()
	log.Printf("Jobs service started (rate refresh %q, backup %q)", rateSchedule, backupSchedule)
	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit("Jobs service started")
	}
	return nil
}

func (s *CronService) backup() {
	log.Println("[INFO] nightly state backup")
	s.store.Persist()
}

func (s *CronService) Stop() error {
	if s.cron != nil {
		s.cron.Stop()
	}
	return nil
}
