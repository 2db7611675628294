package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"PatternSentinel/internal/collector"
	"PatternSentinel/internal/recorder"
	"PatternSentinel/internal/results"
	"PatternSentinel/internal/scan"
)

// Scheduler runs the scan pipeline on a cron schedule.
type Scheduler struct {
	Cron       *cron.Cron
	Loader     collector.Loader
	Pipeline   *scan.Pipeline
	Recorder   recorder.Recorder
	ReportPath string
	Ctx        context.Context

	log zerolog.Logger
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, loader collector.Loader, pipe *scan.Pipeline, rec recorder.Recorder, reportPath string, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		Cron:       cron.New(cron.WithSeconds()),
		Loader:     loader,
		Pipeline:   pipe,
		Recorder:   rec,
		ReportPath: reportPath,
		Ctx:        ctx,
		log:        log,
	}
}

// Register registers the scan task under the given cron expression.
func (s *Scheduler) Register(scanCron string) error {
	if _, err := s.Cron.AddFunc(scanCron, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running scan to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info().Msg("scheduler stopped")
}

// RunNow executes the scan task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.scanTask()
}

func (s *Scheduler) scanTask() {
	s.log.Info().Str("loader", s.Loader.Name()).Msg("running scan")

	charts, skipped, err := s.Loader.Load()
	if err != nil {
		s.log.Error().Err(err).Msg("load charts")
		return
	}

	report, err := s.Pipeline.Run(s.Ctx, charts, skipped)
	if err != nil {
		s.log.Error().Err(err).Msg("scan aborted")
		return
	}

	if err := results.Save(s.ReportPath, report); err != nil {
		s.log.Error().Err(err).Msg("save report")
	}
	if err := s.Recorder.RecordScan(report); err != nil {
		s.log.Error().Err(err).Msg("record scan")
	}

	s.log.Info().
		Int("scanned", report.Scanned).
		Int("skipped", report.Skipped).
		Int("candlestick", report.CandlestickTotal).
		Int("cup_handle", report.CupHandleTotal).
		Msg("scan complete")
}
