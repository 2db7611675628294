package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"PatternSentinel/internal/candlestick"
	"PatternSentinel/internal/collector"
	"PatternSentinel/internal/config"
	"PatternSentinel/internal/cuphandle"
	"PatternSentinel/internal/logging"
	"PatternSentinel/internal/recorder"
	"PatternSentinel/internal/scan"
	"PatternSentinel/internal/scheduler"
)

func main() {
	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation: %v", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("init logging: %v", err)
	}
	logger.Info().Str("config", cfgPath).Msg("PatternSentinel starting")

	// Init chart loader
	loader := collector.NewDirLoader(cfg.Charts.Dir, logger)

	// Init scan pipeline
	pipe := scan.NewPipeline(
		candlestick.NewScanner(candlestick.NewDetector(cfg.Candlestick)),
		cuphandle.NewDetector(cfg.CupHandle),
		cfg.Scan.Workers,
		logger,
	)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("sqlite recorder unavailable, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched := scheduler.NewScheduler(ctx, loader, pipe, rec, cfg.Scan.ReportPath, logger)

	// One-shot mode: scan once and exit.
	if cfg.Scan.Once {
		sched.RunNow()
		return
	}

	if err := sched.Register(cfg.Scan.Cron); err != nil {
		logger.Fatal().Err(err).Msg("register scan task")
	}
	sched.Start()
	defer sched.Stop()

	if cfg.Scan.RunOnStart {
		logger.Info().Msg("run_on_start enabled, scanning now")
		go sched.RunNow()
	}

	logger.Info().Str("cron", cfg.Scan.Cron).Msg("PatternSentinel is running")

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received, stopping")
}
