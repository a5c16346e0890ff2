package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"EconLab/internal/config"
	"EconLab/internal/recorder"
	"EconLab/internal/scheduler"
	"EconLab/internal/session"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] EconLab starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init recorder
	var rec recorder.Recorder
	switch {
	case cfg.Database.SQLitePath != "":
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	case cfg.Export.CSVDir != "":
		cr, err := recorder.NewCSVRecorder(cfg.Export.CSVDir)
		if err != nil {
			log.Printf("[WARN] init csv recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = cr
		}
	default:
		rec = recorder.NewNoopRecorder()
	}

	// Init session manager
	sess, err := session.NewManager(cfg.Session.StateFile)
	if err != nil {
		log.Fatalf("[FATAL] init session manager: %v", err)
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, cfg, rec, sess)

	// Run every enabled scenario once
	sched.RunAllNow()

	if v := os.Getenv("REPORT_PATH"); v != "" {
		if err := sess.ExportText(v); err != nil {
			log.Printf("[ERROR] export session report: %v", err)
		} else {
			log.Printf("[INFO] session report written to %s", v)
		}
	}

	// Without the feed this is a one-shot run
	if !cfg.Feed.Enabled {
		log.Println("[INFO] EconLab done")
		return
	}

	// Start the cron demo feed
	if err := sched.RegisterFeed(); err != nil {
		log.Fatalf("[FATAL] register feed task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	log.Println("[INFO] EconLab feed is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] EconLab stopped")
}
