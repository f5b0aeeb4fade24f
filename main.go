package main

import (
	"context"
	"net/http"
	"time"

	"vidserve/archive"
	"vidserve/catalog"
	"vidserve/config"
	"vidserve/credentials"
	"vidserve/encoder"
	"vidserve/history"
	"vidserve/logger"
	"vidserve/metadata"
	"vidserve/namespace"
	"vidserve/routes"
	"vidserve/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}
	if err := logger.Init(cfg.LogLevel, cfg.LogFile); err != nil {
		logger.Fatalf("Failed to initialize logger: %v", err)
	}
	logger.Info("Starting vidserve initialization")

	creds, err := credentials.Open(cfg.CredentialsDBPath())
	if err != nil {
		logger.Fatalf("Failed to initialize credential store: %v", err)
	}
	defer creds.Close()
	if err := creds.Seed(cfg.SeedUsers); err != nil {
		logger.Fatalf("Failed to seed credentials: %v", err)
	}
	logger.Info("Credential store initialized")

	hist, err := history.Open(cfg.HistoryDBPath())
	if err != nil {
		logger.Fatalf("Failed to initialize history store: %v", err)
	}
	defer hist.Close()
	logger.Info("History store initialized")

	runner, err := encoder.NewFFmpeg(cfg.FFmpegPath)
	if err != nil {
		logger.Fatalf("Encoder unavailable: %v", err)
	}

	ns := namespace.NewManager(cfg.OutputDir, cfg.UploadDir)
	meta := metadata.NewStore()
	arch := archive.New(cfg.Archive)
	if arch.Enabled() {
		logger.Infof("Output archival enabled (backend: %s)", cfg.Archive.Backend)
	}
	orch := encoder.NewOrchestrator(ns, meta, runner, hist, arch)
	cat := catalog.NewService(ns, meta)
	tokens := token.NewService(cfg.TokenSecret, cfg.TokenTTL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go cleanupRoutine(ctx, hist)

	handler := routes.New(cfg, creds, tokens, ns, orch, cat, hist)

	logger.Infof("vidserve listening on %s", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, handler.Router()); err != nil {
		logger.Fatalf("Server failed: %v", err)
	}
}

// cleanupRoutine periodically purges old history records.
func cleanupRoutine(ctx context.Context, hist *history.Store) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			maxAge := 30 * 24 * time.Hour
			logger.Debugf("Cleaning up history records older than %v", maxAge)
			if err := hist.CleanupOldRecords(maxAge); err != nil {
				logger.Errorf("Failed to clean up old history records: %v", err)
			}
		}
	}
}
