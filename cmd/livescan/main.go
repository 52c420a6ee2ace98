package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"acnemap/config"
	app "acnemap/internal/application"
	"acnemap/internal/container"
	"acnemap/internal/domain/entity"
	"acnemap/internal/infrastructure/camera"
	"acnemap/internal/logger"
)

// livescan снимает кадры с камеры и периодически сканирует их.
// Камера доступна только в сборке с тегом gocv.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Mode, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("live scan stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appContainer, err := container.New(cfg, log)
	if err != nil {
		return fmt.Errorf("build container: %w", err)
	}
	defer appContainer.Close()

	capture, err := camera.NewCapture(cfg.CameraIndex, cfg.CameraWidth, cfg.CameraHeight)
	if err != nil {
		return fmt.Errorf("open camera %d: %w", cfg.CameraIndex, err)
	}
	log.Info("camera opened",
		zap.Int("device", cfg.CameraIndex),
		zap.Int("width", capture.Width()),
		zap.Int("height", capture.Height()))

	live := app.NewLiveScanner(capture, appContainer.ScanService, cfg.ScanInterval, log)
	live.OnResult = func(result *entity.ScanResult) {
		if !result.FaceFound {
			return
		}
		log.Info("advice",
			zap.String("scan_id", result.ID),
			zap.Strings("regions", regionNames(result.Advice.Regions())),
			zap.String("snapshot", result.SnapshotURL))
	}
	return live.Run(ctx)
}

func regionNames(names []entity.RegionName) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = string(n)
	}
	return out
}
