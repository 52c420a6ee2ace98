package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"acnemap/internal/domain/entity"
	"acnemap/internal/domain/port"
)

// maxReadFailures число подряд неудачных чтений кадра, после которого сканер останавливается
const maxReadFailures = 5

// LiveScanner периодически снимает кадр с камеры и сканирует его.
// Тики не накладываются: пока идёт скан, пропущенные тики отбрасываются.
type LiveScanner struct {
	frames   port.FrameSource
	scans    *ScanService
	interval time.Duration
	log      *zap.Logger

	// OnResult вызывается после каждого удачного скана
	OnResult func(result *entity.ScanResult)
}

func NewLiveScanner(frames port.FrameSource, scans *ScanService, interval time.Duration, log *zap.Logger) *LiveScanner {
	return &LiveScanner{
		frames:   frames,
		scans:    scans,
		interval: interval,
		log:      log,
	}
}

// Run крутит цикл до отмены контекста. Источник кадров закрывается при любом выходе.
func (l *LiveScanner) Run(ctx context.Context) error {
	defer func() {
		if err := l.frames.Close(); err != nil {
			l.log.Warn("close frame source", zap.Error(err))
		}
	}()

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	failures := 0
	for {
		select {
		case <-ctx.Done():
			l.log.Info("live scan stopped")
			return nil
		case <-ticker.C:
		}
		if ctx.Err() != nil {
			return nil
		}

		if err := l.tick(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			failures++
			l.log.Warn("live scan tick failed", zap.Int("failures", failures), zap.Error(err))
			if failures >= maxReadFailures {
				return fmt.Errorf("live scan: %w", err)
			}
			continue
		}
		failures = 0
	}
}

func (l *LiveScanner) tick(ctx context.Context) error {
	frame, err := l.frames.Read(ctx)
	if err != nil {
		return fmt.Errorf("read frame: %w", err)
	}

	result, err := l.scans.ScanFrame(ctx, frame, ScanOptions{Snapshot: true})
	if err != nil {
		return err
	}
	if l.OnResult != nil {
		l.OnResult(result)
	}
	return nil
}
