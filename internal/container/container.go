package container

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"acnemap/config"
	app "acnemap/internal/application"
	"acnemap/internal/domain/analysis"
	"acnemap/internal/domain/port"
	"acnemap/internal/infrastructure/cache"
	"acnemap/internal/infrastructure/imageio"
	"acnemap/internal/infrastructure/remedy"
	"acnemap/internal/infrastructure/snapshot"
	"acnemap/internal/infrastructure/storage"
	"acnemap/internal/infrastructure/vision"
)

type Container struct {
	UserService *app.UserService
	ScanService *app.ScanService

	closers []func() error
}

// New собирает сервисы приложения по конфигу
func New(cfg *config.Config, log *zap.Logger) (*Container, error) {
	c := &Container{}

	book, err := remedy.Load(cfg.RemediesPath)
	if err != nil {
		return nil, err
	}

	registry, err := analysis.NewRegistry()
	if err != nil {
		return nil, err
	}

	source, err := newSource(cfg, log)
	if err != nil {
		return nil, err
	}
	if source != nil {
		c.closers = append(c.closers, source.Close)
	}

	scans := app.NewScanService(source, registry, book, imageio.NewCodec(cfg.MaxImageSide), log).
		WithThreshold(cfg.AdviceThreshold).
		WithCache(c.newCache(cfg, log))

	store, err := newSnapshotStore(cfg)
	if err != nil {
		c.Close()
		return nil, err
	}
	if store != nil {
		scans.WithSnapshots(store)
	}

	c.UserService = app.NewUserService(storage.NewMemoryUserRepository())
	c.ScanService = scans
	return c, nil
}

// Close освобождает детектор и соединения
func (c *Container) Close() error {
	var first error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	c.closers = nil
	return first
}

func newSource(cfg *config.Config, log *zap.Logger) (port.LandmarkSource, error) {
	switch cfg.Detector {
	case "pigo":
		source, err := vision.NewPigoSource(cfg.PigoCascadeDir, log)
		if err != nil {
			return nil, fmt.Errorf("%w (PIGO_CASCADE_DIR must hold facefinder and optionally puploc from github.com/esimov/pigo/cascade, or set DETECTOR=none)", err)
		}
		return source, nil
	case "gocv":
		return vision.NewGoCVSource(cfg.HaarCascadePath)
	case "none":
		log.Warn("landmark detector disabled, only client landmarks are accepted")
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown detector %q", cfg.Detector)
	}
}

// newCache выбирает Redis, если он задан и отвечает, иначе кэш в памяти
func (c *Container) newCache(cfg *config.Config, log *zap.Logger) port.ScanCache {
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedisCache(cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.CacheTTL,
		}, log)

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn("redis connection failed, using memory cache", zap.Error(err))
			_ = redisCache.Close()
		} else {
			log.Info("redis connected successfully")
			c.closers = append(c.closers, redisCache.Close)
			return redisCache
		}
	}
	return cache.NewMemoryCache(cfg.CacheTTL)
}

// newSnapshotStore выбирает S3, если задан бакет, иначе каталог. Без обоих снимки не сохраняются.
func newSnapshotStore(cfg *config.Config) (port.SnapshotStore, error) {
	switch {
	case cfg.AWSBucketName != "":
		return snapshot.NewS3Store(snapshot.S3Options{
			Region: cfg.AWSRegion,
			Bucket: cfg.AWSBucketName,
			Prefix: "scans/",
		})
	case cfg.SnapshotDir != "":
		return snapshot.NewFSStore(cfg.SnapshotDir)
	default:
		return nil, nil
	}
}
