package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string
	HTTPAddr      string
	Mode          string // debug | release
	LogFile       string

	Detector        string // pigo | gocv | none
	PigoCascadeDir  string
	HaarCascadePath string
	RemediesPath    string

	AdviceThreshold float64
	MaxImageSide    int
	MaxUploadSize   int64

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	SnapshotDir   string
	AWSRegion     string
	AWSBucketName string

	CameraIndex  int
	CameraWidth  int
	CameraHeight int
	ScanInterval time.Duration
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken:   os.Getenv("TELEGRAM_TOKEN"),
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		Mode:            getEnv("APP_MODE", "debug"),
		LogFile:         os.Getenv("LOG_FILE"),
		Detector:        getEnv("DETECTOR", "pigo"),
		PigoCascadeDir:  getEnv("PIGO_CASCADE_DIR", "./cascade"),
		HaarCascadePath: getEnv("HAAR_CASCADE_PATH", "./cascade/haarcascade_frontalface_default.xml"),
		RemediesPath:    os.Getenv("REMEDIES_PATH"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		SnapshotDir:     os.Getenv("SNAPSHOT_DIR"),
		AWSRegion:       os.Getenv("AWS_REGION"),
		AWSBucketName:   os.Getenv("AWS_BUCKET_NAME"),
	}

	var err error
	if cfg.AdviceThreshold, err = getFloat("ADVICE_THRESHOLD", 0.08); err != nil {
		return nil, err
	}
	if cfg.MaxImageSide, err = getInt("MAX_IMAGE_SIDE", 1024); err != nil {
		return nil, err
	}
	uploadMB, err := getInt("MAX_UPLOAD_MB", 10)
	if err != nil {
		return nil, err
	}
	cfg.MaxUploadSize = int64(uploadMB) * 1024 * 1024
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getDuration("CACHE_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.CameraIndex, err = getInt("CAMERA_INDEX", 0); err != nil {
		return nil, err
	}
	if cfg.CameraWidth, err = getInt("CAMERA_WIDTH", 640); err != nil {
		return nil, err
	}
	if cfg.CameraHeight, err = getInt("CAMERA_HEIGHT", 480); err != nil {
		return nil, err
	}
	if cfg.ScanInterval, err = getDuration("SCAN_INTERVAL", time.Second); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
