package snapshot

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"

	"acnemap/internal/domain/port"
)

// S3Options параметры бакета. Пустые ключи: цепочка учётных данных AWS по умолчанию.
type S3Options struct {
	Region          string
	Bucket          string
	Prefix          string
	AccessKeyID     string
	SecretAccessKey string
}

// S3Store загружает снимки в бакет S3
type S3Store struct {
	uploader *s3manager.Uploader
	bucket   string
	prefix   string
}

// NewS3Store создаёт сессию AWS
func NewS3Store(opts S3Options) (*S3Store, error) {
	cfg := &aws.Config{Region: aws.String(opts.Region)}
	if opts.AccessKeyID != "" {
		cfg.Credentials = credentials.NewStaticCredentials(opts.AccessKeyID, opts.SecretAccessKey, "")
	}

	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("aws session: %w", err)
	}

	return &S3Store{
		uploader: s3manager.NewUploader(sess),
		bucket:   opts.Bucket,
		prefix:   opts.Prefix,
	}, nil
}

// Save загружает PNG и возвращает его адрес в бакете
func (s *S3Store) Save(ctx context.Context, scanID string, png []byte) (string, error) {
	out, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.prefix + fileName(scanID)),
		Body:        bytes.NewReader(png),
		ContentType: aws.String("image/png"),
	})
	if err != nil {
		return "", fmt.Errorf("upload snapshot: %w", err)
	}
	return out.Location, nil
}

var _ port.SnapshotStore = (*S3Store)(nil)
