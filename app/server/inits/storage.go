package inits

import (
	"context"
	"fmt"
	"library-articles/app/server/config"
	"library-articles/app/server/storage"

	"go.uber.org/zap"
)

// Storage picks S3 when a bucket is configured, the local directory otherwise.
func Storage(ctx context.Context, cfg *config.Config, l *zap.Logger) (storage.Store, error) {
	up := cfg.Upload

	if up.S3Bucket != "" {
		s, err := storage.NewS3(ctx, storage.S3Config{
			Bucket:    up.S3Bucket,
			Region:    up.S3Region,
			Endpoint:  up.S3Endpoint,
			AccessKey: up.S3AccessKey,
			SecretKey: up.S3SecretKey,
			PublicURL: up.S3PublicURL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to init s3 storage: %w", err)
		}
		l.Info("uploads go to s3", zap.String("bucket", up.S3Bucket))
		return s, nil
	}

	s, err := storage.NewLocal(up.Dir, up.URLPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to init local storage: %w", err)
	}
	l.Info("uploads go to local directory", zap.String("dir", up.Dir))
	return s, nil
}
