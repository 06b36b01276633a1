// Package storage keeps generated files such as payslip PDFs, either on the
// local filesystem or in an S3 compatible bucket.
package storage

import (
	"context"
	"errors"
	"fmt"

	"go-hrms/internal/config"

	"go.uber.org/zap"
)

var ErrObjectNotFound = errors.New("storage: object not found")

type Storage interface {
	// Put stores data under key and returns a URL clients can use to reach it.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
}

// New picks the driver named by cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (Storage, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocal(cfg.LocalDir, cfg.PublicBaseURL)
	case "s3":
		return NewS3(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}
