package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	// DriverS3 selects the AWS S3 backend.
	DriverS3 = "s3"
	// DriverGCS selects the Google Cloud Storage backend.
	DriverGCS = "gcs"
	// DriverMinIO selects the MinIO backend.
	DriverMinIO = "minio"
)

// ErrUnknownDriver indicates an unsupported storage driver.
var ErrUnknownDriver = errors.New("storage: unknown driver")

// FactoryOptions groups configuration for storage drivers.
type FactoryOptions struct {
	// PublicBaseURL overrides the driver's default object URL (CDN, proxy).
	PublicBaseURL string
	// S3 configures the S3 backend.
	S3 S3Options
	// GCS configures the GCS backend.
	GCS GCSOptions
	// MinIO configures the MinIO backend.
	MinIO MinIOOptions
}

// NewFromDriver constructs a Storage implementation by driver name.
func NewFromDriver(ctx context.Context, driver string, opts FactoryOptions) (Storage, error) {
	switch strings.ToLower(driver) {
	case DriverS3:
		opts.S3.PublicBaseURL = firstNonEmpty(opts.S3.PublicBaseURL, opts.PublicBaseURL)
		return NewS3(ctx, opts.S3)
	case DriverGCS:
		opts.GCS.PublicBaseURL = firstNonEmpty(opts.GCS.PublicBaseURL, opts.PublicBaseURL)
		return NewGCS(ctx, opts.GCS)
	case DriverMinIO:
		opts.MinIO.PublicBaseURL = firstNonEmpty(opts.MinIO.PublicBaseURL, opts.PublicBaseURL)
		return NewMinIO(opts.MinIO)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
