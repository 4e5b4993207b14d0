// Package storage stores uploaded media (product and profile images) behind
// a small driver interface. Models persist only the opaque key; URLs are
// resolved at read time by the active driver.
package storage

import (
	"fmt"
	"io"
)

// Storage is the media storage driver interface.
type Storage interface {
	Put(key string, r io.Reader) error
	Get(key string) (io.ReadCloser, error)
	Delete(key string) error
	URL(key string) string
}

// Config selects and configures a driver.
type Config struct {
	Driver string // "local" or "s3"

	// local driver
	LocalPath string

	// s3 driver; Endpoint is only set for S3-compatible stores (MinIO, R2).
	S3Bucket   string
	S3Region   string
	S3Key      string
	S3Secret   string
	S3Endpoint string
	S3BaseURL  string
}

// New builds the configured driver.
func New(cfg Config) (Storage, error) {
	switch cfg.Driver {
	case "", "local":
		return newLocalDisk(cfg.LocalPath)
	case "s3":
		return newS3Disk(cfg)
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}
