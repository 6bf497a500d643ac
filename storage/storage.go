package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// exportPrefix is the key prefix under which all exports are stored
const exportPrefix = "exports"

var (
	// ErrNotFound is returned when no object exists at a storage path
	ErrNotFound = errors.New("export not found")
	// ErrInvalidPath is returned for paths outside the export prefix
	ErrInvalidPath = errors.New("invalid storage path")
)

// Storage persists rendered exports
type Storage interface {
	// Upload stores an export and returns the storage path
	Upload(ctx context.Context, exportID uuid.UUID, filename string, data io.Reader) (string, error)

	// Download retrieves an export by storage path
	Download(ctx context.Context, storagePath string) (io.ReadCloser, error)

	// Delete removes an export by storage path
	Delete(ctx context.Context, storagePath string) error
}

// StorageType represents the storage backend type
type StorageType string

const (
	StorageTypeLocal StorageType = "local"
	StorageTypeS3    StorageType = "s3"
)

// StorageConfig holds configuration for storage
type StorageConfig struct {
	Type         StorageType
	LocalPath    string // For local storage
	S3Bucket     string // For S3 storage
	S3Region     string // For S3 storage
	AWSAccessKey string
	AWSSecretKey string
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(cfg StorageConfig) (Storage, error) {
	switch cfg.Type {
	case StorageTypeLocal, "":
		return NewLocalStorage(cfg.LocalPath)
	case StorageTypeS3:
		if cfg.S3Bucket == "" {
			return nil, errors.New("AWS_S3_BUCKET is required for S3 storage")
		}
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// generateStoragePath builds exports/<id[:2]>/<id>_<name><ext>
func generateStoragePath(exportID uuid.UUID, filename string) string {
	ext := filepath.Ext(filename)
	baseName := strings.TrimSuffix(filename, ext)
	baseName = strings.ReplaceAll(baseName, " ", "_")
	baseName = strings.ReplaceAll(baseName, "/", "_")
	baseName = strings.ReplaceAll(baseName, "\\", "_")

	id := exportID.String()
	return fmt.Sprintf("%s/%s/%s_%s%s", exportPrefix, id[:2], id, baseName, ext)
}

// cleanStoragePath rejects paths that escape the export prefix
func cleanStoragePath(storagePath string) (string, error) {
	cleaned := path.Clean("/" + strings.ReplaceAll(storagePath, "\\", "/"))[1:]
	if !strings.HasPrefix(cleaned, exportPrefix+"/") {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, storagePath)
	}
	return cleaned, nil
}

// ContentType determines the MIME type of an export from its filename
func ContentType(filename string) string {
	switch filepath.Ext(filename) {
	case ".json":
		return "application/json"
	case ".md":
		return "text/markdown; charset=utf-8"
	case ".txt":
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
