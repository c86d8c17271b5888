// Package storage contiene los adaptadores de ports.ReceiptStore: disco local (por defecto) y S3.
package storage

import (
	"context"
	"fmt"

	"github.com/zhihern080614/mochibay-backend/internal/application/ports"
	"github.com/zhihern080614/mochibay-backend/pkg/config"
)

// New elige el almacén de comprobantes según STORAGE_DRIVER.
func New(ctx context.Context, cfg config.StorageConfig) (ports.ReceiptStore, error) {
	switch cfg.Driver {
	case config.StorageS3:
		return NewS3Bucket(ctx, cfg.S3)
	case config.StorageLocal, "":
		return NewLocalDisk(cfg.UploadsDir)
	default:
		return nil, fmt.Errorf("storage: driver %q no soportado", cfg.Driver)
	}
}
