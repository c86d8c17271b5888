// Package persistence elige el backend del almacén según la configuración.
package persistence

import (
	"context"
	"fmt"

	"github.com/zhihern080614/mochibay-backend/internal/domain/repository"
	"github.com/zhihern080614/mochibay-backend/internal/infrastructure/gormdb"
	"github.com/zhihern080614/mochibay-backend/internal/infrastructure/postgres"
	"github.com/zhihern080614/mochibay-backend/pkg/config"
)

// Open abre el almacén: PostgreSQL (pgxpool) si DATABASE_URL está definido,
// si no MySQL o SQLite vía GORM.
func Open(ctx context.Context, cfg config.DBConfig) (repository.Store, error) {
	switch cfg.Backend() {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return postgres.NewStore(pool), nil
	case config.DriverMySQL, config.DriverSQLite:
		store, err := gormdb.Open(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("driver de base de datos no soportado: %q", cfg.Driver)
	}
}
