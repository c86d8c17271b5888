package gormdb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/zhihern080614/mochibay-backend/internal/domain/repository"
	"github.com/zhihern080614/mochibay-backend/pkg/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ repository.Store = (*Store)(nil)

// Store backend GORM: MySQL en despliegue, SQLite para desarrollo local y tests.
type Store struct {
	db     *gorm.DB
	users  *UserRepo
	orders *OrderRepo
}

// Open abre la base según cfg.Driver y configura el pool (cfg.MaxConns conexiones como máximo).
func Open(ctx context.Context, cfg config.DBConfig) (*Store, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverMySQL:
		dialector = mysql.Open(cfg.MySQLDSN())
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DBName)
	default:
		return nil, fmt.Errorf("gormdb: driver %q no soportado", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent), // se registra con pkg/logger, no con el de GORM
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("gormdb: open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("gormdb: get sql.DB: %w", err)
	}
	if cfg.Driver == config.DriverSQLite {
		// un único escritor; además ":memory:" es una base distinta por conexión,
		// así que la conexión no debe reciclarse
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxConns)
		sqlDB.SetMaxIdleConns(cfg.MaxConns)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
		sqlDB.SetConnMaxIdleTime(2 * time.Minute)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("gormdb: ping: %w", err)
	}
	return NewStore(db), nil
}

// NewStore construye el backend sobre una conexión GORM existente.
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:     db,
		users:  NewUserRepository(db),
		orders: NewOrderRepository(db),
	}
}

// Users devuelve el repositorio de usuarios.
func (s *Store) Users() repository.UserRepository { return s.users }

// Orders devuelve el repositorio de pedidos.
func (s *Store) Orders() repository.OrderRepository { return s.orders }

// Migrate crea o ajusta las tablas users y orders.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&userModel{}, &orderModel{}); err != nil {
		return fmt.Errorf("gormdb: migrar esquema: %w", err)
	}
	return nil
}

// Ping verifica la conexión.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close cierra la conexión subyacente.
func (s *Store) Close() {
	if sqlDB, err := s.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// isDuplicateKey cubre la traducción de GORM, el código 1062 de MySQL y el texto de SQLite.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysqldrv.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062 // ER_DUP_ENTRY
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
