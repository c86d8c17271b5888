package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zhihern080614/mochibay-backend/internal/domain/repository"
)

var _ repository.Store = (*Store)(nil)

// schema es idempotente: se puede aplicar en cada arranque.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	user_class    TEXT NOT NULL,
	phone         TEXT NOT NULL,
	role          TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user', 'admin')),
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS orders (
	id             TEXT PRIMARY KEY,
	user_id        TEXT NOT NULL,
	customer_name  TEXT NOT NULL DEFAULT '',
	order_number   TEXT NOT NULL,
	order_type     TEXT NOT NULL,
	user_class     TEXT NOT NULL DEFAULT '',
	user_phone     TEXT NOT NULL DEFAULT '',
	order_details  TEXT NOT NULL DEFAULT '',
	notes          TEXT NOT NULL DEFAULT '',
	payment_method TEXT NOT NULL DEFAULT '',
	total_amount   NUMERIC(12,2) NOT NULL DEFAULT 0,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_users_created_at ON users (created_at DESC);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders (created_at DESC);
`

// Store backend PostgreSQL (seleccionado cuando DATABASE_URL está definido).
type Store struct {
	pool   *pgxpool.Pool
	users  *UserRepo
	orders *OrderRepo
}

// NewStore construye el backend sobre un pool ya conectado.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		pool:   pool,
		users:  NewUserRepository(pool),
		orders: NewOrderRepository(pool),
	}
}

// Users devuelve el repositorio de usuarios.
func (s *Store) Users() repository.UserRepository { return s.users }

// Orders devuelve el repositorio de pedidos.
func (s *Store) Orders() repository.OrderRepository { return s.orders }

// migrateLockID clave del advisory lock que serializa migraciones de varias instancias.
const migrateLockID int64 = 0x6d6f636869

// Migrate aplica el esquema en una transacción (el DDL de PostgreSQL es transaccional).
func (s *Store) Migrate(ctx context.Context) error {
	return runInTx(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", migrateLockID); err != nil {
			return fmt.Errorf("lock de migración: %w", err)
		}
		if _, err := tx.Exec(ctx, schema); err != nil {
			return fmt.Errorf("migrar esquema: %w", err)
		}
		return nil
	})
}

// Ping verifica la conexión.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close cierra el pool.
func (s *Store) Close() {
	s.pool.Close()
}
