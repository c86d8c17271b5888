package repository

import "context"

// Store agrupa los repositorios de un backend concreto (PostgreSQL o MySQL/SQLite vía GORM).
// El backend se elige una sola vez al arrancar.
type Store interface {
	Users() UserRepository
	Orders() OrderRepository
	// Migrate aplica el esquema de forma idempotente.
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close()
}
