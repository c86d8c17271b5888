package gormdb_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhihern080614/mochibay-backend/internal/domain"
	"github.com/zhihern080614/mochibay-backend/internal/domain/entity"
	"github.com/zhihern080614/mochibay-backend/internal/infrastructure/gormdb"
	"github.com/zhihern080614/mochibay-backend/pkg/config"
)

func openSQLite(t *testing.T) *gormdb.Store {
	t.Helper()
	ctx := context.Background()
	store, err := gormdb.Open(ctx, config.DBConfig{Driver: config.DriverSQLite, DBName: ":memory:", MaxConns: 10})
	require.NoError(t, err)
	t.Cleanup(store.Close)
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.Migrate(ctx), "la migración debe ser idempotente")
	return store
}

func newUser(email string, at time.Time) *entity.User {
	return &entity.User{
		ID:           "id-" + email,
		Name:         "Ana",
		Email:        email,
		PasswordHash: "$2a$04$hash",
		UserClass:    "C1",
		Phone:        "555",
		Role:         entity.RoleUser,
		CreatedAt:    at,
	}
}

func TestUserRepo_CreateFindList(t *testing.T) {
	store := openSQLite(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Users().Create(ctx, newUser("a@x.com", base)))
	require.NoError(t, store.Users().Create(ctx, newUser("b@x.com", base.Add(time.Minute))))

	u, err := store.Users().FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "id-a@x.com", u.ID)
	assert.Equal(t, "$2a$04$hash", u.PasswordHash)
	assert.Equal(t, "C1", u.UserClass)

	missing, err := store.Users().FindByEmail(ctx, "nadie@x.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	list, err := store.Users().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b@x.com", list[0].Email, "más reciente primero")
	assert.Empty(t, list[0].PasswordHash, "el listado no carga el hash")
}

func TestUserRepo_EmailDuplicado(t *testing.T) {
	store := openSQLite(t)
	ctx := context.Background()

	require.NoError(t, store.Users().Create(ctx, newUser("a@x.com", time.Now())))
	dup := newUser("a@x.com", time.Now())
	dup.ID = "otro-id"

	err := store.Users().Create(ctx, dup)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	list, err := store.Users().List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestUserRepo_UpdateRole(t *testing.T) {
	store := openSQLite(t)
	ctx := context.Background()
	require.NoError(t, store.Users().Create(ctx, newUser("a@x.com", time.Now())))

	require.NoError(t, store.Users().UpdateRole(ctx, "a@x.com", entity.RoleAdmin))
	u, err := store.Users().FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, u.Role)

	assert.ErrorIs(t, store.Users().UpdateRole(ctx, "nadie@x.com", entity.RoleAdmin), domain.ErrNotFound)
}

func TestOrderRepo_CreateListDelete(t *testing.T) {
	store := openSQLite(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	for i, total := range []string{"9.99", "12.50"} {
		require.NoError(t, store.Orders().Create(ctx, &entity.Order{
			ID:            fmt.Sprintf("o-%d", i+1),
			UserID:        "u-1",
			CustomerName:  "Ana",
			OrderNumber:   fmt.Sprintf("O%d", i+1),
			OrderType:     "pickup",
			UserClass:     "C1",
			UserPhone:     "555",
			OrderDetails:  `[{"sku":"mochi"}]`,
			Notes:         "n\n[Receipt: /uploads/receipts/r.png]",
			PaymentMethod: "cash",
			TotalAmount:   decimal.RequireFromString(total),
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		}))
	}

	list, err := store.Orders().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "o-2", list[0].ID)
	assert.True(t, decimal.RequireFromString("12.50").Equal(list[0].TotalAmount))
	assert.Equal(t, `[{"sku":"mochi"}]`, list[1].OrderDetails)
	assert.Contains(t, list[1].Notes, "[Receipt: /uploads/receipts/r.png]")

	assert.ErrorIs(t, store.Orders().Delete(ctx, "no-existe"), domain.ErrNotFound)
	require.NoError(t, store.Orders().Delete(ctx, "o-1"))
	assert.ErrorIs(t, store.Orders().Delete(ctx, "o-1"), domain.ErrNotFound)

	list, err = store.Orders().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "o-2", list[0].ID)
}

func TestStore_Ping(t *testing.T) {
	store := openSQLite(t)
	assert.NoError(t, store.Ping(context.Background()))
}

func TestOpen_DriverNoSoportado(t *testing.T) {
	_, err := gormdb.Open(context.Background(), config.DBConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestMySQLDuplicateEntry(t *testing.T) {
	// El código 1062 se reconoce aunque GORM no lo traduzca.
	err := fmt.Errorf("insert: %w", &mysqldrv.MySQLError{Number: 1062, Message: "Duplicate entry"})
	assert.True(t, gormdb.IsDuplicateKey(err))
	assert.False(t, gormdb.IsDuplicateKey(&mysqldrv.MySQLError{Number: 1045}))
}
