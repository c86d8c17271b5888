package config

import (
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, DriverMySQL, cfg.DB.Backend())
	assert.Equal(t, 10, cfg.DB.MaxConns)
	assert.Equal(t, 480, cfg.JWT.Expiration)
	assert.Equal(t, 8*time.Hour, cfg.JWT.TTL())
	assert.Equal(t, "0.0.0.0:3000", cfg.HTTP.Addr())
	assert.Equal(t, StorageLocal, cfg.Storage.Driver)
}

func TestFromViper_SinJWTSecret_UsaFallbackInseguro(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.True(t, cfg.JWT.InsecureFallback)
	assert.Equal(t, InsecureJWTSecret, cfg.JWT.Secret)
}

func TestFromViper_SinJWTSecretEnProduccion_Error(t *testing.T) {
	v := viper.New()
	v.Set("APP_ENV", "production")

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestFromViper_DatabaseURLSeleccionaPostgres(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "s3cr3t")
	v.Set("DATABASE_URL", "postgres://app:pw@db:5432/orders?sslmode=disable")
	v.Set("DB_DRIVER", "sqlite")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.False(t, cfg.JWT.InsecureFallback)
	assert.Equal(t, DriverPostgres, cfg.DB.Backend())
	assert.NotContains(t, cfg.DB.Redacted(), "pw")
}

func TestFromViper_ValoresEnString(t *testing.T) {
	v := viper.New()
	v.Set("PORT", "8081")
	v.Set("DB_MAX_CONNS", "4")
	v.Set("DB_AUTO_MIGRATE", "false")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.HTTP.Port)
	assert.Equal(t, 4, cfg.DB.MaxConns)
	assert.False(t, cfg.DB.AutoMigrate)
}

func TestFromViper_Invalidos(t *testing.T) {
	cases := map[string]map[string]string{
		"driver desconocido":  {"DB_DRIVER": "oracle"},
		"s3 sin bucket":       {"STORAGE_DRIVER": "s3"},
		"storage desconocido": {"STORAGE_DRIVER": "ftp"},
		"pool vacío":          {"DB_MAX_CONNS": "0"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			v := viper.New()
			for k, val := range env {
				v.Set(k, val)
			}
			_, err := fromViper(v)
			assert.Error(t, err)
		})
	}
}

func TestDBConfig_MySQLDSNyRedacted(t *testing.T) {
	c := DBConfig{Driver: DriverMySQL, Host: "db", Port: 3306, User: "app", Password: "secret", DBName: "shop"}

	mc, err := mysql.ParseDSN(c.MySQLDSN())
	require.NoError(t, err)
	assert.Equal(t, "app", mc.User)
	assert.Equal(t, "secret", mc.Passwd)
	assert.Equal(t, "tcp", mc.Net)
	assert.Equal(t, "db:3306", mc.Addr)
	assert.Equal(t, "shop", mc.DBName)
	assert.True(t, mc.ParseTime)
	assert.True(t, mc.ClientFoundRows, "un UPDATE sin cambios debe contar la fila encontrada")
	assert.Equal(t, time.UTC, mc.Loc)
	assert.Equal(t, "utf8mb4", mc.Params["charset"])

	assert.Equal(t, "mysql://app:******@db:3306/shop", c.Redacted())
}
