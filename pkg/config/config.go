package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"
)

// InsecureJWTSecret se usa solo cuando JWT_SECRET no está definido (desarrollo local).
// El arranque lo reporta con un WARN y en producción se rechaza.
const InsecureJWTSecret = "fallback_debug_secret_key_12345_please_set_in_env_file"

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
// Se construye una sola vez en main y se trata como inmutable.
type Config struct {
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Storage StorageConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// IsProduction indica si la app corre en producción.
func (c AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// Drivers de base de datos soportados.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// DBConfig configuración del almacén relacional.
// Si DatabaseURL no está vacío se usa PostgreSQL con ese connection string;
// si no, Driver decide entre MySQL (DB_HOST, DB_USER, ...) y SQLite (DB_NAME como archivo).
type DBConfig struct {
	DatabaseURL string
	Driver      string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	MaxConns    int
	QueueLimit  int
	AutoMigrate bool
}

// Backend devuelve el driver efectivo: DATABASE_URL manda sobre DB_DRIVER.
func (c DBConfig) Backend() string {
	if c.DatabaseURL != "" {
		return DriverPostgres
	}
	return c.Driver
}

// MySQLDSN devuelve el DSN de go-sql-driver/mysql a partir de DB_HOST, DB_USER, etc.
// clientFoundRows hace que un UPDATE sin cambios reporte la fila encontrada.
func (c DBConfig) MySQLDSN() string {
	mc := mysql.NewConfig()
	mc.User = c.User
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	mc.DBName = c.DBName
	mc.ParseTime = true
	mc.Loc = time.UTC
	mc.ClientFoundRows = true
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}

// Redacted describe el destino de la conexión sin exponer la contraseña (para logs de arranque).
func (c DBConfig) Redacted() string {
	switch c.Backend() {
	case DriverPostgres:
		u, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return "postgres (DATABASE_URL inválida)"
		}
		return u.Redacted()
	case DriverSQLite:
		return "sqlite://" + c.DBName
	default:
		pass := "EMPTY"
		if c.Password != "" {
			pass = "******"
		}
		return fmt.Sprintf("mysql://%s:%s@%s:%d/%s", c.User, pass, c.Host, c.Port, c.DBName)
	}
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret           string
	Expiration       int // minutos
	Issuer           string
	InsecureFallback bool // true si Secret es InsecureJWTSecret
}

// TTL devuelve la vigencia de los tokens.
func (c JWTConfig) TTL() time.Duration {
	return time.Duration(c.Expiration) * time.Minute
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host           string
	Port           int
	RequestTimeout time.Duration
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Drivers de almacenamiento de comprobantes.
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// StorageConfig configuración del almacenamiento de comprobantes subidos.
type StorageConfig struct {
	Driver         string
	UploadsDir     string // raíz local servida en /uploads
	UploadMaxBytes int
	S3             S3Config
}

// S3Config credenciales de un bucket compatible con S3 (AWS, MinIO, R2).
type S3Config struct {
	Bucket   string
	Region   string
	Key      string
	Secret   string
	Endpoint string // vacío para AWS real
	URL      string // prefijo público; por defecto https://<bucket>.s3.<region>.amazonaws.com
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, PORT, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "mochibay-orders"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Driver:      strings.ToLower(getString(v, "DB_DRIVER", DriverMySQL)),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 3306),
			User:        getString(v, "DB_USER", "root"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "mochibay"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 10),
			QueueLimit:  getInt(v, "DB_QUEUE_LIMIT", 100),
			AutoMigrate: getBool(v, "DB_AUTO_MIGRATE", true),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "mochibay-orders"),
		},
		HTTP: HTTPConfig{
			Host:           getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:           getInt(v, "PORT", 3000),
			RequestTimeout: time.Duration(getInt(v, "REQUEST_TIMEOUT_SECONDS", 15)) * time.Second,
		},
		Storage: StorageConfig{
			Driver:         strings.ToLower(getString(v, "STORAGE_DRIVER", StorageLocal)),
			UploadsDir:     getString(v, "UPLOADS_DIR", "uploads"),
			UploadMaxBytes: getInt(v, "UPLOAD_MAX_BYTES", 10<<20),
			S3: S3Config{
				Bucket:   getString(v, "S3_BUCKET", ""),
				Region:   getString(v, "S3_REGION", "us-east-1"),
				Key:      getString(v, "S3_KEY", ""),
				Secret:   getString(v, "S3_SECRET", ""),
				Endpoint: getString(v, "S3_ENDPOINT", ""),
				URL:      getString(v, "S3_URL", ""),
			},
		},
	}

	if cfg.JWT.Secret == "" {
		if cfg.App.IsProduction() {
			return nil, fmt.Errorf("config: JWT_SECRET es obligatorio en producción")
		}
		cfg.JWT.Secret = InsecureJWTSecret
		cfg.JWT.InsecureFallback = true
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DB.Backend() {
	case DriverPostgres, DriverMySQL, DriverSQLite:
	default:
		return fmt.Errorf("config: DB_DRIVER %q no soportado (mysql, sqlite)", c.DB.Driver)
	}
	if c.DB.MaxConns <= 0 {
		return fmt.Errorf("config: DB_MAX_CONNS debe ser mayor que 0")
	}
	if c.DB.QueueLimit < 0 {
		return fmt.Errorf("config: DB_QUEUE_LIMIT no puede ser negativo")
	}
	if c.JWT.Expiration <= 0 {
		return fmt.Errorf("config: JWT_EXPIRATION_MINUTES debe ser mayor que 0")
	}
	if c.HTTP.RequestTimeout <= 0 {
		return fmt.Errorf("config: REQUEST_TIMEOUT_SECONDS debe ser mayor que 0")
	}
	switch c.Storage.Driver {
	case StorageLocal:
	case StorageS3:
		if c.Storage.S3.Bucket == "" {
			return fmt.Errorf("config: S3_BUCKET es obligatorio con STORAGE_DRIVER=s3")
		}
	default:
		return fmt.Errorf("config: STORAGE_DRIVER %q no soportado (local, s3)", c.Storage.Driver)
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return b
	}
	return def
}
