package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/zhihern080614/mochibay-backend/internal/application/auth"
	"github.com/zhihern080614/mochibay-backend/internal/application/usecase"
	"github.com/zhihern080614/mochibay-backend/internal/infrastructure/metrics"
	"github.com/zhihern080614/mochibay-backend/internal/infrastructure/persistence"
	"github.com/zhihern080614/mochibay-backend/internal/infrastructure/storage"
	httpRouter "github.com/zhihern080614/mochibay-backend/internal/interfaces/http"
	"github.com/zhihern080614/mochibay-backend/pkg/config"
	"github.com/zhihern080614/mochibay-backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.InsecureFallback {
		log.Warn().Msg("JWT_SECRET no definido: usando secret INSEGURO de desarrollo. Definirlo antes de exponer el servicio")
	}

	ctx := context.Background()
	log.Info().Str("backend", cfg.DB.Backend()).Str("target", cfg.DB.Redacted()).Msg("conectando a la base de datos")
	store, err := persistence.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a la base de datos")
	}
	defer store.Close()

	if cfg.DB.AutoMigrate {
		if err := store.Migrate(ctx); err != nil {
			log.Fatal().Err(err).Msg("migración del esquema")
		}
	}

	receipts, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de comprobantes")
	}
	uploadsDir := ""
	if disk, ok := receipts.(*storage.LocalDisk); ok {
		uploadsDir = disk.Root()
	}

	authUC := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{
		Secret: cfg.JWT.Secret,
		TTL:    cfg.JWT.TTL(),
		Issuer: cfg.JWT.Issuer,
	})
	orderUC := usecase.NewOrderUseCase(store.Orders(), receipts)
	adminUC := usecase.NewAdminUseCase(store.Users(), store.Orders())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		// el límite del comprobante lo aplica el handler con un 400; el body puede traer además los campos del form
		BodyLimit:    cfg.Storage.UploadMaxBytes + 1<<20,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Mochibay Orders API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ServiceName:     cfg.App.Name,
		Store:           store,
		AuthUC:          authUC,
		OrderUC:         orderUC,
		AdminUC:         adminUC,
		JWTSecret:       cfg.JWT.Secret,
		Metrics:         metrics.New(),
		UploadsDir:      uploadsDir,
		MaxReceiptBytes: int64(cfg.Storage.UploadMaxBytes),
		AdmissionLimit:  int64(cfg.DB.MaxConns + cfg.DB.QueueLimit),
		RequestTimeout:  cfg.HTTP.RequestTimeout,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()
	log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
