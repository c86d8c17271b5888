package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/zhihern080614/mochibay-backend/internal/application/auth"
	"github.com/zhihern080614/mochibay-backend/internal/application/usecase"
	"github.com/zhihern080614/mochibay-backend/internal/domain/entity"
	"github.com/zhihern080614/mochibay-backend/internal/domain/repository"
	"github.com/zhihern080614/mochibay-backend/internal/infrastructure/metrics"
	"github.com/zhihern080614/mochibay-backend/internal/infrastructure/storage"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName string
	Store       repository.Store
	AuthUC      *auth.AuthUseCase
	OrderUC     *usecase.OrderUseCase
	AdminUC     *usecase.AdminUseCase
	JWTSecret   string
	Metrics     *metrics.Metrics // opcional

	// UploadsDir raíz servida en /uploads (solo almacenamiento local; vacío = no se sirve).
	UploadsDir      string
	MaxReceiptBytes int64
	AdmissionLimit  int64 // conexiones del pool + cola; 0 = sin límite
	RequestTimeout  time.Duration
}

// Router registra middlewares globales y las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders: "Content-Type,Authorization",
	}))
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
		app.Get("/metrics", deps.Metrics.Handler())
	}
	if deps.UploadsDir != "" {
		app.Static(storage.PublicPrefix, deps.UploadsDir)
	}

	app.Get("/health", Health(deps.ServiceName, deps.Store, DefaultHealthTimeout))

	// Todo /api toca el almacén: deadline por request y cola acotada.
	api := app.Group("/api", RequestTimeout(deps.RequestTimeout))
	if deps.AdmissionLimit > 0 {
		var onReject func()
		if deps.Metrics != nil {
			onReject = deps.Metrics.AdmissionRejected
		}
		api.Use(Admission(deps.AdmissionLimit, onReject))
	}

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Metrics)
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)

	// Pedidos (requiere Bearer Token)
	orderHandler := NewOrderHandler(deps.OrderUC, deps.MaxReceiptBytes, deps.Metrics)
	api.Post("/orders", AuthMiddleware(deps.JWTSecret), orderHandler.Create)

	// Admin (Bearer Token + rol admin)
	admin := api.Group("/admin", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin))
	adminHandler := NewAdminHandler(deps.AdminUC)
	admin.Get("/users", adminHandler.ListUsers)
	admin.Get("/orders", adminHandler.ListOrders)
	admin.Delete("/orders/:id", adminHandler.DeleteOrder)
}
