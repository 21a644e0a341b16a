package app

import (
	"io"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"gudang/internal/config"
	"gudang/internal/handlers"
	"gudang/internal/middleware"
	"gudang/internal/repositories"
	"gudang/internal/services"
)

// Deps are the collaborators the HTTP application is built from.
type Deps struct {
	Config config.Config
	DB     *gorm.DB
	// Events receives catalog events. Nil drops them.
	Events services.EventPublisher
	Log    *slog.Logger
	// AccessLog receives one line per request. Nil disables access logging.
	AccessLog io.Writer
}

// New wires repositories, services and handlers into a fiber application.
func New(deps Deps) *fiber.App {
	log := deps.Log

	// --- Repositories ---
	categoryRepo := repositories.NewGORMCategoryRepository(deps.DB)
	productRepo := repositories.NewGORMProductRepository(deps.DB)
	priceRepo := repositories.NewGORMPriceRepository(deps.DB)
	userRepo := repositories.NewGORMUserRepository(deps.DB)

	// --- Services ---
	categoryService := services.NewCategoryService(categoryRepo, log)
	productService := services.NewProductService(productRepo, categoryRepo, deps.Events, log)
	priceService := services.NewPriceService(priceRepo, productRepo, log)
	authService := services.NewAuthService(userRepo, deps.Config.JWTSecret, deps.Config.JWTTTL, log)

	// --- Handlers ---
	categoryHandler := handlers.NewCategoryHandler(categoryService, log)
	productHandler := handlers.NewProductHandler(productService, log)
	priceHandler := handlers.NewPriceHandler(priceService, log)
	authHandler := handlers.NewAuthHandler(authService, log)

	app := fiber.New(fiber.Config{
		AppName:               "gudang",
		DisableStartupMessage: true,
		ErrorHandler:          handlers.ErrorHandler(log),
	})

	// --- Middleware ---
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	if deps.AccessLog != nil {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
			Output: deps.AccessLog,
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		status, code := "healthy", fiber.StatusOK
		if sqlDB, err := deps.DB.DB(); err != nil || sqlDB.PingContext(c.UserContext()) != nil {
			status, code = "unhealthy", fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(fiber.Map{
			"status": status,
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- API Routes ---
	api := app.Group("/api")

	// Authentication routes stay public whatever the policy.
	authHandler.RegisterRoutes(api)

	protected := api.Group("", middleware.Access(deps.Config.AccessPolicy, authService, log))
	categoryHandler.RegisterRoutes(protected)
	productHandler.RegisterRoutes(protected)
	priceHandler.RegisterRoutes(protected)

	return app
}
