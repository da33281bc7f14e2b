package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-inventory-ledger/internal/config"
	"go-inventory-ledger/internal/handler"
	"go-inventory-ledger/internal/ledger"
	"go-inventory-ledger/internal/middleware"
	"go-inventory-ledger/internal/service"
	"go-inventory-ledger/internal/ws"
	"go-inventory-ledger/pkg/logger"
	"go-inventory-ledger/pkg/telemetry"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Logger & tracing
	zlog, err := logger.New(cfg.LogLevel, cfg.Development())
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	shutdownTracing, err := telemetry.SetupTracing(context.Background(), cfg)
	if err != nil {
		zlog.Warn("tracing disabled", zap.Error(err))
	}
	tracer := otel.Tracer(config.ServiceName)

	// 3. Ledger
	inv := ledger.New()
	if cfg.SeedDemo {
		seedDemoCatalog(inv, zlog)
	}

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub(zlog)
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	invService := service.NewInventoryService(inv, wsHub, zlog, tracer)
	userService := service.NewUserService(inv, zlog, tracer)
	dashService := service.NewDashboardService(inv, cfg.LowStockThreshold, nil)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: cfg.AppName,
	})

	// Middleware
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(zlog)) // Logging request
	app.Use(recover.New())                  // Panic recovery
	app.Use(cors.New())                     // CORS

	// 7. Routes
	handler.RegisterRoutes(app, handler.Handlers{
		Inventory: handler.NewInventoryHandler(invService, cfg.TransactionPageSize),
		Users:     handler.NewUserHandler(userService),
		Dashboard: handler.NewDashboardHandler(dashService),
		WS:        handler.NewWSHandler(wsHub),
	})

	// 8. Graceful Shutdown
	go func() {
		zlog.Info("listening", zap.String("port", cfg.Port))
		if err := app.Listen(":" + cfg.Port); err != nil {
			zlog.Panic("server stopped", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")
	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		zlog.Error("server forced to shutdown", zap.Error(err))
	}
	wsHub.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := shutdownTracing(ctx); err != nil && !errors.Is(err, context.Canceled) {
		zlog.Warn("tracer shutdown failed", zap.Error(err))
	}

	zlog.Info("server exited")
}

// seedDemoCatalog registers a handful of products so a fresh process has
// something to show. Failures are logged and skipped.
func seedDemoCatalog(l *ledger.Ledger, zlog *zap.Logger) {
	demo := []struct {
		sku      string
		name     string
		price    float64
		quantity int
	}{
		{"DEMO-001", "Wireless Mouse", 24.99, 40},
		{"DEMO-002", "USB-C Cable", 9.5, 6},
		{"DEMO-003", "Laptop Stand", 49, 0},
	}

	for _, p := range demo {
		if _, _, err := l.RegisterProduct(p.sku, p.name, p.price, p.quantity); err != nil {
			zlog.Warn("seed product skipped", zap.String("sku", p.sku), zap.Error(err))
		}
	}
	zlog.Info("demo catalog seeded", zap.Int("products", len(l.ListProducts())))
}
