// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/checkout"
	"github.com/your-org/storefront-backend/internal/domain/payment"
	"github.com/your-org/storefront-backend/internal/infrastructure/database/postgres"
	"github.com/your-org/storefront-backend/internal/infrastructure/database/redis"
	"github.com/your-org/storefront-backend/internal/infrastructure/messaging/rabbitmq"
	"github.com/your-org/storefront-backend/internal/interfaces/http"
	"github.com/your-org/storefront-backend/internal/pkg/email"
	"github.com/your-org/storefront-backend/internal/pkg/logger"
	"github.com/your-org/storefront-backend/internal/pkg/metrics"
	"github.com/your-org/storefront-backend/internal/pkg/session"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.New(cfg.Logging)
	appLogger.WithFields(logrus.Fields{
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	}).Infof("Starting %s", cfg.App.Name)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	storefrontMetrics := metrics.NewStorefront(registry)

	deps := http.Dependencies{
		Sessions: session.NewManager(cfg),
		Metrics:  storefrontMetrics,
		Gatherer: registry,
	}

	// Connect to Redis
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = redis.NewConnection(cfg, appLogger)
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to connect to Redis")
		}
		defer redisClient.Close()

		deps.RateLimiter = redisClient.GetClient()
		deps.HealthChecks = append(deps.HealthChecks, http.HealthCheck{Name: "redis", Check: redisClient.Health})
	}

	// Catalog source
	catalogRepo := catalog.Repository(catalog.NewStaticRepository())
	if cfg.Catalog.Source == "postgres" {
		db, err := postgres.NewConnection(cfg, appLogger)
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to connect to database")
		}
		defer db.Close()

		migration := postgres.NewMigration(db.GetDB(), appLogger)
		if err := migration.RunAutoMigrations(); err != nil {
			appLogger.WithError(err).Fatal("Database migration failed")
		}
		if err := migration.CreateIndexes(); err != nil {
			appLogger.WithError(err).Warn("Index creation failed")
		}
		if err := migration.SeedInitialData(); err != nil {
			appLogger.WithError(err).Warn("Catalog seeding failed")
		}

		catalogRepo = catalog.NewGormRepository(db.GetDB())
		deps.HealthChecks = append(deps.HealthChecks, http.HealthCheck{Name: "database", Check: db.Health})
	}
	deps.Catalog = catalog.NewService(catalogRepo)

	// Cart storage
	if cfg.Cart.Storage == "redis" {
		deps.CartStorage = cart.NewRedisStorage(redisClient.GetClient(), cfg.Cart.TTL)
	} else {
		deps.CartStorage = cart.NewMemoryStorage()
	}

	// Order notifications
	var notifiers []checkout.Notifier
	if cfg.Messaging.RabbitMQURL != "" {
		publisher, err := rabbitmq.Dial(cfg.Messaging.RabbitMQURL, cfg.Messaging.OrderQueue, appLogger)
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to connect to RabbitMQ")
		}
		defer publisher.Close()
		notifiers = append(notifiers, publisher)
	}
	if sender := email.NewSender(cfg.Email); sender.Configured() {
		notifiers = append(notifiers, email.NewOrderMailer(sender, cfg.App.Name, cfg.Payment.Currency))
	}

	gateway := payment.NewCloudPayments(cfg.Payment, nil)
	deps.Checkout = checkout.NewService(gateway, appLogger, storefrontMetrics, notifiers...)

	appLogger.Info("All systems operational")

	server := http.NewServer(cfg, appLogger, deps)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			appLogger.WithError(err).Fatal("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		appLogger.WithError(err).Error("Failed to shutdown HTTP server gracefully")
	}
	gateway.Unload()

	appLogger.Info("Server shutdown completed")
}
