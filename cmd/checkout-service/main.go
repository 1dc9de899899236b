package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"ms-checkout/internal/audit"
	"ms-checkout/internal/auth"
	"ms-checkout/internal/checkout"
	"ms-checkout/internal/checkout/checkout_api"
	"ms-checkout/internal/config"
	"ms-checkout/internal/docstore"
	"ms-checkout/internal/events"
	"ms-checkout/internal/events/events_api"
	"ms-checkout/internal/kafka"
	"ms-checkout/internal/landing"
	"ms-checkout/internal/landing/landing_api"
	"ms-checkout/internal/logger"
	"ms-checkout/internal/models"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, relying on environment")
	}

	cfg := config.Load()
	log := logger.NewLogger()
	defer log.Close()

	// --- Document store (Postgres) ---
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.Database.Username, cfg.Database.Password,
		cfg.Database.Host, cfg.Database.Port, cfg.Database.Database)

	sqldb, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to open Postgres connection: %v", err))
	}
	defer sqldb.Close()

	sqldb.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	if err := sqldb.Ping(); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to connect to Postgres: %v", err))
	}

	bunDB := bun.NewDB(sqldb, pgdialect.New())
	store := &docstore.Store{Bun: bunDB}

	runner := docstore.NewRunner(bunDB, docstore.DefaultOptions())
	if err := runner.RunMigrations(); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Migrations failed: %v", err))
	}
	defer runner.Close()

	// --- Kafka ---
	var producer *kafka.Producer
	if cfg.Kafka.Enabled && !cfg.Kafka.MockMode {
		if err := kafka.BootstrapTopics(cfg.Kafka.Brokers, cfg.Kafka.Topics); err != nil {
			log.Warn("KAFKA", fmt.Sprintf("Topic bootstrap failed: %v", err))
		}
		producer = kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
	} else {
		log.Warn("KAFKA", "Kafka disabled or in mock mode, events will not be streamed")
	}

	var txPublisher checkout.TransactionPublisher
	var confirmPublisher landing.ConfirmationPublisher
	if producer != nil {
		txPublisher = producer
		confirmPublisher = producer
	}

	trail := audit.NewTrail(store, producer, cfg.Kafka.Topics.AuditTrail, log)

	// --- Elevated token source ---
	var tokens events.TokenSource
	if cfg.Auth.TokenURL != "" {
		redisClient, err := auth.InitializeTokenCache(cfg.Redis.Addr, log)
		if err != nil {
			log.Fatal("AUTH", fmt.Sprintf("Failed to initialize token cache: %v", err))
		}
		defer redisClient.Close()
		tokens = auth.NewTokenSource(models.AuthConfig{
			TokenURL:     cfg.Auth.TokenURL,
			ClientID:     cfg.Auth.ClientID,
			ClientSecret: cfg.Auth.ClientSecret,
		}, auth.NewRedisTokenCache(redisClient), nil, log)
	} else {
		log.Warn("AUTH", "No auth token URL configured, elevated calls will fail")
	}

	// --- Collaborators ---
	eventsClient := events.NewClient(cfg.Events.BaseURL, &http.Client{Timeout: cfg.Events.Timeout}, tokens, log)

	var issuer checkout.Issuer
	if cfg.Gateway.IssuerURL != "" {
		issuer = checkout.NewHTTPIssuer(cfg.Gateway.IssuerURL, nil)
	}
	builder := checkout.NewBuilder(cfg.Gateway, issuer, log)

	// --- Services & handlers ---
	checkoutService := checkout.NewService(cfg.Gateway, builder, trail, txPublisher, cfg.Kafka.Topics.TransactionCreated, log)
	checkoutHandler := checkout_api.NewHandler(checkoutService, log)

	reconciler := landing.NewReconciler(store, eventsClient, trail, confirmPublisher, cfg.Kafka.Topics.OrderConfirmed, log, landing.Options{
		RequireValidItems: false,
	})
	landingHandler := landing_api.NewHandler(reconciler, log)

	eventsHandler := events_api.NewHandler(eventsClient, log)

	// --- Router ---
	r := chi.NewRouter()

	r.Post("/api/v1/transactions", checkoutHandler.CreateTransaction)
	r.Post("/api/v1/transactions/{transactionId}/refund", checkoutHandler.RefundTransaction)
	r.Post("/api/v1/provider/connect", checkoutHandler.ConnectAccount)
	r.Get("/api/v1/provider/config", checkoutHandler.ProviderConfig)
	r.Get("/api/v1/landing", landingHandler.ThankYou)

	r.Group(func(r chi.Router) {
		if cfg.Auth.OIDCIssuer != "" {
			r.Use(auth.Middleware(cfg.Auth.OIDCIssuer))
		}
		r.Get("/api/v1/events", eventsHandler.ListScheduledEvents)
		r.Get("/api/v1/events/{eventId}/orders", eventsHandler.ListOrders)
		r.Patch("/api/v1/events/{eventId}/orders/{orderNumber}", eventsHandler.UpdateOrder)
		r.Post("/api/v1/events/{eventId}/checkouts/{orderNumber}", eventsHandler.UpdateCheckout)
		r.Post("/api/v1/events/{eventId}/reservations", eventsHandler.CreateReservation)
		r.Get("/api/v1/tickets/available", eventsHandler.ListAvailableTickets)
		r.Get("/api/v1/ticket-definitions", eventsHandler.QueryTicketDefinitions)
	})

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("SERVER", fmt.Sprintf("Checkout service running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("SERVER", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("SERVER", "Shutdown signal received, cleaning up...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatal("SERVER", fmt.Sprintf("Server forced to shutdown: %v", err))
	}

	log.Info("SERVER", "Server exited gracefully")
}
