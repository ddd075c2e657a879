package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	chimiddleware "github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/smartstock/smartstock-service/config"
	"github.com/smartstock/smartstock-service/pkg/logger"

	botH "github.com/smartstock/smartstock-service/internal/bot/handler"
	botUCPkg "github.com/smartstock/smartstock-service/internal/bot/usecase"
	notifH "github.com/smartstock/smartstock-service/internal/notification/handler"
	notifRepoPkg "github.com/smartstock/smartstock-service/internal/notification/repository"
	notifUCPkg "github.com/smartstock/smartstock-service/internal/notification/usecase"
	stockRepoPkg "github.com/smartstock/smartstock-service/internal/stock/repository"
	"github.com/smartstock/smartstock-service/internal/telegram"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.Config{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "dev" || cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
		logConfig.Level = cfg.Logger.Level
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User,
		cfg.Postgres.Password, cfg.Postgres.DBName, cfg.Postgres.SSLMode,
	)
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second)
	db.SetConnMaxIdleTime(time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second)
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Repositories
	stockRepo := stockRepoPkg.NewPGRepository(db)
	notifRepo := notifRepoPkg.NewPGRepository(db)

	// 5. Initialize Telegram Sender
	tgClient := telegram.NewClient(&cfg.Telegram, appLogger)

	// 6. Initialize UseCases
	botUC := botUCPkg.NewBotUseCase(stockRepo, notifRepo, tgClient, appLogger)
	notifUC := notifUCPkg.NewNotificationUseCase(notifRepo, appLogger)

	// 7. Initialize Handlers
	botHandler := botH.NewBotHandler(botUC, tgClient, appLogger)
	notifHandler := notifH.NewNotificationHandler(notifUC, appLogger)

	// 8. Router
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(chimiddleware.StripSlashes)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Post("/webhook", botHandler.Webhook)
	router.Post("/notify", notifHandler.Register)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	port := cfg.Server.HTTPPort
	srv := &http.Server{
		Addr:    port,
		Handler: router,
	}

	// 9. Run with graceful shutdown: stop accepting requests, then drain any
	// in-flight webhook processing before exiting.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		appLogger.Info("Starting HTTP server", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		botHandler.Drain()
		return nil
	})

	if err := g.Wait(); err != nil {
		appLogger.Fatal("Server error", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
