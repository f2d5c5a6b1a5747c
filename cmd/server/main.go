package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/fotoprint/fotoprint/internal/config"
	"github.com/fotoprint/fotoprint/internal/events"
	"github.com/fotoprint/fotoprint/internal/handlers"
	"github.com/fotoprint/fotoprint/internal/logging"
	loggingmw "github.com/fotoprint/fotoprint/internal/middleware/logging"
	"github.com/fotoprint/fotoprint/internal/objectstore"
	"github.com/fotoprint/fotoprint/internal/seed"
	"github.com/fotoprint/fotoprint/internal/service/token"
	"github.com/fotoprint/fotoprint/internal/storage"
	httpserver "github.com/fotoprint/fotoprint/internal/transport/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	logger := logging.New(cfg.LogLevel)

	ctx := context.Background()

	var store storage.Store
	if cfg.DatabaseURL != "" {
		gormStore, err := storage.OpenGorm(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Ошибка инициализации БД: %v", err)
		}
		store = gormStore
		defer func() {
			if sqlDB, err := gormStore.DB.DB(); err == nil {
				if err := sqlDB.Close(); err != nil {
					logger.Error("db close error", "error", err)
				}
			}
		}()
	} else {
		logger.Warn("DATABASE_URL not set, using volatile in-memory store")
		store = storage.NewMemoryStore()
	}

	if err := seed.Run(logging.IntoContext(ctx, logger), store); err != nil {
		log.Fatalf("Ошибка заполнения начальных данных: %v", err)
	}

	producer := events.NewProducer(cfg.KafkaBrokers)
	if producer == nil {
		logger.Warn("KAFKA_BROKERS not set, event publishing disabled")
	}

	var signer objectstore.Signer
	if cfg.SupabaseURL != "" && cfg.SupabaseKey != "" {
		signer = objectstore.NewSupabaseSigner(cfg.SupabaseURL, cfg.SupabaseKey, cfg.SupabaseBucket)
	} else {
		logger.Warn("SUPABASE_URL not set, signed uploads disabled")
	}

	tokenService := &token.TokenService{
		Store:         store,
		JWTSecret:     cfg.JWTSecret,
		RefreshSecret: cfg.RefreshSecret,
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		AuthHandler:         &handlers.AuthHandler{Store: store, Tokens: tokenService, Producer: producer},
		ProductHandler:      &handlers.ProductHandler{Store: store, Producer: producer},
		PhotographerHandler: &handlers.PhotographerHandler{Store: store},
		OrderHandler:        &handlers.OrderHandler{Store: store, Producer: producer},
		UploadHandler:       &handlers.UploadHandler{Signer: signer},
		TokenService:        tokenService,
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()
	logger.Info("server started", "port", cfg.ServerPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
