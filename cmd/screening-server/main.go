package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/neuroscreen/neuroscreen/internal/config"
	"github.com/neuroscreen/neuroscreen/internal/domain/assessment"
	"github.com/neuroscreen/neuroscreen/internal/domain/feedback"
	"github.com/neuroscreen/neuroscreen/internal/domain/identity"
	"github.com/neuroscreen/neuroscreen/internal/platform/db"
	"github.com/neuroscreen/neuroscreen/internal/platform/middleware"
)

var errMongoURLRequired = errors.New("MONGO_URL is required for migrate")

func main() {
	rootCmd := &cobra.Command{
		Use:   "screening-server",
		Short: "Clinical risk screening API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the screening API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the MongoDB indexes the service relies on",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.MongoURL == "" {
				return errMongoURLRequired
			}

			ctx := context.Background()
			store, err := db.Connect(ctx, cfg.MongoURL, cfg.MongoDatabase)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			return store.EnsureIndexes(ctx)
		},
	}
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Document store
	ctx := context.Background()
	var store db.Store
	if cfg.MongoURL != "" {
		mongoStore, err := db.Connect(ctx, cfg.MongoURL, cfg.MongoDatabase)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to document store")
		}
		defer mongoStore.Close(ctx)
		store = mongoStore
		logger.Info().Str("database", cfg.MongoDatabase).Msg("connected to document store")
	} else {
		// Development convenience only; Validate rejects this outside dev.
		store = db.NewMemStore()
		logger.Warn().Msg("MONGO_URL not set, using in-memory store; data is lost on restart")
	}

	// Services
	identitySvc := identity.NewService(identity.NewUserRepo(store), identity.NewSessionRepo(store))
	identitySvc.SetBcryptCost(cfg.BcryptCost)
	identitySvc.SetSessionTTL(cfg.SessionTTL)

	assessSvc := assessment.NewService(assessment.NewRepo(store))
	feedbackSvc := feedback.NewService(feedback.NewRepo(store), assessSvc)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Routes
	identity.NewHandler(identitySvc).RegisterRoutes(e)
	assessment.NewHandler(assessSvc, identitySvc).RegisterRoutes(e)
	feedback.NewHandler(feedbackSvc, identitySvc).RegisterRoutes(e)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	e.GET("/schema", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string][]string{
			"collections": db.Collections(),
		})
	})

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
