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

	"github.com/isdelr/contact-book-be/internal/api"
	"github.com/isdelr/contact-book-be/internal/auth"
	"github.com/isdelr/contact-book-be/internal/config"
	"github.com/isdelr/contact-book-be/internal/database"
	"github.com/isdelr/contact-book-be/internal/housekeeping"
	"github.com/isdelr/contact-book-be/internal/logger"
	"github.com/isdelr/contact-book-be/internal/metrics"
	"github.com/isdelr/contact-book-be/internal/services"
	"github.com/isdelr/contact-book-be/internal/websocket"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"gorm.io/gorm"
)

// Version is set via ldflags.
var Version = "dev"

func main() {
	app := &cli.App{
		Name:    "contact-book",
		Usage:   "Contact book REST backend",
		Version: Version,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP server (default)",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "Apply database migrations and exit",
				Action: migrate,
			},
		},
		Action: serve,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("contact-book failed")
	}
}

// setup loads configuration, initializes logging and opens a migrated store.
func setup() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Init(cfg.LogLevel, cfg.LogPretty)

	db, err := database.New(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		_ = database.Close(db)
		return nil, nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}
	return cfg, db, nil
}

func migrate(*cli.Context) error {
	_, db, err := setup()
	if err != nil {
		return err
	}
	defer database.Close(db)

	log.Info().Msg("Database migrations applied")
	return nil
}

func serve(*cli.Context) error {
	cfg, db, err := setup()
	if err != nil {
		return err
	}
	defer database.Close(db)

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	eventService := services.NewEventService(db, hub)
	userService := services.NewUserService(db, eventService, cfg.BcryptCost)
	contactService := services.NewContactService(db, eventService)
	addressService := services.NewAddressService(db, eventService)

	// Set up and run the background scheduler
	scheduler := housekeeping.NewScheduler(eventService, cfg.EventRetention)
	if err := scheduler.Start(cfg.EventPruneSchedule); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	// Set up router
	router := api.NewRouter(api.RouterDeps{
		Hub:            hub,
		UserService:    userService,
		ContactService: contactService,
		AddressService: addressService,
		EventService:   eventService,
		Metrics:        metrics.New(),
		LoginLimiter:   auth.NewLoginLimiter(cfg.LoginRateLimit, cfg.LoginRateBurst),
		AllowedOrigins: cfg.CORSAllowedOrigins,
		SecureCookie:   cfg.Production,
		TrustProxy:     cfg.TrustProxy,
	})

	// Set up server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	serverErr := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.ServerPort).Str("driver", cfg.DatabaseDriver).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		scheduler.Stop()
		hub.Stop()
		return fmt.Errorf("ListenAndServe: %w", err)
	}
	log.Info().Msg("Shutting down server...")

	scheduler.Stop() // Stop the scheduler

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	hub.Stop() // Closes remaining websocket connections

	log.Info().Msg("Server exiting")
	return nil
}
