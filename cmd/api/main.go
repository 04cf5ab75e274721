package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/glowdesk/booking-bot/config"
	"github.com/glowdesk/booking-bot/internal/email"
	bookingHandler "github.com/glowdesk/booking-bot/internal/handler/booking"
	catalogHandler "github.com/glowdesk/booking-bot/internal/handler/catalog"
	healthHandler "github.com/glowdesk/booking-bot/internal/handler/health"
	transportHandler "github.com/glowdesk/booking-bot/internal/handler/transport"
	webhookHandler "github.com/glowdesk/booking-bot/internal/handler/webhook"
	"github.com/glowdesk/booking-bot/internal/repository"
	"github.com/glowdesk/booking-bot/internal/repository/memory"
	"github.com/glowdesk/booking-bot/internal/repository/postgres"
	"github.com/glowdesk/booking-bot/internal/router"
	"github.com/glowdesk/booking-bot/internal/service/availability"
	bookingService "github.com/glowdesk/booking-bot/internal/service/booking"
	"github.com/glowdesk/booking-bot/internal/service/conversation"
	"github.com/glowdesk/booking-bot/internal/service/salon"
	"github.com/glowdesk/booking-bot/internal/service/tenant"
	"github.com/glowdesk/booking-bot/internal/session"
	"github.com/glowdesk/booking-bot/pkg/logger"
	"github.com/glowdesk/booking-bot/pkg/metrics"
	"github.com/glowdesk/booking-bot/pkg/whatsapp"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Pretty)

	salons, err := cfg.ParsedSalons()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid salon configuration")
	}
	directory := salon.NewDirectory(salons)

	// Storage: Postgres in production, the in-memory twin for local runs.
	var (
		catalogRepo repository.CatalogRepository
		bookingRepo repository.BookingRepository
		db          *sqlx.DB
	)
	if cfg.Database.Driver == "postgres" {
		db, err = postgres.NewDB(postgres.Config{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			Name:     cfg.Database.Name,
			SSLMode:  cfg.Database.SSLMode,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer db.Close()
		catalogRepo = postgres.NewCatalogRepository(db)
		bookingRepo = postgres.NewBookingRepository(db)
	} else {
		mem := memory.New()
		mem.Seed(cfg.SeedServices(), cfg.SeedStaff())
		catalogRepo = mem
		bookingRepo = mem
		log.Info().Msg("running with in-memory storage")
	}

	// Recent-access marker: Redis when configured, otherwise in-process.
	var accessLog tenant.AccessLog
	if cfg.Redis.Enabled {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid redis url")
		}
		accessLog = tenant.NewRedisAccessLog(redis.NewClient(opts), cfg.Booking.RecentAccessTTL)
	} else {
		accessLog = tenant.NewMemoryAccessLog(cfg.Booking.RecentAccessTTL)
	}

	var notifier email.Notifier
	if cfg.Email.Enabled {
		notifier = email.NewSMTPNotifier(email.Config{
			Host:     cfg.Email.Host,
			Port:     cfg.Email.Port,
			Username: cfg.Email.Username,
			Password: cfg.Email.Password,
			From:     cfg.Email.From,
		})
	} else {
		notifier = email.NewNoopNotifier()
	}

	m := metrics.NewMetrics("booking_bot")
	sessions := session.NewStore(cfg.Booking.SessionTTL)
	resolver := tenant.NewResolver(directory, accessLog, cfg.DefaultSalon)
	availabilitySvc := availability.NewService(directory, bookingRepo)
	bookingSvc := bookingService.NewService(bookingRepo, catalogRepo, directory, notifier, m)
	controller := conversation.NewController(sessions, directory, catalogRepo, availabilitySvc, bookingSvc, m)

	waClient := whatsapp.NewClient(whatsapp.Config{
		BaseURL: cfg.WhatsApp.BaseURL,
		Timeout: cfg.WhatsApp.Timeout,
	})

	checks := map[string]healthHandler.Check{
		"whatsapp": waClient.Health,
	}
	if db != nil {
		checks["database"] = func(ctx context.Context) error { return db.PingContext(ctx) }
	}

	routerCfg := router.Config{Mode: cfg.Server.Mode}
	if cfg.RateLimit.Enabled {
		routerCfg.RateLimit = rate.Limit(cfg.RateLimit.RequestsPerSecond)
		routerCfg.RateBurst = cfg.RateLimit.Burst
	}

	r := router.NewRouter(
		routerCfg,
		webhookHandler.NewHandler(sessions, resolver, controller, directory, accessLog),
		healthHandler.NewHandler(checks),
		catalogHandler.NewHandler(directory, catalogRepo, availabilitySvc),
		bookingHandler.NewHandler(bookingSvc),
		transportHandler.NewHandler(waClient, m),
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
