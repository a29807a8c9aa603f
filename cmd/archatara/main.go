package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"archatara/internal/app/admin"
	"archatara/internal/app/booking"
	"archatara/internal/app/schedule"
	"archatara/internal/app/services/auth"
	"archatara/internal/domain/catalog"
	"archatara/internal/domain/reservation"
	"archatara/internal/infra/broker/kafka"
	"archatara/internal/infra/config"
	dbmongo "archatara/internal/infra/db/mongo"
	ginserver "archatara/internal/infra/http/gin"
	"archatara/internal/infra/notify"
	"archatara/internal/infra/obs"
	"archatara/internal/infra/security"
	"archatara/internal/infra/storage/memory"
	"archatara/internal/infra/store"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Warn("incomplete configuration, continuing degraded", "error", err)
	}
	cfg.Env = env
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	venue := catalog.Default()

	notifier := buildNotifier(cfg, logger)
	events, producer := buildEvents(cfg, logger)
	if producer != nil {
		defer producer.Close()
	}

	fallback := memory.NewReservationStore(memory.WithDelay(cfg.FallbackDelay))
	fallback.Seed(demoReservation())
	fallbackSettings := memory.NewSettingsStore()

	adapterCfg := store.Config{
		Fallback:         fallback,
		FallbackSettings: fallbackSettings,
		Notifier:         notifier,
		Events:           events,
		Logger:           logger,
	}

	var mongoClient *dbmongo.Client
	if cfg.MongoURI != "" {
		mongoClient, err = dbmongo.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			logger.Warn("document store unavailable, starting in fallback mode", "error", err)
		} else {
			defer func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := mongoClient.Close(closeCtx); err != nil {
					logger.Error("document store disconnect failed", "error", err)
				}
			}()
			repo := dbmongo.NewReservationRepository(mongoClient.DB, cfg.CollectionPrefix)
			adapterCfg.Live = repo
			adapterCfg.LiveSettings = dbmongo.NewSettingsRepository(mongoClient.DB, cfg.CollectionPrefix)
			adapterCfg.Subscriber = &dbmongo.Watcher{Repo: repo, Logger: logger}
		}
	} else {
		logger.Info("no document store configured, starting in fallback mode")
	}

	adapter := store.New(adapterCfg)
	adapter.Start(ctx)

	var admins []auth.Admin
	if cfg.AdminPasswordHash != "" {
		admins = append(admins, auth.Admin{
			Email:        cfg.AdminEmail,
			PasswordHash: cfg.AdminPasswordHash,
		})
	} else {
		logger.Warn("no admin account configured, admin login disabled")
	}
	authService := &auth.Service{
		Admins:     admins,
		Sessions:   memory.NewSessionStore(),
		Passwords:  security.BcryptHasher{},
		Tokens:     security.RandomTokenGenerator{},
		SessionTTL: cfg.SessionTTL,
		Logger:     logger,
	}
	adminService := &admin.Service{
		Store:    adapter,
		Notifier: notifier,
		Logger:   logger,
	}
	sessions := booking.NewSessions(venue, adapter)

	if cfg.SummarySchedule != "" {
		scheduler, err := schedule.New(cfg.SummarySchedule, adminService, logger)
		if err != nil {
			logger.Error("summary schedule invalid", "error", err, "spec", cfg.SummarySchedule)
			os.Exit(1)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	handlers := ginserver.Handlers{
		Catalog:         &ginserver.CatalogHandler{Venue: venue, Store: adapter},
		Booking:         &ginserver.BookingHandler{Sessions: sessions},
		Admin:           &ginserver.AdminHandler{Auth: authService, Service: adminService, Catalog: venue},
		AdminMiddleware: ginserver.AdminAuth(authService),
	}
	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: readiness(adapter, mongoClient),
		Mode:  func() string { return string(adapter.Mode()) },
	}, handlers)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "mode", adapter.Mode())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

func buildNotifier(cfg config.Config, logger *slog.Logger) notify.Notifier {
	if cfg.SendGridAPIKey == "" {
		logger.Info("no mail provider configured, using email simulation")
		return &notify.LogNotifier{Logger: logger}
	}
	return &notify.SendGridNotifier{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
		Logger:    logger,
	}
}

func buildEvents(cfg config.Config, logger *slog.Logger) (store.EventPublisher, *kafka.Producer) {
	if len(cfg.KafkaBrokers) == 0 {
		return nil, nil
	}
	producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
	if err != nil {
		logger.Warn("event broker unavailable, publishing disabled", "error", err)
		return nil, nil
	}
	return &kafka.EventPublisher{Producer: producer, Topic: cfg.KafkaTopic}, producer
}

func readiness(adapter *store.Adapter, client *dbmongo.Client) func() error {
	return func() error {
		if adapter.Mode() == store.ModeLive && client != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(ctx)
		}
		return nil
	}
}

// demoReservation is the sample record the fallback store starts with,
// so a session without a document store still renders a realistic
// calendar and unit grid.
func demoReservation() reservation.Reservation {
	today := time.Now().UTC().Format(reservation.DateLayout)
	return reservation.Reservation{
		ID:            "local_demo_1",
		Date:          today,
		TypeID:        "glamping",
		UnitID:        "G1",
		CustomerName:  "Demo Booking",
		CustomerPhone: "081-234-5678",
		CustomerEmail: "demo@example.com",
		SlipImage:     "demo-slip",
		Status:        reservation.StatusConfirmed,
		CreatedAt:     time.Now().UTC(),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
