// cmd/server/main.go
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cabinreserve/internal/agent"
	"cabinreserve/internal/assets"
	"cabinreserve/internal/availability"
	"cabinreserve/internal/booking"
	"cabinreserve/internal/calendar"
	"cabinreserve/internal/config"
	"cabinreserve/internal/database"
	"cabinreserve/internal/email"
	"cabinreserve/internal/handlers"
	"cabinreserve/internal/hold"
	"cabinreserve/internal/logging"
	"cabinreserve/internal/pricing"
	"cabinreserve/internal/repositories"
	"cabinreserve/internal/server"
	"cabinreserve/internal/server/routes"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Debug)
	logger.Info("configuration loaded", "environment", cfg.Environment, "port", cfg.Port)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("database connected")

	if err := database.CreateUniqueConstraints(db); err != nil {
		logger.Warn("failed to install overlap constraints", "error", err)
	}
	if err := database.SeedDatabase(db); err != nil {
		logger.Warn("failed to seed business facts", "error", err)
	}

	businessTZ, err := time.LoadLocation(cfg.BusinessTimezone)
	if err != nil {
		logger.Warn("unknown business timezone, falling back to UTC", "configured", cfg.BusinessTimezone, "error", err)
		businessTZ = time.UTC
	}

	cabins := repositories.NewCabinRepository(db)
	customers := repositories.NewCustomerRepository(db)
	bookings := repositories.NewBookingRepository(db)
	transactions := repositories.NewTransactionRepository(db)
	audit := repositories.NewAuditRepository(db)
	conversations := repositories.NewConversationRepository(db)
	faqs := repositories.NewFAQRepository(db)
	facts := repositories.NewBusinessFactRepository(db)

	var redisClient *hold.RedisClient
	if cfg.LockStoreHost != "" {
		redisClient, err = hold.NewRedisClient(cfg.LockStoreHost, cfg.LockStorePort, cfg.LockStorePassword, cfg.LockStoreDB)
		if err != nil {
			logger.Warn("lock store unreachable, holds will fall back to in-process state", "error", err)
			redisClient = nil
		} else {
			logger.Info("lock store connected")
		}
	}
	holds := hold.NewManager(redisClient, cfg.HoldDurationSecs)

	calendarGateway := calendar.NewRetryingGateway(calendar.NewHTTPGateway(cfg.CalendarBaseURL, cfg.CalendarAPIKey))
	resolver := availability.NewResolver(calendarGateway)
	pricingEngine := pricing.NewEngine(cfg.HolidayDates, cfg.HighSeasonMonths, cfg.HolidaySeasonMonths)
	paymentGateway := booking.NewHTTPPaymentGateway(cfg.PaymentGatewayURL, cfg.PaymentGatewaySecret)
	notifier := email.NewSMTPNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom, bookings, transactions)
	cabinImages := assets.NewCabinImages(cfg.CabinImagesDir, cfg.CabinImagesBaseURL)

	committer := booking.NewCommitter(
		cabins, customers, bookings, transactions, audit, holds,
		calendarGateway, pricingEngine, paymentGateway, notifier, businessTZ,
	)

	agentEngine := agent.NewEngine(
		cabins, conversations, faqs, facts, resolver, pricingEngine, holds, committer, cabinImages, businessTZ,
	)

	deps := routes.Dependencies{
		Health:        handlers.NewHealthHandler(db),
		Cabins:        handlers.NewCabinHandler(cabins, resolver, cabinImages, businessTZ),
		Availability:  handlers.NewAvailabilityHandler(cabins, resolver, businessTZ),
		Quote:         handlers.NewQuoteHandler(cabins, pricingEngine, businessTZ),
		Hold:          handlers.NewHoldHandler(holds, cabins, businessTZ),
		Booking:       handlers.NewBookingHandler(committer, businessTZ),
		AdminBookings: handlers.NewAdminBookingHandler(bookings, committer),
		AdminHolds:    handlers.NewAdminHoldHandler(holds),
		AdminAudit:    handlers.NewAdminAuditHandler(audit),
		Webhook:       handlers.NewWebhookHandler(committer, cfg.PaymentWebhookSecret),
		Agent:         handlers.NewAgentHandler(agentEngine),
		FAQ:           handlers.NewFAQHandler(faqs),
		BusinessFacts: handlers.NewBusinessFactHandler(facts),
	}

	srv := server.New(cfg, logger, db, deps)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		logger.Error("server stopped unexpectedly", "error", err)
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && err != http.ErrServerClosed {
		logger.Error("server forced to shutdown", "error", err)
	}

	if err := database.CloseConnection(db); err != nil {
		logger.Error("failed to close database connection", "error", err)
	}

	logger.Info("shutdown complete")
}
