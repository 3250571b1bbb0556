package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Canyildiz1386/SultanPanelBot/internal/bootstrap"
	"github.com/Canyildiz1386/SultanPanelBot/internal/bot"
	"github.com/Canyildiz1386/SultanPanelBot/internal/config"
	cronpkg "github.com/Canyildiz1386/SultanPanelBot/internal/cron"
	"github.com/Canyildiz1386/SultanPanelBot/internal/handler"
	"github.com/Canyildiz1386/SultanPanelBot/internal/middleware"
	"github.com/Canyildiz1386/SultanPanelBot/internal/payment"
	"github.com/Canyildiz1386/SultanPanelBot/internal/pricing"
	"github.com/Canyildiz1386/SultanPanelBot/internal/repository"
	"github.com/Canyildiz1386/SultanPanelBot/internal/router"
	"github.com/Canyildiz1386/SultanPanelBot/internal/shop"
	"github.com/Canyildiz1386/SultanPanelBot/internal/smm"
)

func main() {
	// --- Logger ---
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if hasArg("--bootstrap-db") {
		if err := runDBBootstrap(); err != nil {
			logger.Fatal("Database bootstrap failed", zap.Error(err))
		}
		logger.Info("Database bootstrap completed")
		return
	}

	// --- Config ---
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// --- Database ---
	db, err := config.NewDatabase(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := bootstrap.MigrateAndSeed(db); err != nil {
		logger.Fatal("Failed to bootstrap database schema", zap.Error(err))
	}

	// --- Repositories ---
	users := repository.NewUserRepository(db)
	orders := repository.NewOrderRepository(db)
	tickets := repository.NewTicketRepository(db)
	agencies := repository.NewAgencyRepository(db)
	discounts := repository.NewDiscountRepository(db)
	rates := repository.NewRateRepository(db)
	payments := repository.NewPaymentRepository(db)

	// --- SMM panel client ---
	panelClient := smm.NewClient(cfg.Panel.URL, cfg.Panel.Key)
	catalog := smm.NewCachedCatalog(panelClient, smm.DefaultCatalogTTL)

	// --- Shop engine ---
	engine := shop.NewEngine(
		smm.NewShopCatalog(catalog),
		users,
		orders,
		payments,
		rates,
		pricing.CreditCost,
		pricing.CreditsForUSD,
		pricing.ApplyDiscount,
		logger,
	)

	// --- Payment gateways ---
	perfectMoney := payment.NewPerfectMoneyGateway(
		cfg.Payment.PerfectMoney.Account,
		cfg.Payment.PerfectMoney.Name,
		cfg.Server.PublicURL,
	)
	payeer := payment.NewPayeerGateway(cfg.Payment.Payeer.Shop, cfg.Payment.Payeer.Key)
	gateways := []payment.Gateway{perfectMoney, payeer}

	// --- Bot ---
	teleBot, err := bot.New(cfg, bot.Repos{
		Users:     users,
		Orders:    orders,
		Tickets:   tickets,
		Agencies:  agencies,
		Discounts: discounts,
		Rates:     rates,
	}, engine, catalog, gateways, logger)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	// --- Payment webhook deduper (Redis with in-memory fallback) ---
	deduper, dedupeErr := middleware.NewPaymentDeduper(
		cfg.Redis.Addr,
		cfg.Redis.Pass,
		cfg.Redis.DB,
		10*time.Minute,
	)
	if dedupeErr != nil {
		logger.Warn("Redis unavailable for payment dedup, using in-memory fallback", zap.Error(dedupeErr))
	}

	// --- Echo + routes ---
	e := echo.New()
	e.HideBanner = true
	paymentCallback := handler.NewPaymentCallbackHandler(engine, payeer, teleBot.Notifier(), logger)
	router.Setup(e, paymentCallback, deduper, logger)

	// --- Cron scheduler ---
	scheduler := cronpkg.New(orders, payments, catalog, logger)
	scheduler.Start()

	// --- Start HTTP server (payment callbacks) ---
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		logger.Info("Starting payment callback server", zap.String("addr", addr))
		if err := e.Start(addr); err != nil {
			logger.Info("Server stopped", zap.Error(err))
		}
	}()

	// --- Start bot long-polling ---
	go teleBot.Start()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")

	teleBot.Stop()

	ctx := scheduler.Stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

func hasArg(name string) bool {
	for _, arg := range os.Args[1:] {
		if arg == name {
			return true
		}
	}
	return false
}

func runDBBootstrap() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	db, err := config.NewDatabase(&cfg.Database)
	if err != nil {
		return err
	}
	return bootstrap.MigrateAndSeed(db)
}
