package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"

	"cediflow/common/apprunner"
	"cediflow/common/config"
	"cediflow/common/logger"
	"cediflow/internal/clients/ratesource"
	"cediflow/internal/db"
	deliveryHttp "cediflow/internal/delivery/http"
	"cediflow/internal/repository"
	"cediflow/internal/service"
)

// @title           Cediflow Rates & Fees API
// @version         0.1
// @description     Multi-currency rate cache with conversion previews and withdrawal fee quotes.

// @BasePath  /v0
func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.LoadConfig(ctx)
	if err != nil {
		logger.JSONLogger.Error("parse config", slog.Any("error", err))
		return
	}

	if err := logger.InitLogger(cfg.Name, cfg.LogLevel); err != nil {
		logger.JSONLogger.Warn("init logger, keeping default level",
			slog.String("log_level", cfg.LogLevel), slog.Any("error", err))
	}

	if err := db.RunMigrations(cfg.Postgres.DSN(), cfg.Postgres.MigrationsPath); err != nil {
		logger.JSONLogger.Error("run migrations", slog.Any("error", err))
		return
	}

	dbClient, err := db.NewPostgresClient(ctx, cfg.Postgres)
	if err != nil {
		logger.JSONLogger.Error("initialize postgres client", slog.Any("error", err))
		return
	}
	defer dbClient.Close()

	currencyRepo := repository.NewCurrencyPostgresRepository(dbClient)
	rateTableRepo := repository.NewRateTablePostgresRepository(dbClient)
	feeScheduleRepo := repository.NewFeeSchedulePostgresRepository(dbClient)

	rateSourceClient, err := ratesource.NewClient(cfg.RateSource)
	if err != nil {
		logger.JSONLogger.Error("initialize rate source client", slog.Any("error", err))
		return
	}

	store := service.NewRateStore(cfg.Service, currencyRepo, rateTableRepo, rateSourceClient)
	converter := service.NewConverter(store)
	fees := service.NewFeeService(store, feeScheduleRepo)

	httpServer := deliveryHttp.NewServer(cfg, store, converter, fees)

	if err := apprunner.StartApp(
		ctx,
		apprunner.NewRunner("rate store", store),
		apprunner.NewRunner("http server", httpServer),
	); err != nil && !errors.Is(err, context.Canceled) {
		logger.JSONLogger.Error("error running app", slog.Any("error", err))
	}
	logger.JSONLogger.Info("app finished")
}
