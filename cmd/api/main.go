package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	analyticsHttp "order-dashboard-service/internal/analytics/adapters/http/fiber"
	analyticsUsecase "order-dashboard-service/internal/analytics/core/usecase"

	ordersCsv "order-dashboard-service/internal/orders/adapters/csvfile"
	ordersRepoPg "order-dashboard-service/internal/orders/adapters/postgres"
	"order-dashboard-service/internal/orders/core/ports"

	"order-dashboard-service/internal/platform/config"
	"order-dashboard-service/internal/platform/logger"
	"order-dashboard-service/internal/platform/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	_ "order-dashboard-service/docs"
)

var cfgPath string

// @title Order Dashboard API
// @version 1.0
// @description Date-filtered order, revenue and category analytics.
// @host localhost:8080
// @BasePath /
func main() {
	rootCmd := &cobra.Command{
		Use:          "api",
		Short:        "Serve the order dashboard API",
		SilenceUsage: true,
		RunE:         runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a config file (yaml, json or toml); environment variables override it")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	// Config
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	ctx := log.WithContext(cmd.Context())

	// Dataset
	reader, closeSource, err := openSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	// Usecases
	getDashboardUC := analyticsUsecase.NewGetDashboardUseCase(reader, cfg.Dashboard.TopCities)
	getBreakdownUC := analyticsUsecase.NewGetBreakdownUseCase(reader)
	getBoundsUC := analyticsUsecase.NewGetBoundsUseCase(reader)

	money, err := analyticsHttp.NewMoneyFormatter(cfg.Dashboard.Currency, cfg.Dashboard.Locale)
	if err != nil {
		return fmt.Errorf("failed to create money formatter: %w", err)
	}

	// HTTP (Fiber) app + handlers
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(middleware.Logger(log))

	dashboardHandler := analyticsHttp.NewDashboardHandler(
		getDashboardUC, getBreakdownUC, getBoundsUC, money, cfg.Location(),
	)
	dashboardHandler.Register(app)

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Graceful shutdown
	go func() {
		if err := app.Listen(cfg.Server.Addr); err != nil {
			log.Error().Err(err).Msg("fiber stopped")
		}
	}()

	log.Info().Str("addr", cfg.Server.Addr).Str("source", cfg.Source.Driver).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Info().Msg("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("fiber shutdown error")
	}

	log.Info().Msg("server exiting")
	return nil
}

// openSource performs the one-off dataset initialization for the configured
// driver. The returned func releases whatever the source holds.
func openSource(ctx context.Context, cfg *config.Config) (ports.OrderReaderPort, func(), error) {
	log := zerolog.Ctx(ctx)

	switch cfg.Source.Driver {
	case config.DriverPostgres:
		db, err := ordersRepoPg.Open(ctx, ordersRepoPg.Settings{
			DSN:             cfg.Postgres.DSN,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		log.Info().Msg("postgres order source ready")

		repo := ordersRepoPg.NewOrderRepository(ordersRepoPg.NewSQLDB(db), cfg.Location())
		return repo, func() { db.Close() }, nil

	default:
		records, err := ordersCsv.LoadFile(ctx, cfg.Source.CSVPath, ordersCsv.Options{
			Location: cfg.Location(),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load orders csv: %w", err)
		}
		log.Info().Str("path", cfg.Source.CSVPath).Int("orders", len(records)).Msg("csv order source ready")

		return ordersCsv.NewStore(records), func() {}, nil
	}
}
