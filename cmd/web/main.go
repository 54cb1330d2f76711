package main

import (
	"fmt"
	"net"
	"os"
	"time"

	handlers "github.com/de-tools/revenue-atlas/pkg/handlers/revenue"
	"github.com/de-tools/revenue-atlas/pkg/locale"
	"github.com/de-tools/revenue-atlas/pkg/server"
	"github.com/de-tools/revenue-atlas/pkg/services/config"
	"github.com/de-tools/revenue-atlas/pkg/services/revenue"
	"github.com/de-tools/revenue-atlas/pkg/store/duckdb"
	"github.com/de-tools/revenue-atlas/pkg/store/duckdb/orders"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Revenue Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a YAML config file (REVENUE_ATLAS_* env vars override it)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	formatter, err := locale.NewDefaultRegistry().Create(cfg.Report.Locale)
	if err != nil {
		return fmt.Errorf("failed to create formatter: %w", err)
	}

	db, err := duckdb.NewDB(duckdb.Settings{
		DbPath:  cfg.Database.Path,
		Threads: cfg.Database.Threads,
	})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	defer db.Close()

	orderStore, err := orders.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create order store: %w", err)
	}
	svc := revenue.NewService(db, orderStore)

	stats, err := svc.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to read order store: %w", err)
	}
	logger.Info().
		Str("db", cfg.Database.Path).
		Int64("orders", stats.OrdersCount).
		Msg("order store opened")

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db, "orders"),
	)

	webAPI := server.NewWebAPI(server.Config{
		Addr:            net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		ShutdownTimeout: time.Duration(cfg.Server.ShutdownTimeout) * time.Second,
		Dependencies: server.Dependencies{
			Revenue:   svc,
			Formatter: formatter,
			Defaults: handlers.Defaults{
				Period:      cfg.Report.Period,
				Granularity: cfg.Report.Granularity,
				Horizon:     cfg.Report.Horizon,
				Currency:    cfg.Report.Currency,
			},
			Logger:  logger,
			Metrics: registry,
		},
	})

	return webAPI.Start(ctx)
}
