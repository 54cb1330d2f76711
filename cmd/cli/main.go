package main

import (
	"fmt"
	"os"

	"github.com/de-tools/revenue-atlas/pkg/locale"
	"github.com/de-tools/revenue-atlas/pkg/runtime/terminal"
	"github.com/de-tools/revenue-atlas/pkg/services/config"
	"github.com/de-tools/revenue-atlas/pkg/services/revenue"
	"github.com/de-tools/revenue-atlas/pkg/store/duckdb"
	"github.com/de-tools/revenue-atlas/pkg/store/duckdb/orders"
	"github.com/fatih/color"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig(os.Getenv(config.EnvPrefix + "_CONFIG"))
	if err != nil {
		return err
	}

	formatter, err := locale.NewDefaultRegistry().Create(cfg.Report.Locale)
	if err != nil {
		return err
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

	cli := terminal.NewCLI(terminal.Options{
		Service:   revenue.NewService(db, orderStore),
		Formatter: formatter,
		Defaults:  cfg.Report,
		Output:    os.Stdout,
		UseColors: !color.NoColor,
	})

	return cli.Execute()
}
