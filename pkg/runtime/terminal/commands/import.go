package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/de-tools/revenue-atlas/pkg/adapters"
	"github.com/de-tools/revenue-atlas/pkg/models/api"
	"github.com/de-tools/revenue-atlas/pkg/services/revenue"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
)

type ImportCmd struct {
	file     string
	svc      revenue.Service
	validate *validator.Validate
}

func NewImportCmd(svc revenue.Service) *cobra.Command {
	ic := &ImportCmd{svc: svc, validate: validator.New()}
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load orders from a JSON file into the order store",
		RunE:  ic.run,
	}

	cmd.Flags().StringVar(&ic.file, "file", "", "Path to a JSON array of orders")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func (ic *ImportCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	data, err := os.ReadFile(ic.file)
	if err != nil {
		return fmt.Errorf("failed to read orders file: %w", err)
	}

	var payload []api.Order
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("failed to parse orders file %s: %w", ic.file, err)
	}
	for i, o := range payload {
		if err := ic.validate.Struct(o); err != nil {
			return fmt.Errorf("invalid order at index %d: %w", i, err)
		}
	}

	orders, err := adapters.MapApiOrdersToDomain(payload)
	if err != nil {
		return err
	}

	n, err := ic.svc.Import(ctx, orders)
	if err != nil {
		return fmt.Errorf("failed to import orders: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Imported %d orders from %s\n", n, ic.file)

	stats, err := ic.svc.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to load order stats: %w", err)
	}
	if stats.FirstOrderDate != nil && stats.LastOrderDate != nil {
		fmt.Fprintf(out, "Store now holds %d orders from %s to %s\n",
			stats.OrdersCount,
			stats.FirstOrderDate.Format(time.DateOnly),
			stats.LastOrderDate.Format(time.DateOnly))
	}

	return nil
}
