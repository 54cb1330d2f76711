package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/revenue-atlas/pkg/analytics"
	"github.com/de-tools/revenue-atlas/pkg/locale"
	"github.com/de-tools/revenue-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/revenue-atlas/pkg/services/config"
	"github.com/de-tools/revenue-atlas/pkg/services/revenue"
	"github.com/spf13/cobra"
)

const commandTimeout = 60 * time.Second

type ReportCmd struct {
	period      string
	granularity string
	end         string
	currency    string
	xlsxPath    string
	horizon     int
	svc         revenue.Service
	formatter   locale.Formatter
	reporter    *export.Reporter
}

func NewReportCmd(
	svc revenue.Service,
	formatter locale.Formatter,
	reporter *export.Reporter,
	defaults config.ReportConfig,
) *cobra.Command {
	rc := &ReportCmd{svc: svc, formatter: formatter, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Compare the latest period with the one before it and forecast revenue",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.period, "period", defaults.Period,
		"Lookback period (daily, weekly, monthly, quarterly, yearly)")
	cmd.Flags().StringVar(&rc.granularity, "granularity", defaults.Granularity, "Bucket size (day, week, month)")
	cmd.Flags().StringVar(&rc.end, "end", "", "Last day of the window, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&rc.currency, "currency", defaults.Currency, "ISO 4217 currency code for amounts")
	cmd.Flags().IntVar(&rc.horizon, "horizon", defaults.Horizon, "Number of buckets to forecast")
	cmd.Flags().StringVar(&rc.xlsxPath, "xlsx", "", "Also save the report as an xlsx workbook at this path")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	if rc.horizon < 0 || rc.horizon > analytics.MaxHorizon {
		return fmt.Errorf("--horizon must be between 0 and %d, got %d", analytics.MaxHorizon, rc.horizon)
	}

	var end time.Time
	if rc.end != "" {
		parsed, err := analytics.ParseDate(rc.end)
		if err != nil {
			return fmt.Errorf("invalid --end: %w", err)
		}
		end = parsed
	}

	summary, err := rc.svc.Summary(ctx, revenue.SummaryRequest{
		Period:      analytics.ParsePeriod(rc.period),
		Granularity: analytics.ParseGranularity(rc.granularity),
		End:         end,
		Horizon:     rc.horizon,
	})
	if err != nil {
		return fmt.Errorf("failed to build revenue summary: %w", err)
	}

	report, err := revenue.BuildReport(summary, rc.formatter, rc.currency)
	if err != nil {
		return fmt.Errorf("failed to render revenue report: %w", err)
	}

	if err := rc.reporter.Handle(report); err != nil {
		return err
	}

	if rc.xlsxPath != "" {
		if err := export.WriteWorkbook(report, rc.xlsxPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nWorkbook saved to %s\n", rc.xlsxPath)
	}
	return nil
}
