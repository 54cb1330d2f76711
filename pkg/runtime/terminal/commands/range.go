package commands

import (
	"fmt"
	"strconv"

	"github.com/de-tools/revenue-atlas/pkg/analytics"
	"github.com/de-tools/revenue-atlas/pkg/locale"
	"github.com/de-tools/revenue-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

type RangeCmd struct {
	period    string
	end       string
	clock     analytics.Clock
	formatter locale.Formatter
	reporter  *export.Reporter
}

func NewRangeCmd(
	clock analytics.Clock,
	formatter locale.Formatter,
	reporter *export.Reporter,
	defaultPeriod string,
) *cobra.Command {
	if clock == nil {
		clock = analytics.SystemClock
	}
	rc := &RangeCmd{clock: clock, formatter: formatter, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "range",
		Short: "Show the date window a period covers",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.period, "period", defaultPeriod,
		"Lookback period (daily, weekly, monthly, quarterly, yearly)")
	cmd.Flags().StringVar(&rc.end, "end", "", "Last day of the window, YYYY-MM-DD (default today)")

	return cmd
}

func (rc *RangeCmd) run(cmd *cobra.Command, args []string) error {
	period := analytics.ParsePeriod(rc.period)

	window := analytics.DateRangeAt(period, rc.clock)
	if rc.end != "" {
		end, err := analytics.ParseDate(rc.end)
		if err != nil {
			return fmt.Errorf("invalid --end: %w", err)
		}
		window = analytics.GetDateRange(period, end)
	}

	return rc.reporter.Table(
		[]string{"Period", "Start", "End", "Days"},
		[][]string{{
			string(period),
			rc.formatter.FormatDate(window.Start, locale.DateStyleMedium),
			rc.formatter.FormatDate(window.End, locale.DateStyleMedium),
			strconv.Itoa(window.Days()),
		}},
	)
}
