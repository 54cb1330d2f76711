package commands

import (
	"fmt"
	"strconv"

	"github.com/de-tools/revenue-atlas/pkg/analytics"
	"github.com/de-tools/revenue-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

type ForecastCmd struct {
	values   []float64
	horizon  int
	reporter *export.Reporter
}

func NewForecastCmd(reporter *export.Reporter, defaultHorizon int) *cobra.Command {
	fc := &ForecastCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Project a series forward using its recent average change",
		RunE:  fc.run,
	}

	cmd.Flags().Float64SliceVar(&fc.values, "values", nil, "Observed values, oldest first (e.g. 100,120,130)")
	cmd.Flags().IntVar(&fc.horizon, "horizon", defaultHorizon, "Number of points to project")
	_ = cmd.MarkFlagRequired("values")

	return cmd
}

func (fc *ForecastCmd) run(cmd *cobra.Command, args []string) error {
	if fc.horizon < 0 || fc.horizon > analytics.MaxHorizon {
		return fmt.Errorf("--horizon must be between 0 and %d, got %d", analytics.MaxHorizon, fc.horizon)
	}

	forecast := analytics.Forecast(fc.values, fc.horizon)

	rows := make([][]string, 0, len(forecast))
	for i, v := range forecast {
		rows = append(rows, []string{fmt.Sprintf("+%d", i+1), strconv.FormatFloat(v, 'f', -1, 64)})
	}
	return fc.reporter.Table([]string{"Step", "Forecast"}, rows)
}
