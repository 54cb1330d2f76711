package revenue

import (
	"fmt"

	"github.com/de-tools/revenue-atlas/pkg/locale"
	"github.com/de-tools/revenue-atlas/pkg/models/domain"
)

// BuildReport renders a summary into display-ready sections using f for
// money and date labels.
func BuildReport(summary *domain.RevenueSummary, f locale.Formatter, currency string) (*domain.Report, error) {
	money := func(v float64) (string, error) {
		return f.FormatCurrency(v, currency)
	}

	comparison, err := comparisonSection(summary.Comparison, money)
	if err != nil {
		return nil, err
	}
	buckets, err := bucketsSection(summary, money)
	if err != nil {
		return nil, err
	}
	forecast, err := forecastSection(summary, money)
	if err != nil {
		return nil, err
	}

	r := summary.Range
	return &domain.Report{
		Title: fmt.Sprintf("Revenue report (%s by %s)", summary.Period, summary.Granularity),
		Period: domain.TimePeriod{
			Start:    r.Start,
			End:      r.End,
			Duration: r.Days(),
			Label: fmt.Sprintf("%s to %s",
				f.FormatDate(r.Start, locale.DateStyleMedium),
				f.FormatDate(r.End, locale.DateStyleMedium)),
		},
		Sections:    []domain.ReportSection{comparison, buckets, forecast},
		TotalAmount: summary.Comparison.Revenue.Current,
		Currency:    currency,
	}, nil
}

func comparisonSection(c domain.PeriodComparison, money func(float64) (string, error)) (domain.ReportSection, error) {
	section := domain.ReportSection{
		Title:   "Period comparison",
		Columns: []string{"Metric", "Current", "Previous", "Change"},
	}

	revenueCurrent, err := money(c.Revenue.Current)
	if err != nil {
		return section, err
	}
	revenuePrevious, err := money(c.Revenue.Previous)
	if err != nil {
		return section, err
	}
	aovCurrent, err := money(c.AOV.Current)
	if err != nil {
		return section, err
	}
	aovPrevious, err := money(c.AOV.Previous)
	if err != nil {
		return section, err
	}

	section.Details = []domain.ReportDetail{
		metricDetail("Revenue", revenueCurrent, revenuePrevious, c.Revenue.Change),
		metricDetail("Orders",
			fmt.Sprintf("%.0f", c.Orders.Current),
			fmt.Sprintf("%.0f", c.Orders.Previous),
			c.Orders.Change),
		metricDetail("Average order value", aovCurrent, aovPrevious, c.AOV.Change),
	}
	return section, nil
}

func metricDetail(name, current, previous string, change float64) domain.ReportDetail {
	return domain.ReportDetail{
		Name:   name,
		Values: []string{current, previous},
		Change: &change,
	}
}

func bucketsSection(summary *domain.RevenueSummary, money func(float64) (string, error)) (domain.ReportSection, error) {
	section := domain.ReportSection{
		Title:   fmt.Sprintf("Revenue by %s", summary.Granularity),
		Columns: []string{"Period", "Revenue", "Orders"},
		Summary: map[string]interface{}{
			"Buckets": len(summary.Current),
		},
	}

	for _, b := range summary.Current {
		revenue, err := money(b.Revenue)
		if err != nil {
			return section, err
		}
		section.Details = append(section.Details, domain.ReportDetail{
			Name:   b.Period,
			Values: []string{revenue, fmt.Sprintf("%d", b.Count)},
		})
	}
	return section, nil
}

func forecastSection(
	summary *domain.RevenueSummary,
	money func(float64) (string, error),
) (domain.ReportSection, error) {
	section := domain.ReportSection{
		Title:   "Forecast",
		Columns: []string{"Step", "Revenue", "Orders"},
	}

	for i, v := range summary.Forecast {
		revenue, err := money(v)
		if err != nil {
			return section, err
		}
		orders := "-"
		if i < len(summary.OrderForecast) {
			orders = fmt.Sprintf("%.0f", summary.OrderForecast[i])
		}
		section.Details = append(section.Details, domain.ReportDetail{
			Name:   fmt.Sprintf("+%d", i+1),
			Values: []string{revenue, orders},
		})
	}
	return section, nil
}
