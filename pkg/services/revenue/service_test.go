package revenue

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/de-tools/revenue-atlas/pkg/analytics"
	"github.com/de-tools/revenue-atlas/pkg/locale"
	"github.com/de-tools/revenue-atlas/pkg/models/domain"
	"github.com/de-tools/revenue-atlas/pkg/store/duckdb/orders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderCols = []string{"id", "customer", "product", "status", "amount", "order_date"}

const selectOrders = "SELECT id, customer, product, status, amount, order_date FROM orders"

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newMockService(t *testing.T, opts ...Option) (*DefaultService, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New failed: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	orderStore, err := orders.NewStore(db)
	require.NoError(t, err)

	return NewService(db, orderStore, opts...), mock
}

func TestService_Summary(t *testing.T) {
	// Given: a daily window ending May 15 and the week before it
	svc, mock := newMockService(t)
	end := date(2023, 5, 15)

	mock.ExpectQuery(regexp.QuoteMeta(selectOrders)).
		WithArgs(date(2023, 5, 8), end).
		WillReturnRows(sqlmock.NewRows(orderCols).
			AddRow("#1", "John Doe", "Smartphone X", "Delivered", 100.0, date(2023, 5, 12)).
			AddRow("#2", "Jane Smith", "Laptop Pro", "Processing", 50.0, date(2023, 5, 12)).
			AddRow("#3", "Bob Johnson", "Wireless Earbuds", "Shipped", 30.0, date(2023, 5, 13)))
	mock.ExpectQuery(regexp.QuoteMeta(selectOrders)).
		WithArgs(date(2023, 5, 1), date(2023, 5, 8)).
		WillReturnRows(sqlmock.NewRows(orderCols).
			AddRow("#0", "Alice Williams", "Designer Watch", "Delivered", 90.0, date(2023, 5, 3)))

	// When
	summary, err := svc.Summary(context.Background(), SummaryRequest{
		Period:      analytics.PeriodDaily,
		Granularity: analytics.GranularityDay,
		End:         end,
		Horizon:     2,
	})

	// Then
	require.NoError(t, err)
	assert.Equal(t, domain.DateRange{Start: date(2023, 5, 8), End: end}, summary.Range)
	assert.Equal(t, domain.DateRange{Start: date(2023, 5, 1), End: date(2023, 5, 8)}, summary.PreviousRange)

	require.Len(t, summary.Current, 2)
	assert.Equal(t, "2023-05-12", summary.Current[0].Period)
	assert.Equal(t, 150.0, summary.Current[0].Revenue)
	assert.Equal(t, 2, summary.Current[0].Count)
	require.Len(t, summary.Previous, 1)

	assert.Equal(t, 180.0, summary.Comparison.Revenue.Current)
	assert.Equal(t, 90.0, summary.Comparison.Revenue.Previous)
	assert.Equal(t, 100.0, summary.Comparison.Revenue.Change)
	assert.Equal(t, 60.0, summary.Comparison.AOV.Current)

	// series 150, 30 -> step -120 -> floored
	assert.Equal(t, []float64{0, 0}, summary.Forecast)
	// counts 2, 1 -> step -1 -> floored
	assert.Equal(t, []float64{0, 0}, summary.OrderForecast)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled sqlmock expectations: %v", err)
	}
}

func TestService_Summary_ForecastFollowsCalendarOrder(t *testing.T) {
	// Given: one order per month from January to November, revenue growing by 100 a month
	svc, mock := newMockService(t)
	end := date(2023, 11, 15)

	rows := sqlmock.NewRows(orderCols)
	for m := time.January; m <= time.November; m++ {
		rows.AddRow(fmt.Sprintf("#%d", m), "John Doe", "Smartphone X", "Delivered", 100.0*float64(m), date(2023, m, 10))
	}
	mock.ExpectQuery(regexp.QuoteMeta(selectOrders)).
		WithArgs(date(2022, 11, 15), end).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta(selectOrders)).
		WithArgs(date(2021, 11, 15), date(2022, 11, 15)).
		WillReturnRows(sqlmock.NewRows(orderCols))

	// When
	summary, err := svc.Summary(context.Background(), SummaryRequest{
		Period:      analytics.PeriodMonthly,
		Granularity: analytics.GranularityMonth,
		End:         end,
		Horizon:     1,
	})

	// Then: buckets keep key order while the forecast uses calendar order
	require.NoError(t, err)
	require.Len(t, summary.Current, 11)
	assert.Equal(t, "2023-1", summary.Current[0].Period)
	assert.Equal(t, "2023-10", summary.Current[1].Period)
	assert.Equal(t, []float64{1200}, summary.Forecast)
	assert.Equal(t, []float64{1}, summary.OrderForecast)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Summary_DefaultsEndToClock(t *testing.T) {
	now := time.Date(2023, 5, 15, 12, 0, 0, 0, time.UTC)
	svc, mock := newMockService(t, WithClock(func() time.Time { return now }))

	mock.ExpectQuery(regexp.QuoteMeta(selectOrders)).
		WithArgs(now.AddDate(0, 0, -30), now).
		WillReturnRows(sqlmock.NewRows(orderCols))
	mock.ExpectQuery(regexp.QuoteMeta(selectOrders)).
		WithArgs(now.AddDate(0, 0, -60), now.AddDate(0, 0, -30)).
		WillReturnRows(sqlmock.NewRows(orderCols))

	summary, err := svc.Summary(context.Background(), SummaryRequest{
		Period:      analytics.ParsePeriod("bogus"),
		Granularity: analytics.GranularityMonth,
		Horizon:     analytics.DefaultHorizon,
	})

	require.NoError(t, err)
	assert.Equal(t, now, summary.Range.End)
	assert.Empty(t, summary.Current)
	assert.Empty(t, summary.Previous)
	assert.Equal(t, domain.PeriodComparison{}, summary.Comparison)
	assert.Equal(t, []float64{0, 0, 0}, summary.Forecast)
	assert.Equal(t, []float64{0, 0, 0}, summary.OrderForecast)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Summary_StoreError(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectOrders)).
		WillReturnError(errors.New("connection reset"))

	_, err := svc.Summary(context.Background(), SummaryRequest{
		Period:      analytics.PeriodWeekly,
		Granularity: analytics.GranularityWeek,
		End:         date(2023, 5, 15),
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "load current window")
	assert.Contains(t, err.Error(), "connection reset")
}

func TestService_Import(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	prep := mock.ExpectPrepare("INSERT INTO orders")
	prep.ExpectExec().
		WithArgs("#1", "John Doe", "Smartphone X", "Delivered", 899.0, date(2023, 5, 12)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().
		WithArgs(sqlmock.AnyArg(), "Jane Smith", "Laptop Pro", "Processing", 1299.0, date(2023, 5, 14)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	n, err := svc.Import(context.Background(), []domain.Order{
		{ID: "#1", Customer: "John Doe", Product: "Smartphone X", Status: "Delivered", Amount: 899, Date: date(2023, 5, 12)},
		{Customer: "Jane Smith", Product: "Laptop Pro", Status: "Processing", Amount: 1299, Date: time.Date(2023, 5, 14, 9, 30, 0, 0, time.UTC)},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Import_RollsBackOnFailure(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectPrepare("INSERT INTO orders").
		ExpectExec().
		WillReturnError(errors.New("duplicate key"))
	mock.ExpectRollback()

	n, err := svc.Import(context.Background(), []domain.Order{{ID: "#1", Amount: 1, Date: date(2023, 5, 12)}})

	require.Error(t, err)
	assert.Equal(t, 0, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Import_Empty(t *testing.T) {
	svc, mock := newMockService(t)

	n, err := svc.Import(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Stats(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*), MIN(order_date), MAX(order_date) FROM orders")).
		WillReturnRows(sqlmock.NewRows([]string{"count", "min", "max"}).
			AddRow(int64(2), date(2023, 5, 10), date(2023, 5, 14)))

	stats, err := svc.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.OrdersCount)
	require.NotNil(t, stats.FirstOrderDate)
	assert.Equal(t, date(2023, 5, 10), *stats.FirstOrderDate)
}

func TestBuildReport(t *testing.T) {
	summary := &domain.RevenueSummary{
		Period:      "daily",
		Granularity: "day",
		Range:       domain.DateRange{Start: date(2023, 5, 8), End: date(2023, 5, 15)},
		Current: []domain.PeriodBucket{
			{Period: "2023-05-12", Revenue: 1500, Count: 2},
		},
		Comparison: analytics.ComparePeriods(
			[]domain.PeriodBucket{{Revenue: 1500, Count: 2}},
			[]domain.PeriodBucket{{Revenue: 1000, Count: 2}},
		),
		Forecast:      []float64{1600, 1700},
		OrderForecast: []float64{3, 4},
	}

	report, err := BuildReport(summary, locale.NewUSFormatter(), "USD")

	require.NoError(t, err)
	assert.Equal(t, "Revenue report (daily by day)", report.Title)
	assert.Equal(t, "May 8, 2023 to May 15, 2023", report.Period.Label)
	assert.Equal(t, 7, report.Period.Duration)
	assert.Equal(t, 1500.0, report.TotalAmount)
	require.Len(t, report.Sections, 3)

	revenue := report.Sections[0].Details[0]
	assert.Equal(t, "Revenue", revenue.Name)
	require.NotNil(t, revenue.Change)
	assert.Equal(t, 50.0, *revenue.Change)
	assert.Contains(t, revenue.Values[0], "1,500")

	assert.Equal(t, "2023-05-12", report.Sections[1].Details[0].Name)
	assert.Equal(t, "2", report.Sections[1].Details[0].Values[1])
	require.Len(t, report.Sections[2].Details, 2)
	assert.Equal(t, []string{"Step", "Revenue", "Orders"}, report.Sections[2].Columns)
	assert.Equal(t, "4", report.Sections[2].Details[1].Values[1])
}

func TestBuildReport_UnsupportedCurrency(t *testing.T) {
	_, err := BuildReport(&domain.RevenueSummary{}, locale.NewUSFormatter(), "QQQ")

	assert.ErrorIs(t, err, domain.ErrUnsupportedCurrency)
}
