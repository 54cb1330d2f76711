package revenue

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/de-tools/revenue-atlas/pkg/adapters"
	"github.com/de-tools/revenue-atlas/pkg/analytics"
	"github.com/de-tools/revenue-atlas/pkg/models/domain"
	"github.com/de-tools/revenue-atlas/pkg/models/store"
	"github.com/de-tools/revenue-atlas/pkg/store/duckdb"
	"github.com/de-tools/revenue-atlas/pkg/store/duckdb/orders"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type SummaryRequest struct {
	Period      analytics.Period
	Granularity analytics.Granularity
	End         time.Time // zero means "now" per the service clock
	Horizon     int
}

type Service interface {
	// Summary compares the window ending at End with the window right before it
	// and forecasts the current revenue series.
	Summary(ctx context.Context, req SummaryRequest) (*domain.RevenueSummary, error)
	Buckets(ctx context.Context, window domain.DateRange, g analytics.Granularity) ([]domain.PeriodBucket, error)
	Import(ctx context.Context, orders []domain.Order) (int, error)
	Stats(ctx context.Context) (*domain.OrderStats, error)
	DateRange(period analytics.Period, end time.Time) domain.DateRange
}

type Option func(*DefaultService)

func WithClock(clock analytics.Clock) Option {
	return func(s *DefaultService) {
		if clock != nil {
			s.clock = clock
		}
	}
}

type DefaultService struct {
	db         *sql.DB
	orderStore orders.Store
	clock      analytics.Clock
}

func NewService(db *sql.DB, orderStore orders.Store, opts ...Option) *DefaultService {
	s := &DefaultService{
		db:         db,
		orderStore: orderStore,
		clock:      analytics.SystemClock,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *DefaultService) DateRange(period analytics.Period, end time.Time) domain.DateRange {
	if end.IsZero() {
		end = s.clock()
	}
	return analytics.GetDateRange(period, end)
}

func (s *DefaultService) Summary(ctx context.Context, req SummaryRequest) (*domain.RevenueSummary, error) {
	logger := zerolog.Ctx(ctx)

	current := s.DateRange(req.Period, req.End)
	previous := analytics.GetDateRange(req.Period, current.Start)

	currentBuckets, err := s.Buckets(ctx, current, req.Granularity)
	if err != nil {
		return nil, fmt.Errorf("load current window: %w", err)
	}
	previousBuckets, err := s.Buckets(ctx, previous, req.Granularity)
	if err != nil {
		return nil, fmt.Errorf("load previous window: %w", err)
	}

	trend := analytics.Chronological(currentBuckets)
	summary := &domain.RevenueSummary{
		Period:        string(req.Period),
		Granularity:   string(req.Granularity),
		Range:         current,
		PreviousRange: previous,
		Current:       currentBuckets,
		Previous:      previousBuckets,
		Comparison:    analytics.ComparePeriods(currentBuckets, previousBuckets),
		Forecast:      analytics.Forecast(analytics.RevenueSeries(trend), req.Horizon),
		OrderForecast: analytics.Forecast(analytics.OrderSeries(trend), req.Horizon),
	}

	logger.Debug().
		Str("period", summary.Period).
		Str("granularity", summary.Granularity).
		Int("current_buckets", len(currentBuckets)).
		Int("previous_buckets", len(previousBuckets)).
		Float64("revenue_change", summary.Comparison.Revenue.Change).
		Msg("revenue summary computed")

	return summary, nil
}

func (s *DefaultService) Buckets(
	ctx context.Context,
	window domain.DateRange,
	g analytics.Granularity,
) ([]domain.PeriodBucket, error) {
	records, err := s.orderStore.GetOrders(ctx, window.Start, window.End)
	if err != nil {
		return nil, err
	}
	return analytics.GroupByPeriod(adapters.MapStoreOrderRecordsToDomain(records), g), nil
}

// Import stores orders in a single transaction. Orders without an ID get a
// generated one.
func (s *DefaultService) Import(ctx context.Context, in []domain.Order) (int, error) {
	if len(in) == 0 {
		return 0, nil
	}

	records := make([]store.OrderRecord, 0, len(in))
	for _, order := range in {
		if order.ID == "" {
			order.ID = uuid.NewString()
		}
		records = append(records, adapters.MapDomainOrderToStoreRecord(order))
	}

	err := duckdb.InTransaction(ctx, s.db, func(ctx context.Context) error {
		return s.orderStore.Add(ctx, records)
	})
	if err != nil {
		return 0, fmt.Errorf("import orders: %w", err)
	}

	zerolog.Ctx(ctx).Info().Int("orders", len(records)).Msg("orders imported")
	return len(records), nil
}

func (s *DefaultService) Stats(ctx context.Context) (*domain.OrderStats, error) {
	stats, err := s.orderStore.GetOrderStats(ctx)
	if err != nil {
		return nil, err
	}
	return adapters.MapOrderStatsStoreToDomain(stats), nil
}
