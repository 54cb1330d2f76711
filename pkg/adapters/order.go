package adapters

import (
	"fmt"
	"time"

	"github.com/de-tools/revenue-atlas/pkg/analytics"
	"github.com/de-tools/revenue-atlas/pkg/models/api"
	"github.com/de-tools/revenue-atlas/pkg/models/domain"
	"github.com/de-tools/revenue-atlas/pkg/models/store"
)

func MapStoreOrderRecordToDomain(record store.OrderRecord) domain.Order {
	return domain.Order{
		ID:       record.ID,
		Customer: record.Customer,
		Product:  record.Product,
		Status:   record.Status,
		Amount:   record.Amount,
		Date:     record.OrderDate,
	}
}

func MapStoreOrderRecordsToDomain(records []store.OrderRecord) []domain.Order {
	orders := make([]domain.Order, 0, len(records))
	for _, r := range records {
		orders = append(orders, MapStoreOrderRecordToDomain(r))
	}
	return orders
}

func MapDomainOrderToStoreRecord(order domain.Order) store.OrderRecord {
	return store.OrderRecord{
		ID:        order.ID,
		Customer:  order.Customer,
		Product:   order.Product,
		Status:    order.Status,
		Amount:    order.Amount,
		OrderDate: analytics.TruncateToDay(order.Date),
	}
}

func MapOrderStatsStoreToDomain(stats *store.OrderStats) *domain.OrderStats {
	if stats == nil {
		return nil
	}

	return &domain.OrderStats{
		OrdersCount:    stats.OrdersCount,
		FirstOrderDate: stats.FirstOrderDate,
		LastOrderDate:  stats.LastOrderDate,
	}
}

func MapOrderStatsDomainToApi(stats *domain.OrderStats) api.OrderStats {
	if stats == nil {
		return api.OrderStats{}
	}
	return api.OrderStats{
		OrdersCount:    stats.OrdersCount,
		FirstOrderDate: stats.FirstOrderDate,
		LastOrderDate:  stats.LastOrderDate,
	}
}

// MapApiOrderToDomain fails with domain.ErrInvalidDate when the order date cannot be parsed.
func MapApiOrderToDomain(order api.Order) (domain.Order, error) {
	date, err := analytics.ParseDate(order.Date)
	if err != nil {
		return domain.Order{}, fmt.Errorf("order %q: %w", order.ID, err)
	}

	return domain.Order{
		ID:       order.ID,
		Customer: order.Customer,
		Product:  order.Product,
		Status:   order.Status,
		Amount:   order.Amount,
		Date:     date,
	}, nil
}

func MapApiOrdersToDomain(orders []api.Order) ([]domain.Order, error) {
	out := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		order, err := MapApiOrderToDomain(o)
		if err != nil {
			return nil, err
		}
		out = append(out, order)
	}
	return out, nil
}

func MapOrderDomainToApi(order domain.Order) api.Order {
	return api.Order{
		ID:       order.ID,
		Customer: order.Customer,
		Product:  order.Product,
		Status:   order.Status,
		Amount:   order.Amount,
		Date:     order.Date.Format(time.DateOnly),
	}
}

func MapBucketDomainToApi(bucket domain.PeriodBucket) api.PeriodBucket {
	orders := make([]api.Order, 0, len(bucket.Orders))
	for _, o := range bucket.Orders {
		orders = append(orders, MapOrderDomainToApi(o))
	}

	return api.PeriodBucket{
		Period:  bucket.Period,
		Orders:  orders,
		Revenue: bucket.Revenue,
		Count:   bucket.Count,
	}
}

func MapBucketsDomainToApi(buckets []domain.PeriodBucket) []api.PeriodBucket {
	out := make([]api.PeriodBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, MapBucketDomainToApi(b))
	}
	return out
}

func MapComparisonDomainToApi(c domain.PeriodComparison) api.PeriodComparison {
	return api.PeriodComparison{
		Revenue: api.ComparisonMetric(c.Revenue),
		Orders:  api.ComparisonMetric(c.Orders),
		AOV:     api.ComparisonMetric(c.AOV),
	}
}

func MapDateRangeDomainToApi(r domain.DateRange) api.DateRange {
	return api.DateRange{Start: r.Start, End: r.End}
}

func MapSummaryDomainToApi(s *domain.RevenueSummary) api.RevenueSummary {
	return api.RevenueSummary{
		Period:        s.Period,
		Granularity:   s.Granularity,
		Range:         MapDateRangeDomainToApi(s.Range),
		PreviousRange: MapDateRangeDomainToApi(s.PreviousRange),
		Current:       MapBucketsDomainToApi(s.Current),
		Previous:      MapBucketsDomainToApi(s.Previous),
		Comparison:    MapComparisonDomainToApi(s.Comparison),
		Forecast:      s.Forecast,
		OrderForecast: s.OrderForecast,
	}
}
