package analytics

import (
	"testing"
	"time"

	"github.com/de-tools/revenue-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func order(id string, amount float64, date time.Time) domain.Order {
	return domain.Order{ID: id, Customer: "John Doe", Product: "Smartphone X", Status: "Delivered", Amount: amount, Date: date}
}

func TestParseGranularity(t *testing.T) {
	assert.Equal(t, GranularityDay, ParseGranularity("day"))
	assert.Equal(t, GranularityWeek, ParseGranularity("week"))
	assert.Equal(t, GranularityMonth, ParseGranularity(" Month "))
	assert.Equal(t, GranularityDay, ParseGranularity("fortnight"))
	assert.Equal(t, GranularityDay, ParseGranularity(""))
}

func TestPeriodKey(t *testing.T) {
	tests := []struct {
		name        string
		date        time.Time
		granularity Granularity
		expected    string
	}{
		{"day is zero padded", day(2023, 5, 2), GranularityDay, "2023-05-02"},
		{"month is unpadded", day(2023, 5, 12), GranularityMonth, "2023-5"},
		{"two digit month", day(2023, 11, 1), GranularityMonth, "2023-11"},
		// 2023-01-01 is a Sunday
		{"first day of year", day(2023, 1, 1), GranularityWeek, "2023-W1"},
		{"end of first week", day(2023, 1, 7), GranularityWeek, "2023-W1"},
		{"start of second week", day(2023, 1, 8), GranularityWeek, "2023-W2"},
		{"mid may", day(2023, 5, 12), GranularityWeek, "2023-W19"},
		// 2022-01-01 is a Saturday, so the first week is one day long
		{"saturday new year", day(2022, 1, 1), GranularityWeek, "2022-W1"},
		{"sunday after saturday new year", day(2022, 1, 2), GranularityWeek, "2022-W2"},
		{"last day of year", day(2022, 12, 31), GranularityWeek, "2022-W53"},
		{"unknown granularity falls back to day", day(2023, 5, 12), Granularity("hour"), "2023-05-12"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, PeriodKey(tc.date, tc.granularity))
		})
	}
}

func TestGroupByPeriod_Day(t *testing.T) {
	orders := []domain.Order{
		order("#1", 100, day(2023, 5, 12)),
		order("#2", 50, day(2023, 5, 12)),
		order("#3", 30, day(2023, 5, 13)),
	}

	buckets := GroupByPeriod(orders, GranularityDay)

	require.Len(t, buckets, 2)
	assert.Equal(t, "2023-05-12", buckets[0].Period)
	assert.Equal(t, 150.0, buckets[0].Revenue)
	assert.Equal(t, 2, buckets[0].Count)
	assert.Equal(t, []string{"#1", "#2"}, ids(buckets[0].Orders))

	assert.Equal(t, "2023-05-13", buckets[1].Period)
	assert.Equal(t, 30.0, buckets[1].Revenue)
	assert.Equal(t, 1, buckets[1].Count)
}

func TestGroupByPeriod_Empty(t *testing.T) {
	for _, g := range []Granularity{GranularityDay, GranularityWeek, GranularityMonth, "unknown"} {
		buckets := GroupByPeriod(nil, g)
		assert.NotNil(t, buckets)
		assert.Empty(t, buckets)
	}
}

func TestGroupByPeriod_LexicographicOrder(t *testing.T) {
	orders := []domain.Order{
		order("#1", 10, day(2023, 2, 1)),
		order("#2", 20, day(2023, 10, 1)),
		order("#3", 30, day(2023, 1, 15)),
	}

	buckets := GroupByPeriod(orders, GranularityMonth)

	require.Len(t, buckets, 3)
	assert.Equal(t, []string{"2023-1", "2023-10", "2023-2"}, periods(buckets))
}

func TestGroupByPeriod_ConservesTotals(t *testing.T) {
	orders := []domain.Order{
		order("#1", 899, day(2023, 5, 12)),
		order("#2", 1299, day(2023, 5, 14)),
		order("#3", 129, day(2023, 5, 13)),
		order("#4", 250, day(2023, 5, 10)),
		order("#5", 899, day(2023, 5, 15)),
		order("#6", 75, day(2023, 3, 2)),
		order("#7", 410, day(2022, 12, 30)),
	}
	var expected float64
	for _, o := range orders {
		expected += o.Amount
	}

	for _, g := range []Granularity{GranularityDay, GranularityWeek, GranularityMonth} {
		t.Run(string(g), func(t *testing.T) {
			buckets := GroupByPeriod(orders, g)

			var revenue float64
			var count int
			for _, b := range buckets {
				revenue += b.Revenue
				count += b.Count
			}
			assert.InDelta(t, expected, revenue, 1e-9)
			assert.Equal(t, len(orders), count)
		})
	}
}

func TestGroupByPeriod_Idempotent(t *testing.T) {
	orders := []domain.Order{
		order("#1", 10, day(2023, 1, 3)),
		order("#2", 20, day(2023, 1, 9)),
		order("#3", 30, day(2023, 1, 3)),
	}
	snapshot := append([]domain.Order(nil), orders...)

	first := GroupByPeriod(orders, GranularityWeek)
	second := GroupByPeriod(orders, GranularityWeek)

	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, orders)
}

func ids(orders []domain.Order) []string {
	out := make([]string, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID)
	}
	return out
}

func periods(buckets []domain.PeriodBucket) []string {
	out := make([]string, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, b.Period)
	}
	return out
}
