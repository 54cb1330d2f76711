package revenue

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/de-tools/revenue-atlas/pkg/adapters"
	"github.com/de-tools/revenue-atlas/pkg/analytics"
	"github.com/de-tools/revenue-atlas/pkg/locale"
	"github.com/de-tools/revenue-atlas/pkg/models/api"
	"github.com/de-tools/revenue-atlas/pkg/models/domain"
	"github.com/de-tools/revenue-atlas/pkg/services/revenue"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// Defaults fill in query parameters the caller leaves out.
type Defaults struct {
	Period      string
	Granularity string
	Horizon     int
	Currency    string
}

type Handler struct {
	svc       revenue.Service
	formatter locale.Formatter
	defaults  Defaults
	validate  *validator.Validate
}

func NewHandler(svc revenue.Service, formatter locale.Formatter, defaults Defaults) *Handler {
	if formatter == nil {
		formatter = locale.NewUSFormatter()
	}
	if defaults.Currency == "" {
		defaults.Currency = locale.DefaultCurrency
	}
	return &Handler{
		svc:       svc,
		formatter: formatter,
		defaults:  defaults,
		validate:  validator.New(),
	}
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	query := r.URL.Query()

	end, ok := parseOptionalDate(w, query.Get("end"), "end")
	if !ok {
		return
	}
	horizon, ok := h.parseHorizon(w, query.Get("horizon"))
	if !ok {
		return
	}

	req := revenue.SummaryRequest{
		Period:      analytics.ParsePeriod(valueOr(query.Get("period"), h.defaults.Period)),
		Granularity: analytics.ParseGranularity(valueOr(query.Get("granularity"), h.defaults.Granularity)),
		End:         end,
		Horizon:     horizon,
	}

	summary, err := h.svc.Summary(ctx, req)
	if err != nil {
		logger.Error().Err(err).Str("period", string(req.Period)).Msg("failed to build revenue summary")
		http.Error(w, "failed to build revenue summary", http.StatusInternalServerError)
		return
	}

	render.JSON(w, r, adapters.MapSummaryDomainToApi(summary))
}

func (h *Handler) GetBuckets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	query := r.URL.Query()

	to, ok := parseOptionalDate(w, query.Get("to"), "to")
	if !ok {
		return
	}
	from, ok := parseOptionalDate(w, query.Get("from"), "from")
	if !ok {
		return
	}

	// without an explicit start the window is the daily lookback
	window := h.svc.DateRange(analytics.PeriodDaily, to)
	if !from.IsZero() {
		// windows exclude their start day, so step back to keep from inclusive
		window.Start = from.AddDate(0, 0, -1)
	}

	g := analytics.ParseGranularity(valueOr(query.Get("granularity"), h.defaults.Granularity))
	buckets, err := h.svc.Buckets(ctx, window, g)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load revenue buckets")
		http.Error(w, "failed to load revenue buckets", http.StatusInternalServerError)
		return
	}

	render.JSON(w, r, adapters.MapBucketsDomainToApi(buckets))
}

func (h *Handler) GetDateRange(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	end, ok := parseOptionalDate(w, query.Get("end"), "end")
	if !ok {
		return
	}

	period := analytics.ParsePeriod(valueOr(query.Get("period"), h.defaults.Period))
	render.JSON(w, r, adapters.MapDateRangeDomainToApi(h.svc.DateRange(period, end)))
}

func (h *Handler) PostForecast(w http.ResponseWriter, r *http.Request) {
	var req api.ForecastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid forecast request body", http.StatusBadRequest)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		http.Error(w, fmt.Sprintf("invalid forecast request: %v", err), http.StatusBadRequest)
		return
	}

	horizon := analytics.DefaultHorizon
	if req.Horizon != nil {
		horizon = *req.Horizon
	}

	render.JSON(w, r, api.ForecastResponse{Forecast: analytics.Forecast(req.Series, horizon)})
}

func (h *Handler) PostOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var payload []api.Order
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid orders body", http.StatusBadRequest)
		return
	}
	for i, o := range payload {
		if err := h.validate.Struct(o); err != nil {
			http.Error(w, fmt.Sprintf("invalid order at index %d: %v", i, err), http.StatusBadRequest)
			return
		}
	}

	orders, err := adapters.MapApiOrdersToDomain(payload)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	n, err := h.svc.Import(ctx, orders)
	if err != nil {
		logger.Error().Err(err).Int("orders", len(orders)).Msg("failed to import orders")
		http.Error(w, "failed to import orders", http.StatusInternalServerError)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, api.ImportResult{Imported: n})
}

func (h *Handler) GetOrderStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.svc.Stats(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to load order stats")
		http.Error(w, "failed to load order stats", http.StatusInternalServerError)
		return
	}

	render.JSON(w, r, adapters.MapOrderStatsDomainToApi(stats))
}

func (h *Handler) GetCurrency(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	value, err := strconv.ParseFloat(query.Get("value"), 64)
	if err != nil {
		http.Error(w, "invalid 'value': expected a number", http.StatusBadRequest)
		return
	}

	formatted, err := h.formatter.FormatCurrency(value, valueOr(query.Get("currency"), h.defaults.Currency))
	if errors.Is(err, domain.ErrUnsupportedCurrency) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "failed to format currency", http.StatusInternalServerError)
		return
	}

	render.JSON(w, r, api.FormattedValue{Value: formatted})
}

func (h *Handler) GetDate(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	formatted, err := locale.FormatDateString(h.formatter, query.Get("date"), locale.ParseDateStyle(query.Get("style")))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	render.JSON(w, r, api.FormattedValue{Value: formatted})
}

func (h *Handler) parseHorizon(w http.ResponseWriter, raw string) (int, bool) {
	if raw == "" {
		return h.defaults.Horizon, true
	}
	horizon, err := strconv.Atoi(raw)
	if err != nil || horizon < 0 || horizon > analytics.MaxHorizon {
		http.Error(w, fmt.Sprintf("invalid 'horizon': expected an integer between 0 and %d", analytics.MaxHorizon),
			http.StatusBadRequest)
		return 0, false
	}
	return horizon, true
}

func parseOptionalDate(w http.ResponseWriter, raw, name string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, true
	}
	t, err := analytics.ParseDate(raw)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid '%s' date format. Expected format: YYYY-MM-DD", name), http.StatusBadRequest)
		return time.Time{}, false
	}
	return t, true
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
