package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	handlers "github.com/de-tools/revenue-atlas/pkg/handlers/revenue"
	"github.com/de-tools/revenue-atlas/pkg/locale"
	revenueatlasmiddleware "github.com/de-tools/revenue-atlas/pkg/server/middleware"
	"github.com/de-tools/revenue-atlas/pkg/services/revenue"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const defaultShutdownTimeout = 10 * time.Second

type Dependencies struct {
	Revenue   revenue.Service
	Formatter locale.Formatter
	Defaults  handlers.Defaults
	Logger    zerolog.Logger
	// Metrics defaults to a fresh registry, so tests can build many routers.
	Metrics *prometheus.Registry
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func ConfigureRouter(config Config) *chi.Mux {
	deps := config.Dependencies
	h := handlers.NewHandler(deps.Revenue, deps.Formatter, deps.Defaults)

	registry := deps.Metrics
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	metrics := revenueatlasmiddleware.NewMetrics(registry)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(revenueatlasmiddleware.Logger(&deps.Logger))
	router.Use(metrics.Handler)
	router.Use(middleware.Recoverer)

	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/revenue", func(r chi.Router) {
			r.Get("/summary", h.GetSummary)
			r.Get("/buckets", h.GetBuckets)
			r.Get("/date-range", h.GetDateRange)
			r.Post("/forecast", h.PostForecast)
		})
		r.Post("/orders", h.PostOrders)
		r.Get("/orders/stats", h.GetOrderStats)
		r.Get("/format/currency", h.GetCurrency)
		r.Get("/format/date", h.GetDate)
	})

	return router
}

type WebAPI struct {
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

func NewWebAPI(config Config) *WebAPI {
	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	logger := config.Dependencies.Logger
	return &WebAPI{
		logger: &logger,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           ConfigureRouter(config),
			ReadHeaderTimeout: 5 * time.Second,
		},
		shutdownTimeout: timeout,
	}
}

// Start serves until the listener fails, ctx is done, or the process gets
// SIGINT/SIGTERM.
func (w *WebAPI) Start(ctx context.Context) error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		w.logger.Info().Msg("context cancelled, shutting down")
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")
	}

	// Give outstanding requests a deadline for completion.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
	defer cancel()

	err := w.server.Shutdown(shutdownCtx)
	if err != nil {
		w.logger.Error().Err(err).Msg("graceful shutdown failed")
		err = w.server.Close()
	}
	return err
}
