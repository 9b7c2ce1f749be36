package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "agoda", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "agoda", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	CatalogLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "agoda", Name: "catalog_loads_total", Help: "Archive loads by outcome."},
		[]string{"result"}, // ok|format_error|error
	)
	CatalogLoadLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "agoda", Name: "catalog_load_duration_seconds",
			Help:    "Time spent decompressing and parsing an archive.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		},
	)
	CatalogRecords = prometheus.NewGauge(
		prometheus.GaugeOpts{Namespace: "agoda", Name: "catalog_records", Help: "Records held by the last loaded catalog."},
	)
	RatesUnavailable = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "agoda", Name: "rates_unavailable_total", Help: "rates_from cells that did not parse as a number."},
	)
	Lookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "agoda", Name: "lookups_total", Help: "Catalog lookups by kind and outcome."},
		[]string{"kind", "result"}, // kind: id|url, result: hit|miss
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "agoda", Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
)

// Serve exposes reg on addr in the background. Empty addr disables it.
func Serve(addr string, reg *prometheus.Registry) *http.Server {
	if addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(reg))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
	return srv
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, CatalogLoads, CatalogLoadLatency,
		CatalogRecords, RatesUnavailable, Lookups, CacheEvents)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

// ObserveLoad records one archive load. records and unavailable are only
// meaningful when result is "ok".
func ObserveLoad(result string, records, unavailable int, dur time.Duration) {
	CatalogLoads.WithLabelValues(result).Inc()
	CatalogLoadLatency.Observe(dur.Seconds())
	if result == "ok" {
		CatalogRecords.Set(float64(records))
		RatesUnavailable.Add(float64(unavailable))
	}
}

func ObserveLookup(kind string, hit bool) {
	res := "miss"
	if hit {
		res = "hit"
	}
	Lookups.WithLabelValues(kind, res).Inc()
}

func ObserveCache(cache, event string) { // event: hit|miss|set|del
	CacheEvents.WithLabelValues(cache, event).Inc()
}
