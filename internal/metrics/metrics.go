package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mfpstats"

type Metrics struct {
	registry *prometheus.Registry

	apiRequests   *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	reportBuild   prometheus.Histogram
	seasonsLoaded prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Requests sent to the Matchplay API by endpoint and status.",
		}, []string{"endpoint", "status"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served by route and status.",
		}, []string{"route", "status"}),
		reportBuild: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_build_seconds",
			Help:      "Time spent building the statistics report.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		seasonsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "seasons_loaded",
			Help:      "Seasons in the last built report.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.apiRequests,
		m.httpRequests,
		m.reportBuild,
		m.seasonsLoaded,
	)
	return m
}

// APIRequest counts an upstream call. status 0 means the request never got a
// response.
func (m *Metrics) APIRequest(endpoint string, status int) {
	m.apiRequests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
}

func (m *Metrics) HTTPRequest(route string, status int) {
	m.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

func (m *Metrics) ReportBuilt(d time.Duration, seasons int) {
	m.reportBuild.Observe(d.Seconds())
	m.seasonsLoaded.Set(float64(seasons))
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
