// Package metrics exposes quiz and HTTP counters in Prometheus format.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/playperu/lovebird/internal/quiz"
)

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	reg *prometheus.Registry

	SessionsStarted prometheus.Counter
	Answers         *prometheus.CounterVec
	Results         *prometheus.CounterVec
	Faults          *prometheus.CounterVec
	requests        *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		SessionsStarted: f.NewCounter(prometheus.CounterOpts{
			Name: "lovebird_sessions_started_total",
			Help: "Total number of quiz sessions started or restarted.",
		}),
		Answers: f.NewCounterVec(prometheus.CounterOpts{
			Name: "lovebird_answers_total",
			Help: "Total number of answers recorded, by quiz mode.",
		}, []string{"mode"}),
		Results: f.NewCounterVec(prometheus.CounterOpts{
			Name: "lovebird_results_total",
			Help: "Total number of sessions that reached a result, by result name.",
		}, []string{"result"}),
		Faults: f.NewCounterVec(prometheus.CounterOpts{
			Name: "lovebird_faults_total",
			Help: "Total number of sessions that hit a scenario fault, by kind.",
		}, []string{"kind"}),
		requests: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lovebird_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}

// ObserveView counts terminal views: results by name and faults by kind.
func (m *Metrics) ObserveView(v quiz.View) {
	switch v.Kind {
	case quiz.ViewResult:
		m.Results.WithLabelValues(resultName(v)).Inc()
	case quiz.ViewNotFound, quiz.ViewNoResult:
		m.Faults.WithLabelValues(string(v.Kind)).Inc()
	}
}

func resultName(v quiz.View) string {
	if v.Result != nil {
		return v.Result.Name
	}
	if v.Node != nil {
		if v.Node.Title != "" {
			return v.Node.Title
		}
		return v.Node.ID
	}
	return ""
}

// Handler serves the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// Middleware records request latency labelled by chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	})
}
