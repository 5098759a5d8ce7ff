// Package metrics exposes Prometheus instrumentation for the HTTP server and
// the analysis and auth flows.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skinsight_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skinsight_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	analysesGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "skinsight_analyses_generated_total",
			Help: "Total number of analysis results produced",
		},
	)

	analysesSaved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skinsight_analyses_saved_total",
			Help: "Analysis history writes by outcome",
		},
		[]string{"outcome"},
	)

	analysesDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "skinsight_analyses_deleted_total",
			Help: "Total number of history delete requests served",
		},
	)

	authAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skinsight_auth_attempts_total",
			Help: "Sign-up and sign-in attempts by outcome",
		},
		[]string{"action", "outcome"},
	)

	sessionStreams = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "skinsight_session_streams_active",
			Help: "Number of open session event streams",
		},
	)
)

func AnalysisGenerated() {
	analysesGenerated.Inc()
}

func AnalysisSaved(ok bool) {
	if ok {
		analysesSaved.WithLabelValues("ok").Inc()
		return
	}
	analysesSaved.WithLabelValues("error").Inc()
}

func AnalysisDeleted() {
	analysesDeleted.Inc()
}

func AuthAttempt(action string, outcome string) {
	authAttempts.WithLabelValues(action, outcome).Inc()
}

func SessionStreamOpened() {
	sessionStreams.Inc()
}

func SessionStreamClosed() {
	sessionStreams.Dec()
}

// Middleware records request counts and latency per matched route so ids in
// paths do not explode label cardinality.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			}
		}

		route := c.Route().Path
		if status == fiber.StatusNotFound {
			route = "unmatched"
		}

		httpRequestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
