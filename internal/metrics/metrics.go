// Package metrics holds the prometheus collectors of the API process.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Reasons a submission create is refused.
const (
	ReasonResumePassed = "resume_passed"
	ReasonChainExists  = "chain_exists"
	ReasonNotFound     = "not_found"
)

var (
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	SubmissionsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "submissions_created_total",
		Help: "Submissions written to the ledger.",
	})

	SubmissionsRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "submissions_rejected_total",
		Help: "Submission creates refused, by reason.",
	}, []string{"reason"})

	ConsultantsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "consultants_created_total",
		Help: "Consultants created through bulk add.",
	})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		httpRequests,
		httpDuration,
		SubmissionsCreated,
		SubmissionsRejected,
		ConsultantsCreated,
	)
}

// Handler serves the registry in the prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records request count and latency per route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
