package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "getsemani_http_requests_total",
		Help: "Total HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "getsemani_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	ConsumptionsRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "getsemani_consumptions_registered_total",
		Help: "Total consumption ledger entries created",
	})

	PointsAwarded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "getsemani_points_awarded_total",
		Help: "Total loyalty points awarded",
	})

	ImagesUploaded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "getsemani_images_uploaded_total",
		Help: "Total business images uploaded",
	})
)

// HTTPMetrics records per-route request counts and latency. Unmatched routes
// collapse into one label to keep cardinality bounded.
func HTTPMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		startedAt := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method

		HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(startedAt).Seconds())
	}
}

func ObserveConsumption(points int) {
	ConsumptionsRegistered.Inc()
	if points > 0 {
		PointsAwarded.Add(float64(points))
	}
}

func IncImageUploaded() {
	ImagesUploaded.Inc()
}
