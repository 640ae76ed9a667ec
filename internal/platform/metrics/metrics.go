// Package metrics はginルーター向けのPrometheusメトリクスを提供します。
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	// ContactDeliveries はお問い合わせメールの最終結果（sent, failed）を1通につき1回数えます。
	ContactDeliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_contact_deliveries_total",
			Help: "Contact form notifications by final outcome",
		},
		[]string{"outcome"},
	)

	// ContactWaitExpired は送信完了前に応答を返したお問い合わせの数です。
	// 該当メールの最終結果は別途ContactDeliveriesに記録されます。
	ContactWaitExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "blog_contact_wait_expired_total",
			Help: "Contact form submissions answered before their delivery finished",
		},
	)
)

// unmatchedRoute はどのルートにも一致しなかったリクエストのラベルで、ラベルの種類数を抑えます。
const unmatchedRoute = "unmatched"

// Middleware はリクエスト数・処理時間・処理中の件数を記録します。
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = unmatchedRoute
		}
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler はスクレイプ用にデフォルトレジストリを公開します。
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
