// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// ハンドラーおよびミドルウェアから利用する。
type MetricsCollector interface {
	RecordSignup(activityName string)
	RecordSignupRejected(reason string)
	RecordUnregister(activityName string)
	RecordUnregisterRejected(reason string)
	RecordHTTPStatus(statusCode int)
	RecordRequestDuration(duration time.Duration)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	signupTotal        *prometheus.CounterVec
	signupRejected     *prometheus.CounterVec
	unregisterTotal    *prometheus.CounterVec
	unregisterRejected *prometheus.CounterVec
	httpStatus         *prometheus.CounterVec
	requestDuration    prometheus.Histogram
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		signupTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mergington_signup_total",
			Help: "活動への登録成功の合計数",
		}, []string{"activity"}),
		signupRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mergington_signup_rejected_total",
			Help: "拒否された登録リクエストの合計数（理由別）",
		}, []string{"reason"}),
		unregisterTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mergington_unregister_total",
			Help: "活動からの登録解除成功の合計数",
		}, []string{"activity"}),
		unregisterRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mergington_unregister_rejected_total",
			Help: "拒否された登録解除リクエストの合計数（理由別）",
		}, []string{"reason"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mergington_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mergington_request_duration_seconds",
			Help:    "HTTPリクエストの処理時間（秒）",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.signupTotal,
		c.signupRejected,
		c.unregisterTotal,
		c.unregisterRejected,
		c.httpStatus,
		c.requestDuration,
	)

	return c
}

// RecordSignup は登録成功を記録する。
func (c *Collector) RecordSignup(activityName string) {
	c.signupTotal.WithLabelValues(activityName).Inc()
}

// RecordSignupRejected は登録の拒否を理由付きで記録する。
func (c *Collector) RecordSignupRejected(reason string) {
	c.signupRejected.WithLabelValues(reason).Inc()
}

// RecordUnregister は登録解除成功を記録する。
func (c *Collector) RecordUnregister(activityName string) {
	c.unregisterTotal.WithLabelValues(activityName).Inc()
}

// RecordUnregisterRejected は登録解除の拒否を理由付きで記録する。
func (c *Collector) RecordUnregisterRejected(reason string) {
	c.unregisterRejected.WithLabelValues(reason).Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestDuration はリクエストの処理時間を記録する。
func (c *Collector) RecordRequestDuration(duration time.Duration) {
	c.requestDuration.Observe(duration.Seconds())
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
