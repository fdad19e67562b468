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
// サービス層とミドルウェアから利用する。
type MetricsCollector interface {
	RecordGenerateSuccess()
	RecordGenerateFailure(reason string)
	RecordGenerateLatency(duration time.Duration)
	RecordCheckoutCreated()
	RecordPremiumActivated()
	RecordHTTPStatus(statusCode int)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	generateSuccess  prometheus.Counter
	generateFail     *prometheus.CounterVec
	generateLatency  prometheus.Histogram
	checkoutCreated  prometheus.Counter
	premiumActivated prometheus.Counter
	httpStatus       *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		generateSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "verona_generate_success_total",
			Help: "旅程生成成功の合計数",
		}),
		generateFail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "verona_generate_fail_total",
			Help: "旅程生成失敗の合計数（理由別）",
		}, []string{"reason"}),
		generateLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "verona_generate_latency_seconds",
			Help:    "旅程生成のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		checkoutCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "verona_checkout_created_total",
			Help: "作成されたチェックアウトセッションの合計数",
		}),
		premiumActivated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "verona_premium_activated_total",
			Help: "プレミアム有効化の合計数",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "verona_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.generateSuccess,
		c.generateFail,
		c.generateLatency,
		c.checkoutCreated,
		c.premiumActivated,
		c.httpStatus,
	)

	return c
}

// RecordGenerateSuccess は旅程生成成功を記録する。
func (c *Collector) RecordGenerateSuccess() {
	c.generateSuccess.Inc()
}

// RecordGenerateFailure は旅程生成失敗を理由付きで記録する。
func (c *Collector) RecordGenerateFailure(reason string) {
	c.generateFail.WithLabelValues(reason).Inc()
}

// RecordGenerateLatency は旅程生成のレイテンシを記録する。
func (c *Collector) RecordGenerateLatency(duration time.Duration) {
	c.generateLatency.Observe(duration.Seconds())
}

// RecordCheckoutCreated はチェックアウトセッション作成を記録する。
func (c *Collector) RecordCheckoutCreated() {
	c.checkoutCreated.Inc()
}

// RecordPremiumActivated はプレミアム有効化を記録する。
func (c *Collector) RecordPremiumActivated() {
	c.premiumActivated.Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
