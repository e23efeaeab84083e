// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	gamesSubmitted *prometheus.CounterVec
	storageFailure prometheus.Counter
	httpStatus     *prometheus.CounterVec
	requestLatency prometheus.Histogram
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		gamesSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "marubatsu_games_submitted_total",
			Help: "提出されたゲーム記録の結果別合計数",
		}, []string{"outcome"}),
		storageFailure: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "marubatsu_storage_failure_total",
			Help: "永続化層の失敗の合計数",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "marubatsu_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "marubatsu_request_latency_seconds",
			Help:    "HTTPリクエスト処理のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.gamesSubmitted,
		c.storageFailure,
		c.httpStatus,
		c.requestLatency,
	)

	return c
}

// RecordGameSubmitted は提出されたゲーム記録を結果別に記録する。
func (c *Collector) RecordGameSubmitted(outcome string) {
	c.gamesSubmitted.WithLabelValues(outcome).Inc()
}

// RecordStorageFailure は永続化層の失敗を記録する。
func (c *Collector) RecordStorageFailure() {
	c.storageFailure.Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency はリクエスト処理のレイテンシを記録する。
func (c *Collector) RecordRequestLatency(duration time.Duration) {
	c.requestLatency.Observe(duration.Seconds())
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
