// Package metrics 基于Prometheus的指标收集
//
// # 指标类型
//
//   - Counter：只增不减的累计值（请求总数、借阅次数）
//   - Gauge：可增可减的瞬时值（处理中的请求数）
//   - Histogram：观测值分布（请求耗时，可计算P50/P99）
//
// # 命名规范
//
//   - Counter以_total结尾：http_requests_total
//   - Histogram以单位结尾：http_request_duration_seconds
//   - 标签只用有限取值（method、status），不要用book_id这类高基数值
//
// # 使用示例
//
//	metrics.InitMetrics()
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	metrics.RecordLoanTransition(metrics.ActionBorrow, err)
package metrics

import (
	"errors"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 借阅状态迁移动作
const (
	ActionBorrow = "borrow"
	ActionReturn = "return"
)

// 借阅状态迁移结果
const (
	ResultSuccess  = "success"
	ResultConflict = "conflict"  // 已借出/未借出
	ResultNotFound = "not_found" // 图书或会员不存在
	ResultError    = "error"     // 存储等内部错误
)

var (
	// initOnce 保证只注册一次（重复注册会panic）
	initOnce sync.Once

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method、path（路由模板，如/books/:id）、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 业务指标

	// LoanTransitionsTotal 借阅状态迁移次数（Counter）
	// 标签：action（borrow/return）、result（success/conflict/not_found/error）
	LoanTransitionsTotal *prometheus.CounterVec
)

// InitMetrics 注册所有指标到默认Registry
// 可重复调用
func InitMetrics() {
	initOnce.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP请求耗时（秒）",
				// 1ms、10ms、100ms、500ms、1s、5s、10s
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "正在处理的HTTP请求数",
			},
		)

		LoanTransitionsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "library_loan_transitions_total",
				Help: "借阅/归还次数",
			},
			[]string{"action", "result"},
		)
	})
}

// RecordLoanTransition 记录一次借阅状态迁移
func RecordLoanTransition(action string, err error) {
	InitMetrics()
	LoanTransitionsTotal.WithLabelValues(action, LoanResult(err)).Inc()
}

// LoanResult 错误 → result标签
func LoanResult(err error) string {
	if err == nil {
		return ResultSuccess
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return ResultError
	}
	switch appErr.HTTPStatus() {
	case http.StatusNotFound:
		return ResultNotFound
	case http.StatusBadRequest:
		return ResultConflict
	default:
		return ResultError
	}
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}
