package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

func TestInitMetrics(t *testing.T) {
	InitMetrics()
	InitMetrics() // 重复调用不应panic

	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, HTTPRequestDuration)
	assert.NotNil(t, HTTPRequestsInProgress)
	assert.NotNil(t, LoanTransitionsTotal)
}

func TestCounterVec(t *testing.T) {
	InitMetrics()
	labels := map[string]string{"method": "GET", "path": "/metrics-test", "status": "200"}

	before := getCounterVecValue(t, HTTPRequestsTotal, labels)
	IncCounterVec(HTTPRequestsTotal, labels)
	IncCounterVec(HTTPRequestsTotal, labels)
	assert.Equal(t, before+2, getCounterVecValue(t, HTTPRequestsTotal, labels))
}

func TestGauge(t *testing.T) {
	InitMetrics()

	before := getGaugeValue(t, HTTPRequestsInProgress)
	IncGauge(HTTPRequestsInProgress)
	assert.Equal(t, before+1, getGaugeValue(t, HTTPRequestsInProgress))
	DecGauge(HTTPRequestsInProgress)
	assert.Equal(t, before, getGaugeValue(t, HTTPRequestsInProgress))
}

func TestHistogramVec(t *testing.T) {
	InitMetrics()
	labels := map[string]string{"method": "GET", "path": "/histogram-test"}

	ObserveHistogramVec(HTTPRequestDuration, labels, 0.05)
	ObserveHistogramVec(HTTPRequestDuration, labels, 0.2)

	var metric dto.Metric
	observer := HTTPRequestDuration.With(labels)
	require.NoError(t, observer.(prometheus.Histogram).Write(&metric))
	assert.Equal(t, uint64(2), metric.Histogram.GetSampleCount())
	assert.InDelta(t, 0.25, metric.Histogram.GetSampleSum(), 1e-9)
}

func TestRecordLoanTransition(t *testing.T) {
	InitMetrics()
	cases := []struct {
		name   string
		err    error
		result string
	}{
		{"成功", nil, ResultSuccess},
		{"状态冲突", apperrors.New(apperrors.ErrCodeBookAlreadyBorrowed, "Book is already borrowed"), ResultConflict},
		{"资源不存在", apperrors.New(apperrors.ErrCodeBookNotFound, "Book not found"), ResultNotFound},
		{"数据库错误", apperrors.Wrap(errors.New("io"), "failed"), ResultError},
		{"普通错误", errors.New("plain"), ResultError},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.result, LoanResult(c.err))

			labels := map[string]string{"action": ActionBorrow, "result": c.result}
			before := getCounterVecValue(t, LoanTransitionsTotal, labels)
			RecordLoanTransition(ActionBorrow, c.err)
			assert.Equal(t, before+1, getCounterVecValue(t, LoanTransitionsTotal, labels))
		})
	}
}

// 辅助函数：获取CounterVec值
func getCounterVecValue(t *testing.T, counterVec *prometheus.CounterVec, labels map[string]string) float64 {
	t.Helper()
	var metric dto.Metric
	require.NoError(t, counterVec.With(labels).Write(&metric))
	return metric.Counter.GetValue()
}

// 辅助函数：获取Gauge值
func getGaugeValue(t *testing.T, gauge prometheus.Gauge) float64 {
	t.Helper()
	var metric dto.Metric
	require.NoError(t, gauge.Write(&metric))
	return metric.Gauge.GetValue()
}
