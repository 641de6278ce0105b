package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "romaneio"

// Metrics 进程内指标；方法对 nil 接收者安全
type Metrics struct {
	registry *prometheus.Registry

	importsTotal   *prometheus.CounterVec
	importDuration prometheus.Histogram
	routesLoaded   prometheus.Gauge
	exportsTotal   *prometheus.CounterVec
}

// New 创建独立 Registry 并注册全部指标
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		importsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "imports_total",
			Help:      "Imports by file kind and outcome.",
		}, []string{"kind", "status"}),
		importDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "import_duration_seconds",
			Help:      "Time spent decoding and aggregating an uploaded file.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		routesLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "routes_loaded",
			Help:      "Routes in the current dataset.",
		}),
		exportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Exports by format and mode.",
		}, []string{"format", "mode"}),
	}
	reg.MustRegister(
		m.importsTotal,
		m.importDuration,
		m.routesLoaded,
		m.exportsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveImport 记录一次导入结果
func (m *Metrics) ObserveImport(kind, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.importsTotal.WithLabelValues(kind, status).Inc()
	m.importDuration.Observe(d.Seconds())
}

// SetRoutes 更新当前线路数量
func (m *Metrics) SetRoutes(n int) {
	if m == nil {
		return
	}
	m.routesLoaded.Set(float64(n))
}

// IncExport 记录一次导出
func (m *Metrics) IncExport(format, mode string) {
	if m == nil {
		return
	}
	m.exportsTotal.WithLabelValues(format, mode).Inc()
}

// Registry 返回底层 Registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler 返回 /metrics 处理器
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
