package metrics

import (
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"posture-monitor/internal/domain/entity"
	"posture-monitor/internal/domain/port"
)

const namespace = "posture"

// Prometheus метрики цикла мониторинга на собственном реестре
type Prometheus struct {
	registry      *prometheus.Registry
	frames        *prometheus.CounterVec
	frameDuration prometheus.Histogram
	alerts        *prometheus.CounterVec
	skipped       *prometheus.CounterVec
	notifications *prometheus.CounterVec
}

// NewPrometheus создаёт и регистрирует все метрики
func NewPrometheus() (*Prometheus, error) {
	m := &Prometheus{
		registry: prometheus.NewRegistry(),
		frames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Processed frames partitioned by whether a face was found.",
		}, []string{"face"}),
		frameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_analysis_seconds",
			Help:      "Time spent detecting and evaluating a single frame.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1},
		}),
		alerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_total",
			Help:      "Posture alerts raised, partitioned by alert message.",
		}, []string{"alert"}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_skipped_total",
			Help:      "Frames dropped before reaching the sink.",
		}, []string{"reason"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Alert notifications partitioned by channel and result.",
		}, []string{"channel", "result"}),
	}

	for _, c := range []prometheus.Collector{
		m.frames,
		m.frameDuration,
		m.alerts,
		m.skipped,
		m.notifications,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := m.registry.Register(c); err != nil {
			return nil, errors.Wrap(err, "failed to register collector")
		}
	}

	return m, nil
}

// ObserveFrame учитывает обработанный кадр
func (m *Prometheus) ObserveFrame(duration time.Duration, faceDetected bool) {
	label := "absent"
	if faceDetected {
		label = "present"
	}
	m.frames.WithLabelValues(label).Inc()
	m.frameDuration.Observe(duration.Seconds())
}

func (m *Prometheus) ObserveAlerts(alerts []entity.Alert) {
	for _, a := range alerts {
		m.alerts.WithLabelValues(a.String()).Inc()
	}
}

func (m *Prometheus) FrameSkipped(reason string) {
	m.skipped.WithLabelValues(reason).Inc()
}

func (m *Prometheus) NotificationSent(channel string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.notifications.WithLabelValues(channel, result).Inc()
}

// Registry реестр для экспорта
func (m *Prometheus) Registry() *prometheus.Registry {
	return m.registry
}

// Handler HTTP-обработчик для /metrics
func (m *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

var _ port.Metrics = (*Prometheus)(nil)
