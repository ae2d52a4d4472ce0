package attachment

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Observer captures telemetry for store operations.
type Observer interface {
	RecordSave(category Category, duration time.Duration, sizeBytes int64, err error)
	RecordDelete(duration time.Duration, err error)
}

// PrometheusObserver exports store metrics to Prometheus.
type PrometheusObserver struct {
	duration    *prometheus.HistogramVec
	errors      *prometheus.CounterVec
	storedBytes *prometheus.CounterVec
}

func NewPrometheusObserver(namespace string, reg prometheus.Registerer) (*PrometheusObserver, error) {
	if namespace == "" {
		namespace = "attachment_store"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	o := &PrometheusObserver{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Latency of attachment store operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "category"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_errors_total",
			Help:      "Count of failed attachment store operations.",
		}, []string{"operation", "category"}),
		storedBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stored_bytes_total",
			Help:      "Cumulative bytes written to the attachment store.",
		}, []string{"category"}),
	}

	var err error
	if o.duration, err = register(reg, o.duration); err != nil {
		return nil, err
	}
	if o.errors, err = register(reg, o.errors); err != nil {
		return nil, err
	}
	if o.storedBytes, err = register(reg, o.storedBytes); err != nil {
		return nil, err
	}
	return o, nil
}

// register reuses an identical collector that is already registered, so two
// stores built against the same registry share series.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("register attachment metric: %w", err)
	}
	return c, nil
}

func (o *PrometheusObserver) RecordSave(category Category, duration time.Duration, sizeBytes int64, err error) {
	if o == nil {
		return
	}
	o.duration.WithLabelValues("save", string(category)).Observe(duration.Seconds())
	if err != nil {
		o.errors.WithLabelValues("save", string(category)).Inc()
		return
	}
	o.storedBytes.WithLabelValues(string(category)).Add(float64(sizeBytes))
}

func (o *PrometheusObserver) RecordDelete(duration time.Duration, err error) {
	if o == nil {
		return
	}
	o.duration.WithLabelValues("delete", "").Observe(duration.Seconds())
	if err != nil {
		o.errors.WithLabelValues("delete", "").Inc()
	}
}

type nopObserver struct{}

func (nopObserver) RecordSave(Category, time.Duration, int64, error) {}

func (nopObserver) RecordDelete(time.Duration, error) {}
