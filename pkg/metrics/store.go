package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics records what the per-device storefront stores are doing.
type StoreMetrics struct {
	operations    *prometheus.CounterVec
	notifications *prometheus.CounterVec
	decisions     *prometheus.CounterVec
	catalogLoad   *prometheus.HistogramVec
	devices       prometheus.Gauge
}

// NewStoreMetrics registers the store metrics on the provided registerer.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	if reg == nil {
		return &StoreMetrics{}
	}
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_operations_total",
		Help: "Store operations by name and result.",
	}, []string{"operation", "result"})
	notifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_notifications_total",
		Help: "Notifications emitted by the store, by variant.",
	}, []string{"variant"})
	decisions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "verification_decisions_total",
		Help: "Business verification decisions, by status.",
	}, []string{"status"})
	catalogLoad := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_load_duration_seconds",
		Help:    "Duration of catalog loads in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"result"})
	devices := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "store_active_devices",
		Help: "Devices currently holding an in-memory store.",
	})
	reg.MustRegister(operations, notifications, decisions, catalogLoad, devices)
	return &StoreMetrics{
		operations:    operations,
		notifications: notifications,
		decisions:     decisions,
		catalogLoad:   catalogLoad,
		devices:       devices,
	}
}

// ObserveOperation counts one store operation outcome.
func (m *StoreMetrics) ObserveOperation(operation string, ok bool) {
	if m == nil || m.operations == nil {
		return
	}
	m.operations.WithLabelValues(normalizeLabel(operation), resultLabel(ok)).Inc()
}

// IncNotification counts an emitted notification.
func (m *StoreMetrics) IncNotification(variant string) {
	if m == nil || m.notifications == nil {
		return
	}
	m.notifications.WithLabelValues(normalizeLabel(variant)).Inc()
}

// IncDecision counts an admin verification decision.
func (m *StoreMetrics) IncDecision(status string) {
	if m == nil || m.decisions == nil {
		return
	}
	m.decisions.WithLabelValues(normalizeLabel(status)).Inc()
}

// ObserveCatalogLoad records how long a catalog fetch took.
func (m *StoreMetrics) ObserveCatalogLoad(duration time.Duration, ok bool) {
	if m == nil || m.catalogLoad == nil {
		return
	}
	m.catalogLoad.WithLabelValues(resultLabel(ok)).Observe(duration.Seconds())
}

// SetActiveDevices reports the registry size.
func (m *StoreMetrics) SetActiveDevices(n int) {
	if m == nil || m.devices == nil {
		return
	}
	m.devices.Set(float64(n))
}

func resultLabel(ok bool) string {
	if ok {
		return "ok"
	}
	return "rejected"
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
