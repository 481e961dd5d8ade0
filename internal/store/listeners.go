package store

import (
	"github.com/angelmondragon/ownshop-backend/pkg/metrics"
)

// MetricsListener feeds store events into Prometheus counters.
func MetricsListener(m *metrics.StoreMetrics) Listener {
	return func(ev Event) {
		switch ev.Kind {
		case EventOperation:
			m.ObserveOperation(ev.Operation, ev.OK)
		case EventNotification:
			if ev.Notification != nil {
				m.IncNotification(ev.Notification.Variant.String())
			}
		case EventVerificationDecided:
			if ev.Verification != nil {
				m.IncDecision(ev.Verification.Status.String())
			}
		case EventCatalogLoaded:
			m.ObserveCatalogLoad(ev.Duration, ev.OK)
		}
	}
}
