package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the participant feature's Prometheus metrics.
type Metrics struct {
	ParticipantsCreated prometheus.Counter
	ParticipantsUpdated prometheus.Counter
	CatalogErrors       prometheus.Counter
}

// New creates and registers the participant metrics.
func New() *Metrics {
	return &Metrics{
		ParticipantsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "orgregistry_participants_created_total",
			Help: "Total number of participants registered",
		}),
		ParticipantsUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "orgregistry_participants_updated_total",
			Help: "Total number of successful participant updates",
		}),
		CatalogErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "orgregistry_catalog_errors_total",
			Help: "Total number of failed catalog calls",
		}),
	}
}

// IncrementParticipantsCreated increments the created counter by 1.
func (m *Metrics) IncrementParticipantsCreated() {
	m.ParticipantsCreated.Inc()
}

// IncrementParticipantsUpdated increments the updated counter by 1.
func (m *Metrics) IncrementParticipantsUpdated() {
	m.ParticipantsUpdated.Inc()
}

// IncrementCatalogErrors increments the catalog error counter by 1.
func (m *Metrics) IncrementCatalogErrors() {
	m.CatalogErrors.Inc()
}
