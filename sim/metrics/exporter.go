// Package metrics exports finished-run counters in the Prometheus text format,
// for collection through a node exporter textfile directory.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Exporter holds run gauges on a private registry.
type Exporter struct {
	registry       *prometheus.Registry
	inspections    *prometheus.GaugeVec
	monkeyBusiness *prometheus.GaugeVec
	rounds         *prometheus.GaugeVec
}

// NewExporter creates an Exporter with its own registry.
func NewExporter() *Exporter {
	e := &Exporter{
		registry: prometheus.NewRegistry(),
		inspections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "keepaway",
			Name:      "unit_inspections",
			Help:      "Items inspected by each unit over a finished run.",
		}, []string{"run", "unit"}),
		monkeyBusiness: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "keepaway",
			Name:      "monkey_business",
			Help:      "Product of the two largest unit inspection counters.",
		}, []string{"run"}),
		rounds: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "keepaway",
			Name:      "rounds",
			Help:      "Rounds played in a finished run.",
		}, []string{"run"}),
	}
	e.registry.MustRegister(e.inspections, e.monkeyBusiness, e.rounds)
	return e
}

// Observe records the final state of one run under the given run label.
// Observing the same label again overwrites the previous values.
func (e *Exporter) Observe(run string, rounds int, inspections []uint64, monkeyBusiness uint64) {
	for i, n := range inspections {
		e.inspections.WithLabelValues(run, strconv.Itoa(i)).Set(float64(n))
	}
	e.monkeyBusiness.WithLabelValues(run).Set(float64(monkeyBusiness))
	e.rounds.WithLabelValues(run).Set(float64(rounds))
}

// WriteTextfile writes every gathered metric to path atomically.
func (e *Exporter) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, e.registry)
}
