// Package metrics exposes store activity as Prometheus collectors.
package metrics

import (
	"todo-cli/internal/model"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "todo"

// Recorder counts store changes and tracks list size. Each Recorder owns its
// registry so several stores (tests, script runs) never collide.
type Recorder struct {
	Registry *prometheus.Registry

	changes  *prometheus.CounterVec
	failures *prometheus.CounterVec
	items    prometheus.Gauge
	editing  prometheus.Gauge
}

func NewRecorder() *Recorder {
	r := &Recorder{
		Registry: prometheus.NewRegistry(),
		changes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "changes_total",
			Help:      "Successful item list mutations by kind.",
		}, []string{"kind"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejected_operations_total",
			Help:      "Operations that were reduced to a no-op, by operation and reason.",
		}, []string{"op", "reason"}),
		items: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "items",
			Help:      "Items currently in the list.",
		}),
		editing: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "editing",
			Help:      "1 while an item is in edit mode.",
		}),
	}
	r.Registry.MustRegister(r.changes, r.failures, r.items, r.editing)
	// Pre-create every series so exports are stable even for unused kinds.
	for _, k := range model.Kinds() {
		r.changes.WithLabelValues(string(k))
	}
	return r
}

// Observe records one change. itemCount is the list length after the change.
func (r *Recorder) Observe(c model.Change, itemCount int) {
	r.changes.WithLabelValues(string(c.Kind)).Inc()
	r.items.Set(float64(itemCount))
	switch c.Kind {
	case model.ChangeEditStarted, model.ChangeEditBufferUpdated:
		r.editing.Set(1)
	case model.ChangeEditCommitted, model.ChangeEditCancelled:
		r.editing.Set(0)
	}
}

// SetEditing overrides the editing gauge (e.g. after deleting the edited item).
func (r *Recorder) SetEditing(on bool) {
	if on {
		r.editing.Set(1)
		return
	}
	r.editing.Set(0)
}

// Rejected counts an operation that failed validation or lookup.
func (r *Recorder) Rejected(op, reason string) {
	r.failures.WithLabelValues(op, reason).Inc()
}

// WriteTextfile writes the registry in the text exposition format, suitable
// for the node exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.Registry)
}
