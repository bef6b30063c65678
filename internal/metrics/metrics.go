// Package metrics provides Prometheus counters for projection runs.
package metrics

import (
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Metrics holds the counters of one process. It implements calculation.Recorder.
type Metrics struct {
	registry *prometheus.Registry

	ProjectionsTotal      *prometheus.CounterVec
	ProjectionErrorsTotal *prometheus.CounterVec
	GoalSearchesTotal     *prometheus.CounterVec
}

// NewMetrics creates the counters on a fresh registry.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "fundcalc"
	}
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		ProjectionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "projections_total",
			Help:      "Total number of completed projections",
		}, []string{"investment_type"}),
		ProjectionErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "projection_errors_total",
			Help:      "Total number of failed projections by error kind",
		}, []string{"kind"}),
		GoalSearchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "goal_searches_total",
			Help:      "Total number of goal planner runs",
		}, []string{"goal"}),
	}
}

// ProjectionCompleted increments the completed projections counter.
func (m *Metrics) ProjectionCompleted(investmentType string) {
	m.ProjectionsTotal.WithLabelValues(investmentType).Inc()
}

// ProjectionFailed increments the error counter for kind.
func (m *Metrics) ProjectionFailed(kind string) {
	m.ProjectionErrorsTotal.WithLabelValues(kind).Inc()
}

// GoalSearched increments the goal planner counter.
func (m *Metrics) GoalSearched(goal string) {
	m.GoalSearchesTotal.WithLabelValues(goal).Inc()
}

// WriteText writes every metric in the Prometheus text exposition format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// WriteFile dumps the metrics to path, replacing any previous content.
func (m *Metrics) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create metrics file: %w", err)
	}
	if err := m.WriteText(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
