// Package metrics provides Prometheus instrumentation for the encrypted
// storage: one outcome counter and one duration histogram per component and
// operation.
//
// A nil *Metrics is valid and records nothing, so components can take it as
// an optional dependency.
package metrics

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"

	"github.com/MKhiriev/tim-encrypted-storage/models"
)

const (
	// Namespace is the Prometheus namespace for all metrics.
	Namespace = "tim_encrypted_storage"

	LabelComponent = "component"
	LabelOperation = "operation"
	LabelOutcome   = "outcome"

	ComponentKeyService = "key_service"
	ComponentStorage    = "encrypted_storage"

	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Metrics holds the collectors registered on one registry.
type Metrics struct {
	gatherer prometheus.Gatherer

	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	return NewWithRegistry(reg, reg)
}

// NewWithRegistry registers the collectors on reg and gathers from gatherer.
func NewWithRegistry(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		gatherer: gatherer,
		operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "operations_total",
				Help:      "Total number of operations by component, operation and outcome",
			},
			[]string{LabelComponent, LabelOperation, LabelOutcome},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "operation_duration_seconds",
				Help:      "Duration of operations in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{LabelComponent, LabelOperation},
		),
	}
}

// Observe records one finished operation. The outcome label is the error kind
// for taxonomy errors, OutcomeError for any other error and OutcomeSuccess
// for nil.
func (m *Metrics) Observe(component, operation string, started time.Time, err error) {
	if m == nil {
		return
	}

	m.operations.WithLabelValues(component, operation, Outcome(err)).Inc()
	m.duration.WithLabelValues(component, operation).Observe(time.Since(started).Seconds())
}

// WriteText writes every gathered metric family in the Prometheus text
// exposition format.
func (m *Metrics) WriteText(w io.Writer) error {
	if m == nil {
		return nil
	}

	families, err := m.gatherer.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err = expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}

// Outcome maps err to an outcome label value. The innermost key service or
// secure storage kind wins over the encrypted storage kind, so
// "KeyServiceFailed" never hides "KeyLocked".
func Outcome(err error) string {
	if err == nil {
		return OutcomeSuccess
	}

	var ksErr *models.KeyServiceError
	if errors.As(err, &ksErr) {
		return ksErr.Kind.String()
	}
	var ssErr *models.SecureStorageError
	if errors.As(err, &ssErr) {
		return ssErr.Kind.String()
	}
	var esErr *models.EncryptedStorageError
	if errors.As(err, &esErr) {
		return esErr.Kind.String()
	}
	return OutcomeError
}
