package metrics

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/tim-encrypted-storage/models"
)

func TestObserve(t *testing.T) {
	m := New()
	started := time.Now()

	m.Observe(ComponentKeyService, "create_key", started, nil)
	m.Observe(ComponentKeyService, "create_key", started, nil)
	m.Observe(ComponentKeyService, "create_key", started, models.NewKeyServiceError(models.KeyLocked, nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.operations.WithLabelValues(ComponentKeyService, "create_key", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues(ComponentKeyService, "create_key", "KeyLocked")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

func TestObserve_NilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Observe(ComponentStorage, "get", time.Now(), nil)
	})
	assert.NoError(t, m.WriteText(&bytes.Buffer{}))
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: OutcomeSuccess},
		{name: "plain", err: errors.New("x"), want: OutcomeError},
		{name: "encrypted storage", err: models.NewEncryptedStorageError(models.FailedToDecryptData, nil), want: "FailedToDecryptData"},
		{name: "wrapped key service", err: models.WrapKeyServiceError(models.ErrBadPassword), want: "BadPassword"},
		{name: "wrapped secure storage", err: models.WrapSecureStorageError(models.ErrFailedToStoreData), want: "FailedToStoreData"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Outcome(tt.err))
		})
	}
}

func TestWriteText(t *testing.T) {
	m := New()
	m.Observe(ComponentStorage, "store", time.Now(), nil)

	var buf bytes.Buffer
	require.NoError(t, m.WriteText(&buf))
	assert.Contains(t, buf.String(), `tim_encrypted_storage_operations_total{component="encrypted_storage",operation="store",outcome="success"} 1`)
	assert.Contains(t, buf.String(), "tim_encrypted_storage_operation_duration_seconds_bucket")
}

func TestObserve_HistogramSampleCount(t *testing.T) {
	m := New()
	for range 3 {
		m.Observe(ComponentKeyService, "get_key", time.Now(), nil)
	}

	families, err := m.gatherer.Gather()
	require.NoError(t, err)

	var histogram *dto.MetricFamily
	for _, mf := range families {
		if mf.GetName() == Namespace+"_operation_duration_seconds" {
			histogram = mf
		}
	}
	require.NotNil(t, histogram)
	require.Len(t, histogram.GetMetric(), 1)
	assert.Equal(t, uint64(3), histogram.GetMetric()[0].GetHistogram().GetSampleCount())
}
