package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Recorders(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry(), "scheduling")

	m.RecordTransition("pending", "confirmed")
	m.RecordTransition("pending", "confirmed")
	m.RecordConflict("update_status")
	m.RecordPublishFailure("booking.status_changed")
	m.ObserveDBQuery("exec", time.Millisecond, errors.New("boom"))
	m.ObserveSlotsCompute("ok", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingTransitions.WithLabelValues("pending", "confirmed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingConflicts.WithLabelValues("update_status")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventPublishFailures.WithLabelValues("booking.status_changed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DBQueryErrors.WithLabelValues("exec")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.SlotsComputeDuration))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordTransition("a", "b")
		m.RecordConflict("assign")
		m.ObserveSlotsCompute("ok", time.Second)
		m.RecordPublishFailure("x")
		m.ObserveDBQuery("query", time.Second, nil)
	})
}
