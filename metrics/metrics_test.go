package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewRegistersAllCollectorsWithoutPanic(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.BlocksProcessed.Inc()
	m.TransactionsByType.WithLabelValues("generic").Inc()
	m.MempoolRejected.WithLabelValues("duplicate").Inc()
	m.WSConnections.Set(3)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	if len(families) == 0 {
		t.Fatalf("expected at least one registered metric family")
	}
}

func TestBlocksProcessedCounterIncrements(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.BlocksProcessed.Inc()
	m.BlocksProcessed.Inc()

	var metric dto.Metric
	if err := m.BlocksProcessed.Write(&metric); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if metric.GetCounter().GetValue() != 2 {
		t.Fatalf("expected counter value 2, got %v", metric.GetCounter().GetValue())
	}
}
