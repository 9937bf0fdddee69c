package goscribe

import (
	"sync"
	"testing"
)

func TestMetricsDisabledIsNoop(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: false})

	m.Inc(MetricLoginSuccess)
	if m.Value(MetricLoginSuccess) != 0 {
		t.Fatal("disabled metrics must not count")
	}

	s := m.Snapshot()
	if len(s.Counters) != 0 {
		t.Fatalf("disabled snapshot must be empty, got %v", s.Counters)
	}
}

func TestMetricsNilReceiverSafe(t *testing.T) {
	var m *Metrics
	m.Inc(MetricRefreshSuccess)
	if m.Value(MetricRefreshSuccess) != 0 {
		t.Fatal("nil metrics must read zero")
	}
	if m.Enabled() {
		t.Fatal("nil metrics must report disabled")
	}
}

func TestMetricsConcurrentInc(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	const workers = 8
	const perWorker = 1000

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				m.Inc(MetricRefreshSuccess)
			}
		}()
	}
	wg.Wait()

	if got := m.Value(MetricRefreshSuccess); got != workers*perWorker {
		t.Fatalf("expected %d, got %d", workers*perWorker, got)
	}

	s := m.Snapshot()
	if s.Counters[MetricRefreshSuccess] != workers*perWorker {
		t.Fatalf("snapshot mismatch: %v", s.Counters)
	}
	if s.Counters[MetricLoginSuccess] != 0 {
		t.Fatal("untouched counter must be zero")
	}
}

func TestMetricsUnknownIDIgnored(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.Inc(MetricID(10_000))
	if m.Value(MetricID(10_000)) != 0 {
		t.Fatal("out-of-range id must be ignored")
	}
}
