package goscribe

import (
	"sync/atomic"
)

// MetricID defines a public type used by goscribe APIs.
//
// MetricID instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricID uint16

const (
	// MetricLoginSuccess is an exported constant or variable used by the blog client.
	MetricLoginSuccess MetricID = iota
	// MetricLoginFailure is an exported constant or variable used by the blog client.
	MetricLoginFailure
	// MetricRegisterSuccess is an exported constant or variable used by the blog client.
	MetricRegisterSuccess
	// MetricRegisterFailure is an exported constant or variable used by the blog client.
	MetricRegisterFailure
	// MetricRefreshSuccess is an exported constant or variable used by the blog client.
	MetricRefreshSuccess
	// MetricRefreshFailure is an exported constant or variable used by the blog client.
	MetricRefreshFailure
	// MetricSessionRecovery is an exported constant or variable used by the blog client.
	MetricSessionRecovery
	// MetricGuardAllowed is an exported constant or variable used by the blog client.
	MetricGuardAllowed
	// MetricGuardDenied is an exported constant or variable used by the blog client.
	MetricGuardDenied
	// MetricLogout is an exported constant or variable used by the blog client.
	MetricLogout
	// MetricPostDeleteRetry is an exported constant or variable used by the blog client.
	MetricPostDeleteRetry
	// MetricUnauthorizedPostAccess is an exported constant or variable used by the blog client.
	MetricUnauthorizedPostAccess

	metricIDCount
)

type paddedCounter struct {
	value uint64
	_     [56]byte
}

// Metrics defines a public type used by goscribe APIs.
//
// Metrics instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Metrics struct {
	enabled  bool
	counters [metricIDCount]paddedCounter
}

// MetricsSnapshot is a point-in-time copy of all counters.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

// NewMetrics creates a [Metrics] instance configured by the given
// [MetricsConfig]. When Enabled is false, all operations are no-ops.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{enabled: cfg.Enabled}
}

// Enabled describes the enabled operation and its observable behavior.
//
// Enabled may return an error when input validation, dependency calls, or security checks fail.
// Enabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// Inc describes the inc operation and its observable behavior.
//
// Inc may return an error when input validation, dependency calls, or security checks fail.
// Inc does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Value describes the value operation and its observable behavior.
//
// Value may return an error when input validation, dependency calls, or security checks fail.
// Value does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot describes the snapshot operation and its observable behavior.
//
// Snapshot may return an error when input validation, dependency calls, or security checks fail.
// Snapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil || !m.enabled {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}

	s := MetricsSnapshot{Counters: make(map[MetricID]uint64, int(metricIDCount))}
	for id := MetricID(0); id < metricIDCount; id++ {
		s.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}
	return s
}
