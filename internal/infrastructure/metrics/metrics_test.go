package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := NewWithRegisterer(registry)

	if m.Computations == nil || m.CacheRequests == nil || m.Overpayments == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.ObserveComputation("allocate", time.Millisecond, nil)

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}
}

func TestObserveComputation(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry())

	m.ObserveComputation("breakdown", 2*time.Millisecond, nil)
	m.ObserveComputation("breakdown", time.Millisecond, errors.New("boom"))
	m.ObserveComputation("breakdown", time.Millisecond, nil)

	if got := testutil.ToFloat64(m.Computations.WithLabelValues("breakdown", "ok")); got != 2 {
		t.Fatalf("expected 2 ok computations, got %v", got)
	}
	if got := testutil.ToFloat64(m.Computations.WithLabelValues("breakdown", "error")); got != 1 {
		t.Fatalf("expected 1 failed computation, got %v", got)
	}
	if got := testutil.CollectAndCount(m.ComputationDuration); got != 1 {
		t.Fatalf("expected one duration series, got %d", got)
	}
}

func TestRecordCacheResult(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry())

	m.RecordCacheResult("breakdown", true)
	m.RecordCacheResult("breakdown", false)
	m.RecordCacheResult("breakdown", false)

	if got := testutil.ToFloat64(m.CacheRequests.WithLabelValues("breakdown", "hit")); got != 1 {
		t.Fatalf("expected 1 hit, got %v", got)
	}
	if got := testutil.ToFloat64(m.CacheRequests.WithLabelValues("breakdown", "miss")); got != 2 {
		t.Fatalf("expected 2 misses, got %v", got)
	}
}

func TestRecordOverpayment(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry())

	m.RecordOverpayment(decimal.NewFromInt(30))

	if got := testutil.ToFloat64(m.Overpayments); got != 1 {
		t.Fatalf("expected 1 overpayment, got %v", got)
	}
}
