package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestOrderMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewOrderMetrics(reg)

	metrics.IncPlaced()
	metrics.IncPlaced()
	metrics.IncRejected("insufficient_stock")
	metrics.IncRejected("")
	metrics.ObservePlacement(120 * time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	placed := findMetricFamily(mfs, "orders_placed_total")
	if placed == nil {
		t.Fatalf("orders_placed_total not found")
	}
	if got := placed.GetMetric()[0].GetCounter().GetValue(); got != 2 {
		t.Fatalf("expected placed=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "orders_rejected_total", "reason", "insufficient_stock"); err != nil {
		t.Fatalf("fetch rejected: %v", err)
	} else if got != 1 {
		t.Fatalf("expected rejected=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "orders_rejected_total", "reason", "unknown"); err != nil {
		t.Fatalf("fetch rejected fallback: %v", err)
	} else if got != 1 {
		t.Fatalf("expected fallback rejected=1, got %f", got)
	}

	hist := findMetricFamily(mfs, "order_placement_duration_seconds")
	if hist == nil {
		t.Fatalf("order_placement_duration_seconds not found")
	}
	if got := hist.GetMetric()[0].GetHistogram().GetSampleSum(); got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestNilRegistererDisablesMetrics(t *testing.T) {
	metrics := NewOrderMetrics(nil)
	metrics.IncPlaced()
	metrics.IncRejected("whatever")
	metrics.ObservePlacement(time.Second)
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
