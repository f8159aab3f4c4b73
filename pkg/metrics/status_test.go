package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestStatusMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewStatusMetrics(reg)
	metrics.ObserveDuration("single", 250*time.Millisecond)
	metrics.IncCacheHit()
	metrics.IncCacheMiss()
	metrics.IncCacheMiss()
	metrics.IncIssue("zero_price")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchPlainCounterValue(mfs, "status_cache_hits"); err != nil {
		t.Fatalf("fetch hits: %v", err)
	} else if got != 1 {
		t.Fatalf("expected hits=1, got %f", got)
	}

	if got, err := fetchPlainCounterValue(mfs, "status_cache_misses"); err != nil {
		t.Fatalf("fetch misses: %v", err)
	} else if got != 2 {
		t.Fatalf("expected misses=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "status_issues_found", "issue", "zero_price"); err != nil {
		t.Fatalf("fetch issues: %v", err)
	} else if got != 1 {
		t.Fatalf("expected issues=1, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "status_aggregation_duration_seconds", "kind", "single"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestStatusMetricsNilRegistererIsNoop(t *testing.T) {
	metrics := NewStatusMetrics(nil)
	metrics.ObserveDuration("single", time.Second)
	metrics.IncCacheHit()
	metrics.IncCacheMiss()
	metrics.IncIssue("low_stock")
}

func fetchPlainCounterValue(mfs []*dto.MetricFamily, name string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		return metric.GetCounter().GetValue(), nil
	}
	return 0, fmt.Errorf("metric %q has no samples", name)
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

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
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
