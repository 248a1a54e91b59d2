// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package densehashstats

import (
	"testing"

	dto "github.com/prometheus/client_model/go"

	"github.com/prometheus/client_golang/prometheus"
)

type fakeSizer struct {
	len, bucketCount    int
	loadFactor, maxLoad float64
	bucketLens          []int
}

func (f fakeSizer) Len() int               { return f.len }
func (f fakeSizer) BucketCount() int       { return f.bucketCount }
func (f fakeSizer) LoadFactor() float64    { return f.loadFactor }
func (f fakeSizer) MaxLoadFactor() float64 { return f.maxLoad }
func (f fakeSizer) BucketLen(b int) int {
	if b < len(f.bucketLens) {
		return f.bucketLens[b]
	}
	return 0
}

func collect(t *testing.T, c prometheus.Collector) []prometheus.Metric {
	t.Helper()
	ch := make(chan prometheus.Metric)
	done := make(chan struct{})
	var out []prometheus.Metric
	go func() {
		for m := range ch {
			out = append(out, m)
		}
		close(done)
	}()
	c.Collect(ch)
	close(ch)
	<-done
	return out
}

func metricValue(t *testing.T, m prometheus.Metric) float64 {
	t.Helper()
	var pb dto.Metric
	if err := m.Write(&pb); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if pb.Gauge == nil {
		t.Fatalf("metric %v is not a gauge", m.Desc())
	}
	return pb.Gauge.GetValue()
}

func TestCollectorReportsCurrentStats(t *testing.T) {
	s := fakeSizer{
		len: 3, bucketCount: 8, loadFactor: 0.375, maxLoad: 0.875,
		bucketLens: []int{2, 0, 1, 0, 0, 0, 0, 0},
	}
	c := NewCollector("orders", s)

	metrics := collect(t, c)

	// 4 scalar gauges plus one per non-empty bucket (2 of the 8 are non-empty).
	if want := 6; len(metrics) != want {
		t.Fatalf("Collect produced %d metrics, want %d", len(metrics), want)
	}

	byDesc := map[*prometheus.Desc][]prometheus.Metric{}
	for _, m := range metrics {
		byDesc[m.Desc()] = append(byDesc[m.Desc()], m)
	}

	if got := metricValue(t, byDesc[sizeDesc][0]); got != 3 {
		t.Errorf("densehash_size = %v, want 3", got)
	}
	if got := metricValue(t, byDesc[bucketCountDesc][0]); got != 8 {
		t.Errorf("densehash_bucket_count = %v, want 8", got)
	}
	if got := metricValue(t, byDesc[loadFactorDesc][0]); got != 0.375 {
		t.Errorf("densehash_load_factor = %v, want 0.375", got)
	}
	if got := metricValue(t, byDesc[maxLoadFactorDesc][0]); got != 0.875 {
		t.Errorf("densehash_max_load_factor = %v, want 0.875", got)
	}
	if got := len(byDesc[bucketOccupancyDesc]); got != 2 {
		t.Errorf("got %d bucket occupancy metrics, want 2 (empty buckets are skipped)", got)
	}
}

func TestDescribeEmitsEveryMetricDescriptor(t *testing.T) {
	c := NewCollector("orders", fakeSizer{})
	ch := make(chan *prometheus.Desc, 16)
	c.Describe(ch)
	close(ch)
	n := 0
	for range ch {
		n++
	}
	if n != 5 {
		t.Errorf("Describe emitted %d descriptors, want 5", n)
	}
}
