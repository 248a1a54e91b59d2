// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package densehashstats exposes a densehash.Map's load factor and
// per-bucket occupancy as Prometheus metrics, following the usual
// prometheus.Collector pattern: a small struct wrapping the thing being
// observed, with Describe/Collect
// computing metrics on demand rather than caching them.
package densehashstats

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Sizer is the subset of *densehash.Map a Collector needs. Declared as an
// interface (rather than importing densehash.Map directly and parameterizing
// by [K, V]) so one Collector implementation serves maps of any key/value
// type without itself becoming generic — prometheus.Collector is not a
// generic interface, so the Collector it's implemented on cannot be either.
type Sizer interface {
	Len() int
	BucketCount() int
	LoadFactor() float64
	MaxLoadFactor() float64
	BucketLen(b int) int
}

var (
	loadFactorDesc = prometheus.NewDesc(
		"densehash_load_factor",
		"Current size / bucket_count for a densehash.Map.",
		[]string{"map"}, nil,
	)
	maxLoadFactorDesc = prometheus.NewDesc(
		"densehash_max_load_factor",
		"Configured max_load_factor for a densehash.Map.",
		[]string{"map"}, nil,
	)
	sizeDesc = prometheus.NewDesc(
		"densehash_size",
		"Number of entries currently stored in a densehash.Map.",
		[]string{"map"}, nil,
	)
	bucketCountDesc = prometheus.NewDesc(
		"densehash_bucket_count",
		"Number of buckets currently allocated by a densehash.Map.",
		[]string{"map"}, nil,
	)
	bucketOccupancyDesc = prometheus.NewDesc(
		"densehash_bucket_occupancy",
		"Number of entries chained to a single bucket of a densehash.Map.",
		[]string{"map", "bucket"}, nil,
	)
)

// Collector implements prometheus.Collector over a named densehash.Map.
// Register one per map instance worth monitoring; the name label
// distinguishes them in a registry shared across maps.
type Collector struct {
	name string

	mu sync.Mutex
	m  Sizer
}

// NewCollector returns a Collector reporting m's statistics under name.
func NewCollector(name string, m Sizer) *Collector {
	return &Collector{name: name, m: m}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- loadFactorDesc
	ch <- maxLoadFactorDesc
	ch <- sizeDesc
	ch <- bucketCountDesc
	ch <- bucketOccupancyDesc
}

// Collect implements prometheus.Collector. Bucket occupancy is the most
// expensive metric here (one chain walk per bucket); callers scraping very
// large maps on a tight interval may want to register Collectors for a
// sample of maps rather than every one.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch <- prometheus.MustNewConstMetric(sizeDesc, prometheus.GaugeValue, float64(c.m.Len()), c.name)
	ch <- prometheus.MustNewConstMetric(bucketCountDesc, prometheus.GaugeValue,
		float64(c.m.BucketCount()), c.name)
	ch <- prometheus.MustNewConstMetric(loadFactorDesc, prometheus.GaugeValue, c.m.LoadFactor(), c.name)
	ch <- prometheus.MustNewConstMetric(maxLoadFactorDesc, prometheus.GaugeValue,
		c.m.MaxLoadFactor(), c.name)

	for b := 0; b < c.m.BucketCount(); b++ {
		n := c.m.BucketLen(b)
		if n == 0 {
			continue
		}
		ch <- prometheus.MustNewConstMetric(bucketOccupancyDesc, prometheus.GaugeValue,
			float64(n), c.name, bucketLabel(b))
	}
}

func bucketLabel(b int) string {
	const digits = "0123456789"
	if b == 0 {
		return "0"
	}
	var buf []byte
	for b > 0 {
		buf = append([]byte{digits[b%10]}, buf...)
		b /= 10
	}
	return string(buf)
}
