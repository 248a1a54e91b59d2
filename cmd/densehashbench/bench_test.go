// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package main

import "testing"

func TestNewBenchMapDefaultGrowthPolicy(t *testing.T) {
	m, err := newBenchMap(&Config{Keys: 100})
	if err != nil {
		t.Fatalf("newBenchMap: %v", err)
	}
	if m.BucketCount() < 100 {
		t.Errorf("BucketCount() = %d, want >= 100", m.BucketCount())
	}
}

func TestNewBenchMapPrimeGrowthPolicy(t *testing.T) {
	m, err := newBenchMap(&Config{Keys: 100, GrowthPolicy: "prime"})
	if err != nil {
		t.Fatalf("newBenchMap: %v", err)
	}
	if _, ok := m.GrowthPolicy().(interface{ MinimumCapacity() int }); !ok {
		t.Fatal("prime-policy map's GrowthPolicy() does not satisfy growth.Policy")
	}
}

func TestNewBenchMapRejectsUnknownGrowthPolicy(t *testing.T) {
	if _, err := newBenchMap(&Config{Keys: 10, GrowthPolicy: "bogus"}); err == nil {
		t.Error("newBenchMap accepted an unknown growth policy")
	}
}
