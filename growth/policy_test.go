// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package growth

import "testing"

func TestPowerOfTwoComputeClosestCapacity(t *testing.T) {
	tests := []struct {
		min  int
		want int
	}{
		{min: 0, want: 1},
		{min: 1, want: 1},
		{min: 2, want: 2},
		{min: 3, want: 4},
		{min: 8, want: 8},
		{min: 9, want: 16},
		{min: 1000, want: 1024},
		{min: 1143, want: 2048},
	}
	var p PowerOfTwo
	for _, tcase := range tests {
		if got := p.ComputeClosestCapacity(tcase.min); got != tcase.want {
			t.Errorf("ComputeClosestCapacity(%d) = %d, want %d", tcase.min, got, tcase.want)
		}
	}
}

func TestPowerOfTwoComputeIndex(t *testing.T) {
	var p PowerOfTwo
	if got := p.ComputeIndex(0b10110, 8); got != 0b110 {
		t.Errorf("ComputeIndex = %d, want %d", got, 0b110)
	}
	if got := p.ComputeIndex(0xFFFFFFFFFFFFFFFF, 8); got != 7 {
		t.Errorf("ComputeIndex(max) = %d, want 7", got)
	}
}

func TestPowerOfTwoMinimumCapacity(t *testing.T) {
	var p PowerOfTwo
	if got := p.MinimumCapacity(); got != 8 {
		t.Errorf("MinimumCapacity() = %d, want 8", got)
	}
}

func TestPowerOfTwoMonotone(t *testing.T) {
	var p PowerOfTwo
	prev := p.ComputeClosestCapacity(0)
	for min := 1; min < 5000; min++ {
		got := p.ComputeClosestCapacity(min)
		if got < prev {
			t.Fatalf("ComputeClosestCapacity not monotone at min=%d: got %d < prev %d", min, got, prev)
		}
		prev = got
	}
}

func TestPrimeComputeClosestCapacity(t *testing.T) {
	var p Prime
	tests := []struct {
		min  int
		want int
	}{
		{min: 0, want: 11},
		{min: 5, want: 11},
		{min: 11, want: 11},
		{min: 12, want: 23},
		{min: 100, want: 197},
	}
	for _, tcase := range tests {
		if got := p.ComputeClosestCapacity(tcase.min); got != tcase.want {
			t.Errorf("ComputeClosestCapacity(%d) = %d, want %d", tcase.min, got, tcase.want)
		}
	}
}

func TestPrimeComputeIndex(t *testing.T) {
	var p Prime
	if got := p.ComputeIndex(25, 11); got != 3 {
		t.Errorf("ComputeIndex(25, 11) = %d, want 3", got)
	}
}

func TestPrimeMonotone(t *testing.T) {
	var p Prime
	prev := p.ComputeClosestCapacity(0)
	for min := 1; min < 500000; min += 37 {
		got := p.ComputeClosestCapacity(min)
		if got < prev {
			t.Fatalf("ComputeClosestCapacity not monotone at min=%d: got %d < prev %d", min, got, prev)
		}
		prev = got
	}
}
