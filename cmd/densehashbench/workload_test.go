// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package main

import "testing"

func TestGenerateWorkloadProducesRequestedCount(t *testing.T) {
	cfg := &Config{Keys: 50, Ops: 997, Generators: 4, Mix: OpMix{Insert: 1, Find: 3, Erase: 1}}
	ops, err := generateWorkload(cfg)
	if err != nil {
		t.Fatalf("generateWorkload: %v", err)
	}
	if len(ops) != cfg.Ops {
		t.Fatalf("generateWorkload produced %d ops, want %d", len(ops), cfg.Ops)
	}
	for _, o := range ops {
		if o.key == "" {
			t.Fatal("generated op has an empty key")
		}
		if o.kind != opInsert && o.kind != opFind && o.kind != opErase {
			t.Fatalf("generated op has unknown kind %v", o.kind)
		}
	}
}

func TestGenerateWorkloadSingleGenerator(t *testing.T) {
	cfg := &Config{Keys: 10, Ops: 100, Generators: 1, Mix: OpMix{Insert: 1}}
	ops, err := generateWorkload(cfg)
	if err != nil {
		t.Fatalf("generateWorkload: %v", err)
	}
	for _, o := range ops {
		if o.kind != opInsert {
			t.Fatalf("op mix {Insert:1} produced a non-insert op: %v", o.kind)
		}
	}
}

func TestMixThresholds(t *testing.T) {
	got := mixThresholds(OpMix{Insert: 1, Find: 3, Erase: 1})
	want := [3]int{1, 4, 5}
	if got != want {
		t.Errorf("mixThresholds = %v, want %v", got, want)
	}
}

func TestBenchKey(t *testing.T) {
	cases := map[int]string{0: "key0", 7: "key7", 42: "key42", 1000: "key1000"}
	for i, want := range cases {
		if got := benchKey(i); got != want {
			t.Errorf("benchKey(%d) = %q, want %q", i, got, want)
		}
	}
}
