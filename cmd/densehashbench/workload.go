// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package main

import (
	"context"
	"math/rand"

	"golang.org/x/sync/errgroup"
)

// opKind identifies which densehash.Map method a generated op replays.
type opKind int

const (
	opInsert opKind = iota
	opFind
	opErase
)

// op is one generated operation: which kind, and which key to apply it to.
type op struct {
	kind opKind
	key  string
}

// generateWorkload builds cfg.Ops operations across cfg.Generators
// goroutines and returns them concatenated in generator order. Each
// generator produces an independent, contiguous slice of the total op count
// so the merge step is just a concatenation, not an interleave — the
// generated sequence's exact order does not matter for a single-threaded
// replay, only its volume and key distribution do.
func generateWorkload(cfg *Config) ([]op, error) {
	thresholds := mixThresholds(cfg.Mix)
	perGenerator := cfg.Ops / cfg.Generators
	remainder := cfg.Ops - perGenerator*cfg.Generators

	results := make([][]op, cfg.Generators)
	g, _ := errgroup.WithContext(context.Background())
	for i := 0; i < cfg.Generators; i++ {
		i := i
		n := perGenerator
		if i == cfg.Generators-1 {
			n += remainder
		}
		g.Go(func() error {
			results[i] = generateOps(cfg, thresholds, n, int64(i+1))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ops := make([]op, 0, cfg.Ops)
	for _, r := range results {
		ops = append(ops, r...)
	}
	return ops, nil
}

// mixThresholds converts an OpMix's weights into cumulative thresholds over
// [0, total) for generateOps to sample against.
func mixThresholds(mix OpMix) [3]int {
	var t [3]int
	t[0] = mix.Insert
	t[1] = t[0] + mix.Find
	t[2] = t[1] + mix.Erase
	return t
}

func generateOps(cfg *Config, thresholds [3]int, n int, seed int64) []op {
	r := rand.New(rand.NewSource(seed))
	total := thresholds[2]
	ops := make([]op, n)
	for i := range ops {
		ops[i] = op{
			kind: pickKind(r.Intn(total), thresholds),
			key:  benchKey(r.Intn(cfg.Keys)),
		}
	}
	return ops
}

func pickKind(roll int, thresholds [3]int) opKind {
	switch {
	case roll < thresholds[0]:
		return opInsert
	case roll < thresholds[1]:
		return opFind
	default:
		return opErase
	}
}

func benchKey(i int) string {
	const digits = "0123456789"
	if i == 0 {
		return "key0"
	}
	var buf []byte
	for i > 0 {
		buf = append([]byte{digits[i%10]}, buf...)
		i /= 10
	}
	return "key" + string(buf)
}
