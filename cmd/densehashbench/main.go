// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// The densehashbench command replays a generated workload of inserts,
// finds, and erases against a densehash.Map and reports timing and
// occupancy statistics.
package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"time"

	"github.com/aristanetworks/densehash/densehash"
	"github.com/aristanetworks/densehash/glog"
	"github.com/aristanetworks/densehash/growth"
	"github.com/aristanetworks/densehash/logger"
)

func main() {
	configFlag := flag.String("config", "", "YAML scenario config file (see config.go for fields)")
	growthPolicyFlag := flag.String("growth-policy", "",
		"override the scenario's growth_policy (\"power-of-two\" or \"prime\")")
	flag.Parse()

	var log logger.Logger = &glog.Glog{}

	if *configFlag == "" {
		log.Fatal("You need to specify a scenario file using -config flag")
	}
	data, err := ioutil.ReadFile(*configFlag)
	if err != nil {
		log.Fatalf("can't read scenario file %q: %v", *configFlag, err)
	}
	cfg, err := parseConfig(data)
	if err != nil {
		log.Fatal(err)
	}
	if *growthPolicyFlag != "" {
		cfg.GrowthPolicy = *growthPolicyFlag
	}

	log.Infof("generating %d ops over %d keys across %d generators", cfg.Ops, cfg.Keys, cfg.Generators)
	genStart := time.Now()
	ops, err := generateWorkload(cfg)
	if err != nil {
		log.Fatal(err)
	}
	log.Infof("generated %d ops in %s", len(ops), time.Since(genStart))

	m, err := newBenchMap(cfg)
	if err != nil {
		log.Fatal(err)
	}

	replayStart := time.Now()
	var inserts, finds, erases, hits int
	for _, o := range ops {
		switch o.kind {
		case opInsert:
			if _, inserted := m.Insert(o.key, len(o.key)); inserted {
				inserts++
			}
		case opFind:
			if _, ok := m.Find(o.key); ok {
				hits++
			}
			finds++
		case opErase:
			erases += m.EraseKey(o.key)
		}
	}
	elapsed := time.Since(replayStart)

	if hits == 0 && finds > 0 {
		log.Warningf("%d finds recorded zero hits; check the scenario's key distribution", finds)
	}
	log.Infof("replayed %d ops in %s (%.0f ops/sec)", len(ops), elapsed,
		float64(len(ops))/elapsed.Seconds())
	log.Infof("inserts=%d finds=%d find_hits=%d erases=%d", inserts, finds, hits, erases)
	log.Infof("final size=%d bucket_count=%d load_factor=%.3f",
		m.Len(), m.BucketCount(), m.LoadFactor())
}

func newBenchMap(cfg *Config) (*densehash.Map[string, int], error) {
	var opts []densehash.Option[string, int]
	switch cfg.GrowthPolicy {
	case "prime":
		opts = append(opts, densehash.WithGrowthPolicy[string, int](growth.Prime{}))
	case "", "power-of-two":
		// growth.Default() is already the map's default.
	default:
		return nil, fmt.Errorf("unknown growth_policy %q", cfg.GrowthPolicy)
	}
	opts = append(opts, densehash.WithCapacity[string, int](cfg.Keys))
	return densehash.NewFunc[string, int](benchHash, func(a, b string) bool { return a == b }, opts...), nil
}

func benchHash(s string) uint64 {
	var h uint64 = 1469598103934665603
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= 1099511628211
	}
	return h
}
