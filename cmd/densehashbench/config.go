// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package main

import (
	"fmt"

	"gopkg.in/yaml.v2"
)

// Config is the representation of densehashbench's YAML scenario file: how
// many keys to generate, the shape of the operation mix to run against them,
// and how many goroutines should generate workload concurrently before it is
// replayed single-threaded against the map under test.
type Config struct {
	// Keys is how many distinct keys the scenario draws from.
	Keys int `yaml:"keys"`

	// Ops is the total number of operations to replay.
	Ops int `yaml:"ops"`

	// Mix gives the relative weight of each operation kind; weights need
	// not sum to any particular total, only their ratios matter.
	Mix OpMix `yaml:"mix"`

	// Generators is how many goroutines build op sequences concurrently
	// before they are merged and replayed.
	Generators int `yaml:"generators"`

	// GrowthPolicy selects the map's growth.Policy: "power-of-two" (the
	// default) or "prime".
	GrowthPolicy string `yaml:"growth_policy"`
}

// OpMix is the relative frequency of each kind of operation in a generated
// workload.
type OpMix struct {
	Insert int `yaml:"insert"`
	Find   int `yaml:"find"`
	Erase  int `yaml:"erase"`
}

func parseConfig(data []byte) (*Config, error) {
	cfg := &Config{
		Keys:       10000,
		Ops:        100000,
		Generators: 1,
		Mix:        OpMix{Insert: 1, Find: 3, Erase: 1},
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scenario config: %w", err)
	}
	if cfg.Keys <= 0 {
		return nil, fmt.Errorf("scenario config: keys must be > 0, got %d", cfg.Keys)
	}
	if cfg.Ops <= 0 {
		return nil, fmt.Errorf("scenario config: ops must be > 0, got %d", cfg.Ops)
	}
	if cfg.Generators <= 0 {
		cfg.Generators = 1
	}
	total := cfg.Mix.Insert + cfg.Mix.Find + cfg.Mix.Erase
	if total <= 0 {
		return nil, fmt.Errorf("scenario config: op mix must have at least one positive weight")
	}
	return cfg, nil
}
