// Package config loads and saves the engine's tunable parameters: lane
// count, LSH width, eviction capacity, seed, and fallback start node.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/diffsec/catapult/internal/numerics"
)

// EngineConfig holds the parameters needed to construct a starter engine and
// validate a loaded graph against it. It is the YAML-serializable counterpart
// of search.StarterParams plus the lane count the payload files were written
// with.
type EngineConfig struct {
	Lanes            int    `yaml:"lanes"`
	NumHashes        int    `yaml:"num_hashes"`
	EvictCapacity    int    `yaml:"evict_capacity"`
	Seed             uint64 `yaml:"seed"`
	FallbackStart    uint32 `yaml:"fallback_start"`
	CatapultsEnabled bool   `yaml:"catapults_enabled"`
}

// Default returns the engine's baseline configuration: 16 hyperplanes, a
// capacity-30 eviction bucket, seed 42, fallback node 0.
func Default() EngineConfig {
	return EngineConfig{
		Lanes:            8,
		NumHashes:        16,
		EvictCapacity:    30,
		Seed:             42,
		FallbackStart:    0,
		CatapultsEnabled: false,
	}
}

// Validate checks the config is usable before a Graph is constructed from it.
func (c EngineConfig) Validate() error {
	if c.Lanes != numerics.Lanes {
		return fmt.Errorf("config: lanes must equal the compiled-in lane count %d, got %d", numerics.Lanes, c.Lanes)
	}
	if c.NumHashes <= 0 || c.NumHashes > 63 {
		return fmt.Errorf("config: num_hashes must be in [1, 63], got %d", c.NumHashes)
	}
	if c.EvictCapacity <= 0 {
		return fmt.Errorf("config: evict_capacity must be positive, got %d", c.EvictCapacity)
	}
	return nil
}

// Load reads an EngineConfig from a YAML file.
func Load(path string) (EngineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return EngineConfig{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return EngineConfig{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return EngineConfig{}, err
	}

	return cfg, nil
}

// Save writes an EngineConfig to a YAML file.
func Save(path string, cfg EngineConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: writing %s: %w", path, err)
	}

	return nil
}
