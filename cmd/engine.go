package cmd

import (
	"fmt"

	"github.com/diffsec/catapult/internal/candidates"
	"github.com/diffsec/catapult/internal/config"
	"github.com/diffsec/catapult/internal/loader"
	"github.com/diffsec/catapult/internal/search"
)

// loadGraph loads a graph/payload pair and wires a fresh starter engine from
// cfg.
func loadGraph(graphPath, payloadPath string, cfg config.EngineConfig) (*search.Graph, error) {
	g, err := loader.LoadFlat(graphPath, payloadPath, loader.EngineStarterParams{
		NumHashes:        cfg.NumHashes,
		FallbackStart:    candidates.NodeId(cfg.FallbackStart),
		Seed:             cfg.Seed,
		EvictCapacity:    cfg.EvictCapacity,
		CatapultsEnabled: cfg.CatapultsEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("loading graph: %w", err)
	}
	return g, nil
}

func resolveConfig(configPath string) (config.EngineConfig, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}
