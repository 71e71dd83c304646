// Package loader reads the little-endian graph and payload binary files and
// the NumPy query file into the core's data model. The loader itself is a
// boundary: file-format errors are returned, never panicked, so a caller can
// report a clean diagnostic instead of a crashed load leaving a half-built
// graph.
package loader

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"unsafe"

	"github.com/diffsec/catapult/internal/candidates"
	"github.com/diffsec/catapult/internal/numerics"
	"github.com/diffsec/catapult/internal/search"
)

func init() {
	var x uint16 = 1
	if *(*byte)(unsafe.Pointer(&x)) != 1 {
		panic("loader: this package requires a little-endian host to read DiskANN-style graph files")
	}
}

// GraphHeader is the fixed-size header at the start of a graph file.
type GraphHeader struct {
	FullSize   uint64
	MaxDegree  uint32
	EntryPoint uint32
	NumFrozen  uint64
}

// PayloadHeader is the fixed-size header at the start of a payload file.
type PayloadHeader struct {
	NumPoints  uint32
	PayloadDim uint32
}

// LoadNodes reads the graph file and the payload file in lockstep, producing
// one Node per entry. It requires payloadDim to be a multiple of the
// configured SIMD lane count, and requires both files to describe the same
// number of nodes.
func LoadNodes(graphPath, payloadPath string) ([]search.Node, error) {
	graphFile, err := os.Open(graphPath)
	if err != nil {
		return nil, fmt.Errorf("loader: opening graph file: %w", err)
	}
	defer graphFile.Close()

	payloadFile, err := os.Open(payloadPath)
	if err != nil {
		return nil, fmt.Errorf("loader: opening payload file: %w", err)
	}
	defer payloadFile.Close()

	gr := bufio.NewReader(graphFile)
	pr := bufio.NewReader(payloadFile)

	var gh GraphHeader
	if err := binary.Read(gr, binary.LittleEndian, &gh); err != nil {
		return nil, fmt.Errorf("loader: reading graph header: %w", err)
	}

	var ph PayloadHeader
	if err := binary.Read(pr, binary.LittleEndian, &ph); err != nil {
		return nil, fmt.Errorf("loader: reading payload header: %w", err)
	}
	if ph.PayloadDim%numerics.Lanes != 0 {
		return nil, fmt.Errorf("loader: payload_dim %d is not a multiple of lane count %d", ph.PayloadDim, numerics.Lanes)
	}

	nodes := make([]search.Node, 0, ph.NumPoints)
	for {
		var degree uint32
		err := binary.Read(gr, binary.LittleEndian, &degree)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("loader: reading node degree for node %d: %w", len(nodes), err)
		}

		neighbors := make([]candidates.NodeId, degree)
		for i := uint32(0); i < degree; i++ {
			var n uint32
			if err := binary.Read(gr, binary.LittleEndian, &n); err != nil {
				return nil, fmt.Errorf("loader: reading neighbor %d of node %d: %w", i, len(nodes), err)
			}
			neighbors[i] = candidates.NodeId(n)
		}

		values := make([]float32, ph.PayloadDim)
		if err := binary.Read(pr, binary.LittleEndian, &values); err != nil {
			return nil, fmt.Errorf("loader: reading payload for node %d: %w", len(nodes), err)
		}
		blocks, err := numerics.NewAlignedBlocks(values)
		if err != nil {
			return nil, fmt.Errorf("loader: node %d: %w", len(nodes), err)
		}

		nodes = append(nodes, search.Node{Payload: blocks, Neighbors: neighbors})
	}

	if uint32(len(nodes)) != ph.NumPoints {
		return nil, fmt.Errorf("loader: graph file has %d nodes but payload header declares %d", len(nodes), ph.NumPoints)
	}

	if _, err := pr.ReadByte(); err != io.EOF {
		return nil, fmt.Errorf("loader: payload file has trailing data past the declared %d points", ph.NumPoints)
	}

	return nodes, nil
}

// EngineStarterParams configures the starter engine and catapult behavior
// a LoadFlat call wires into the returned Graph.
type EngineStarterParams struct {
	NumHashes        int
	PlaneDimBlocks   int
	FallbackStart    candidates.NodeId
	Seed             uint64
	EvictCapacity    int
	CatapultsEnabled bool
}

// LoadFlat reads the graph and payload files and assembles a ready-to-query
// Graph, wiring a fresh starter engine from params. PlaneDimBlocks is
// inferred from the loaded nodes when left at zero.
func LoadFlat(graphPath, payloadPath string, params EngineStarterParams) (*search.Graph, error) {
	nodes, err := LoadNodes(graphPath, payloadPath)
	if err != nil {
		return nil, err
	}

	planeDimBlocks := params.PlaneDimBlocks
	if planeDimBlocks == 0 && len(nodes) > 0 {
		planeDimBlocks = len(nodes[0].Payload)
	}

	starter := search.NewStarterEngine(search.StarterParams{
		NumHashes:      params.NumHashes,
		PlaneDimBlocks: planeDimBlocks,
		FallbackStart:  params.FallbackStart,
		Seed:           params.Seed,
		EvictCapacity:  params.EvictCapacity,
	})

	return search.NewGraph(nodes, starter, params.CatapultsEnabled), nil
}
