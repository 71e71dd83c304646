package loader

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/diffsec/catapult/internal/numerics"
)

var npyMagic = []byte("\x93NUMPY")

var shapePattern = regexp.MustCompile(`'shape':\s*\(([^)]*)\)`)
var descrPattern = regexp.MustCompile(`'descr':\s*'([^']*)'`)

// LoadQueries reads a 2-D float32 NumPy array from an .npy file and splits
// each row into aligned blocks. No suitable third-party .npy reader was
// available, so this parser is hand rolled against the documented NPY header
// format, versions 1.0 through 3.0.
func LoadQueries(path string) ([][]numerics.AlignedBlock, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: opening query file: %w", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)

	magic := make([]byte, 6)
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, fmt.Errorf("loader: reading npy magic: %w", err)
	}
	if !bytes.Equal(magic, npyMagic) {
		return nil, fmt.Errorf("loader: not an npy file (bad magic)")
	}

	var major, minor uint8
	if err := binary.Read(r, binary.LittleEndian, &major); err != nil {
		return nil, fmt.Errorf("loader: reading npy version major: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &minor); err != nil {
		return nil, fmt.Errorf("loader: reading npy version minor: %w", err)
	}

	var headerLen int
	switch major {
	case 1:
		var hl uint16
		if err := binary.Read(r, binary.LittleEndian, &hl); err != nil {
			return nil, fmt.Errorf("loader: reading npy v1 header length: %w", err)
		}
		headerLen = int(hl)
	case 2, 3:
		var hl uint32
		if err := binary.Read(r, binary.LittleEndian, &hl); err != nil {
			return nil, fmt.Errorf("loader: reading npy v2/3 header length: %w", err)
		}
		headerLen = int(hl)
	default:
		return nil, fmt.Errorf("loader: unsupported npy version %d.%d", major, minor)
	}

	headerBytes := make([]byte, headerLen)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return nil, fmt.Errorf("loader: reading npy header dict: %w", err)
	}
	header := string(headerBytes)

	descrMatch := descrPattern.FindStringSubmatch(header)
	if descrMatch == nil {
		return nil, fmt.Errorf("loader: npy header missing descr: %q", header)
	}
	if descrMatch[1] != "<f4" {
		return nil, fmt.Errorf("loader: unsupported npy dtype %q, only little-endian float32 (<f4) is supported", descrMatch[1])
	}

	shapeMatch := shapePattern.FindStringSubmatch(header)
	if shapeMatch == nil {
		return nil, fmt.Errorf("loader: npy header missing shape: %q", header)
	}
	dims, err := parseShape(shapeMatch[1])
	if err != nil {
		return nil, fmt.Errorf("loader: parsing npy shape: %w", err)
	}
	if len(dims) != 2 {
		return nil, fmt.Errorf("loader: expected a 2-D query array, got shape with %d dimensions", len(dims))
	}

	numQueries, dim := dims[0], dims[1]
	if dim%numerics.Lanes != 0 {
		return nil, fmt.Errorf("loader: query dimension %d is not a multiple of lane count %d", dim, numerics.Lanes)
	}

	queries := make([][]numerics.AlignedBlock, numQueries)
	row := make([]float32, dim)
	for i := 0; i < numQueries; i++ {
		if err := binary.Read(r, binary.LittleEndian, &row); err != nil {
			return nil, fmt.Errorf("loader: reading query row %d: %w", i, err)
		}
		blocks, err := numerics.NewAlignedBlocks(row)
		if err != nil {
			return nil, fmt.Errorf("loader: query row %d: %w", i, err)
		}
		rowCopy := make([]numerics.AlignedBlock, len(blocks))
		copy(rowCopy, blocks)
		queries[i] = rowCopy
	}

	return queries, nil
}

func parseShape(inner string) ([]int, error) {
	var dims []int
	for _, part := range strings.Split(inner, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("non-integer dimension %q", part)
		}
		dims = append(dims, n)
	}
	return dims, nil
}
