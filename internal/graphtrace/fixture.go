package graphtrace

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/minio/sha256-simd"
)

// Fixture is a graph recorded to disk alongside the sha256 digest of its
// serialized form, so a stored graph can be detected as tampered or
// corrupted before it's fed into DeriveRequirements.
type Fixture struct {
	Graph    Graph  `json:"graph"`
	Checksum string `json:"checksum"`
}

type wireOp struct {
	Name    string   `json:"name"`
	Inputs  []string `json:"inputs"`
	Outputs []Tensor `json:"outputs"`
}

type wireGraph struct {
	Ops []wireOp `json:"ops"`
}

func checksumOf(g Graph) (string, []byte, error) {
	wg := wireGraph{Ops: make([]wireOp, len(g.Ops))}
	for i, op := range g.Ops {
		wg.Ops[i] = wireOp{Name: op.Name, Inputs: op.Inputs, Outputs: op.Outputs}
	}
	payload, err := json.Marshal(wg)
	if err != nil {
		return "", nil, fmt.Errorf("graphtrace: marshal graph for checksum: %w", err)
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), payload, nil
}

// SaveFixture writes g to path as JSON, embedding a sha256 checksum of the
// graph payload so LoadFixture can detect corruption or hand-edited fixtures.
func SaveFixture(path string, g Graph) error {
	checksum, payload, err := checksumOf(g)
	if err != nil {
		return err
	}

	fixture := struct {
		Graph    json.RawMessage `json:"graph"`
		Checksum string          `json:"checksum"`
	}{Graph: payload, Checksum: checksum}

	out, err := json.MarshalIndent(fixture, "", "  ")
	if err != nil {
		return fmt.Errorf("graphtrace: marshal fixture: %w", err)
	}
	return os.WriteFile(path, out, 0o644)
}

// LoadFixture reads a graph fixture from path and verifies its checksum,
// returning an error if the stored graph was modified since SaveFixture
// wrote it.
func LoadFixture(path string) (Graph, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Graph{}, fmt.Errorf("graphtrace: read fixture %s: %w", path, err)
	}

	var onDisk struct {
		Graph    wireGraph `json:"graph"`
		Checksum string    `json:"checksum"`
	}
	if err := json.Unmarshal(raw, &onDisk); err != nil {
		return Graph{}, fmt.Errorf("graphtrace: parse fixture %s: %w", path, err)
	}

	g := Graph{Ops: make([]Op, len(onDisk.Graph.Ops))}
	for i, op := range onDisk.Graph.Ops {
		g.Ops[i] = Op{Name: op.Name, Inputs: op.Inputs, Outputs: op.Outputs}
	}

	wantChecksum, _, err := checksumOf(g)
	if err != nil {
		return Graph{}, err
	}
	if wantChecksum != onDisk.Checksum {
		return Graph{}, fmt.Errorf("graphtrace: fixture %s failed checksum verification: got %s, want %s", path, onDisk.Checksum, wantChecksum)
	}

	return g, nil
}
