// Package graphtrace derives buffer requirements from a synthetic operator
// graph, standing in for the upstream graph-analysis pass that a real
// inference compiler would run before handing work to a memory planner.
package graphtrace

import (
	"fmt"

	"github.com/google/btree"

	"github.com/nnarena/memplanner/internal/memplan"
)

// Tensor is one value produced by a single Op and consumed by zero or more
// later Ops.
type Tensor struct {
	Name string
	Size int
}

// Op is a node in the graph: it produces Outputs and depends on the
// tensors named in Inputs.
type Op struct {
	Name    string
	Inputs  []string
	Outputs []Tensor
}

// Graph is a set of Ops forming a DAG over tensor names.
type Graph struct {
	Ops []Op
}

type scheduled struct {
	step int
	name string
}

// DeriveRequirements takes the Ops in declaration order as steps 0, 1, ...
// (an Op whose input no earlier Op produced is an error; Ops are not
// reordered) and computes each tensor's liveness window: First is the step
// that produces it, Last is the step of its final consumer, or First itself
// if the tensor is never consumed (e.g. a graph output). The returned slice
// is ordered by producing step, and tensors produced by the same Op by name,
// via a btree keyed on (step, name).
func DeriveRequirements(g Graph) ([]memplan.BufferRequirements, []string, error) {
	producedAt := make(map[string]int)
	sizeOf := make(map[string]int)
	order := btree.NewG[scheduled](32, func(a, b scheduled) bool {
		if a.step != b.step {
			return a.step < b.step
		}
		return a.name < b.name
	})

	for step, op := range g.Ops {
		for _, in := range op.Inputs {
			if _, ok := producedAt[in]; !ok {
				return nil, nil, fmt.Errorf("graphtrace: op %q depends on unproduced tensor %q", op.Name, in)
			}
		}
		for _, out := range op.Outputs {
			if _, exists := producedAt[out.Name]; exists {
				return nil, nil, fmt.Errorf("graphtrace: tensor %q produced more than once", out.Name)
			}
			producedAt[out.Name] = step
			sizeOf[out.Name] = out.Size
			order.ReplaceOrInsert(scheduled{step: step, name: out.Name})
		}
	}

	// Walk the schedule in (step, name) order so that two tensors produced
	// by the same op always appear in the same deterministic order,
	// regardless of the order Outputs happened to be declared in.
	names := make([]string, 0, order.Len())
	order.Ascend(func(s scheduled) bool {
		names = append(names, s.name)
		return true
	})

	lastUse := make(map[string]int)
	for name, step := range producedAt {
		lastUse[name] = step
	}
	for step, op := range g.Ops {
		for _, in := range op.Inputs {
			if step > lastUse[in] {
				lastUse[in] = step
			}
		}
	}

	reqs := make([]memplan.BufferRequirements, len(names))
	for i, name := range names {
		reqs[i] = memplan.BufferRequirements{
			Size:  sizeOf[name],
			First: producedAt[name],
			Last:  lastUse[name],
		}
	}
	return reqs, names, nil
}
