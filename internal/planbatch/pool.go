package planbatch

import (
	"github.com/nnarena/memplanner/internal/memplan"
	"github.com/nnarena/memplanner/internal/poolutil"
)

// newPlannerPool returns a pool of Planner instances built with the given
// buffer capacity. Reset re-creates the planner rather than trying to clear
// its internal slices in place, since Planner exposes no reset method.
func newPlannerPool(capacity int) *poolutil.Pool[*memplan.Planner] {
	newPlanner := func() *memplan.Planner {
		return memplan.NewPlanner(memplan.WithCapacity(capacity))
	}
	return poolutil.NewPool(newPlanner, func(*memplan.Planner) *memplan.Planner {
		return newPlanner()
	}, 16)
}
