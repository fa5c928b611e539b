package memplan

import (
	"encoding/binary"

	"github.com/zeebo/blake3"
)

// Signature returns a deterministic fingerprint of the current layout,
// recomputing it first if the plan is stale. It lets callers (and
// internal/planbatch, which runs many Planner instances concurrently)
// cheaply compare layouts without diffing full offset slices: two planners
// fed identical AddBuffer sequences in the same order produce equal
// signatures, and calling Signature twice with no intervening AddBuffer
// never changes it.
func (p *Planner) Signature() uint64 {
	p.layoutIfNeeded()

	buf := make([]byte, 0, len(p.offsets)*16)
	var tmp [8]byte
	for i, off := range p.offsets {
		binary.LittleEndian.PutUint64(tmp[:], uint64(off))
		buf = append(buf, tmp[:]...)
		binary.LittleEndian.PutUint64(tmp[:], uint64(p.requirements[i].Size))
		buf = append(buf, tmp[:]...)
	}
	sum := blake3.Sum256(buf)
	return binary.LittleEndian.Uint64(sum[:8])
}
