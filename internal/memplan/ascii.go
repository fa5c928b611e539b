package memplan

// lineWidth is the fixed column count of every line PrintMemoryPlan emits.
const lineWidth = 80

// PrintMemoryPlan triggers layout if needed and writes one diagnostic
// message per execution step t in [0, maxLastTimeUsed], each exactly
// lineWidth characters: '.' where nothing is live, '0'-'9' (buffer id mod
// 10) where exactly one live buffer occupies a column, and '!' where two
// or more live buffers' columns collide (a visual flag, not a correctness
// signal — the planner's invariants forbid this for buffers that actually
// overlap in time).
func (p *Planner) PrintMemoryPlan() {
	p.layoutIfNeeded()

	maxSize := lineWidth
	maxTime := 0
	for i, req := range p.requirements {
		if size := p.offsets[i] + req.Size; size > maxSize {
			maxSize = size
		}
		if req.Last > maxTime {
			maxTime = req.Last
		}
	}

	line := make([]byte, lineWidth)
	for t := 0; t <= maxTime; t++ {
		for c := range line {
			line[c] = '.'
		}
		for i, req := range p.requirements {
			if t < req.First || t > req.Last {
				continue
			}
			offset := p.offsets[i]
			lineStart := offset * lineWidth / maxSize
			lineEnd := (offset + req.Size) * lineWidth / maxSize
			for n := lineStart; n < lineEnd; n++ {
				if line[n] == '.' {
					line[n] = byte('0' + (i % 10))
				} else {
					line[n] = '!'
				}
			}
		}
		p.sink.Reportf("%s", string(line))
	}
}
