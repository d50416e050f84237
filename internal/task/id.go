package task

import "time"

// IDGenerator hands out timestamp-derived ids that are strictly increasing,
// so two tasks created within the same millisecond still get distinct ids.
type IDGenerator struct {
	last  int64
	clock func() time.Time
}

// NewIDGenerator returns a generator whose ids are all greater than floor.
// A nil clock means time.Now.
func NewIDGenerator(floor int64, clock func() time.Time) *IDGenerator {
	if clock == nil {
		clock = time.Now
	}
	return &IDGenerator{last: floor, clock: clock}
}

// Next returns the next id.
func (g *IDGenerator) Next() int64 {
	id := g.clock().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

// Observe raises the generator floor to at least id.
func (g *IDGenerator) Observe(id int64) {
	if id > g.last {
		g.last = id
	}
}
