package core

import "sync/atomic"

// IDGen hands out entity ids unique across kinds within a run, zero is never issued
type IDGen struct {
	next atomic.Uint64
}

// Next returns a fresh id
func (g *IDGen) Next() uint64 {
	return g.next.Add(1)
}

// Reset restarts numbering
func (g *IDGen) Reset() {
	g.next.Store(0)
}
