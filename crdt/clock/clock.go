// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package clock implements vector clocks: a mapping from peer identifier
// to a monotonic counter, used to track causal dependencies across peers
// without a central coordinator.
package clock

import (
	vortex "github.com/vortexmesh/vortex"
)

// Clock is a vector clock. The zero value is an empty clock with every
// peer implicitly at zero.
type Clock struct {
	counts map[vortex.PeerID]uint64
}

// New returns an empty Clock.
func New() *Clock {
	return &Clock{counts: make(map[vortex.PeerID]uint64)}
}

// Init returns a Clock with peer already ticked to 1, the starting point
// for a freshly joined participant.
func Init(peer vortex.PeerID) *Clock {
	c := New()
	c.Tick(peer)
	return c
}

// Clone returns a deep copy of c.
func (c *Clock) Clone() *Clock {
	out := New()
	for peer, v := range c.counts {
		out.counts[peer] = v
	}
	return out
}

// Tick increments peer's component and returns the new value.
func (c *Clock) Tick(peer vortex.PeerID) uint64 {
	c.counts[peer]++
	return c.counts[peer]
}

// Get returns peer's component, or 0 if peer has never been ticked or
// merged in.
func (c *Clock) Get(peer vortex.PeerID) uint64 {
	return c.counts[peer]
}

// Merge folds other into c component-wise, taking the maximum of each
// peer's counter.
func (c *Clock) Merge(other *Clock) {
	for peer, v := range other.counts {
		if v > c.counts[peer] {
			c.counts[peer] = v
		}
	}
}

// HappensBefore reports whether c causally precedes other: every
// component of c is ≤ the corresponding component of other, and at
// least one is strictly less (including a peer other has that c lacks).
func (c *Clock) HappensBefore(other *Clock) bool {
	dominated := false
	for peer, v := range c.counts {
		ov := other.counts[peer]
		if v > ov {
			return false
		}
		if v < ov {
			dominated = true
		}
	}
	for peer, ov := range other.counts {
		if ov > 0 && c.counts[peer] == 0 {
			dominated = true
		}
	}
	return dominated
}

// IsConcurrent reports whether neither c nor other happens-before the
// other and they are not equal.
func (c *Clock) IsConcurrent(other *Clock) bool {
	return !c.HappensBefore(other) && !other.HappensBefore(c) && !c.Equal(other)
}

// Equal reports whether c and other have identical components (peers
// present with a zero count are equivalent to peers absent).
func (c *Clock) Equal(other *Clock) bool {
	for peer, v := range c.counts {
		if v != 0 && other.counts[peer] != v {
			return false
		}
	}
	for peer, v := range other.counts {
		if v != 0 && c.counts[peer] != v {
			return false
		}
	}
	return true
}

// Peers returns the set of peers with a nonzero component, in no
// particular order.
func (c *Clock) Peers() []vortex.PeerID {
	peers := make([]vortex.PeerID, 0, len(c.counts))
	for peer, v := range c.counts {
		if v != 0 {
			peers = append(peers, peer)
		}
	}
	return peers
}

// Snapshot returns a copy of the clock's components as a plain map,
// suitable for serialization by a host.
func (c *Clock) Snapshot() map[vortex.PeerID]uint64 {
	out := make(map[vortex.PeerID]uint64, len(c.counts))
	for peer, v := range c.counts {
		out[peer] = v
	}
	return out
}

// FromSnapshot rebuilds a Clock from a map produced by Snapshot.
func FromSnapshot(snapshot map[vortex.PeerID]uint64) *Clock {
	c := New()
	for peer, v := range snapshot {
		c.counts[peer] = v
	}
	return c
}
