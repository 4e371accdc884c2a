// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package hlc implements the hybrid logical clock used to timestamp CRDT
// operations, and the position identifiers used to address insertion
// sites densely between any two existing positions.
package hlc

import (
	"bytes"
	"time"

	vortex "github.com/vortexmesh/vortex"
	"github.com/vortexmesh/vortex/utils"
)

// Timestamp is a hybrid logical clock value: a physical millisecond
// reading, a logical counter that breaks ties within the same
// millisecond, and the node that produced it. The total order is
// lexicographic on (Physical, Logical, Node).
type Timestamp struct {
	Physical uint64
	Logical  uint32
	Node     vortex.HLCNode
}

// nowMillis reads the wall clock in milliseconds. Extracted so tests can
// observe the same source the rest of the package uses.
var nowMillis = func() uint64 {
	return uint64(time.Now().UnixMilli())
}

// New returns a fresh Timestamp for node, reading the current physical
// time with logical counter zero.
func New(node vortex.HLCNode) Timestamp {
	return Timestamp{Physical: nowMillis(), Node: node}
}

// Increment advances t for a purely local event: if the wall clock has
// moved past t's physical component it takes the current time with a
// logical counter of zero, otherwise it keeps the physical component and
// advances the logical counter by one.
func (t Timestamp) Increment() Timestamp {
	now := nowMillis()
	switch {
	case now > t.Physical:
		return Timestamp{Physical: now, Logical: 0, Node: t.Node}
	default:
		return Timestamp{Physical: t.Physical, Logical: t.Logical + 1, Node: t.Node}
	}
}

// Update merges a received remote timestamp into t, producing the new
// local clock value per the standard HLC rules: the physical component
// advances to the maximum of the wall clock, the local clock, and the
// remote clock; the logical component resets to zero if physical time
// alone advanced past both, otherwise increments past whichever of the
// two ties at the winning physical value.
func (t Timestamp) Update(remote Timestamp) Timestamp {
	now := nowMillis()
	switch {
	case now > t.Physical && now > remote.Physical:
		return Timestamp{Physical: now, Logical: 0, Node: t.Node}
	case t.Physical == remote.Physical:
		logical := t.Logical
		if remote.Logical > logical {
			logical = remote.Logical
		}
		return Timestamp{Physical: t.Physical, Logical: logical + 1, Node: t.Node}
	case t.Physical > remote.Physical:
		return Timestamp{Physical: t.Physical, Logical: t.Logical + 1, Node: t.Node}
	default:
		return Timestamp{Physical: remote.Physical, Logical: remote.Logical + 1, Node: t.Node}
	}
}

// Compare returns -1, 0, or 1 as t is less than, equal to, or greater
// than other under the lexicographic (Physical, Logical, Node) order.
func (t Timestamp) Compare(other Timestamp) int {
	switch {
	case t.Physical != other.Physical:
		return cmpUint64(t.Physical, other.Physical)
	case t.Logical != other.Logical:
		return cmpUint32(t.Logical, other.Logical)
	default:
		return bytes.Compare(t.Node[:], other.Node[:])
	}
}

// Before reports whether t strictly precedes other in the total order.
func (t Timestamp) Before(other Timestamp) bool { return t.Compare(other) < 0 }

// After reports whether t strictly follows other in the total order.
func (t Timestamp) After(other Timestamp) bool { return t.Compare(other) > 0 }

func cmpUint64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpUint32(a, b uint32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// pathMid is the initial path value used when a position has no
// neighbor on one side: the midpoint of the full uint32 range, leaving
// equal room to grow in either direction.
const pathMid = ^uint32(0) / 2

// Position is a variable-length path of rationals plus a site id and a
// site-local counter, used to address an insertion site densely between
// any two existing positions. The total order is lexicographic on
// (Path, Site, Counter), shorter paths sorting before longer paths that
// share a common prefix.
type Position struct {
	Path    []uint32
	Site    vortex.HLCNode
	Counter uint64
}

// Generate returns a fresh position for an initial insert at index,
// encoding the index as a single-element path offset from the midpoint
// of the range so later inserts always have room on both sides.
func Generate(site vortex.HLCNode, counter uint64, index int) Position {
	return Position{
		Path:    []uint32{utils.SaturatingAddU32(pathMid, uint32(index))},
		Site:    site,
		Counter: counter,
	}
}

// Between returns a position strictly greater than left and strictly
// less than right under Compare. Either bound may be nil to mean "no
// neighbor on that side". When the two bounds are numerically adjacent
// at a shared path element, the result descends one path segment deeper
// rather than tying on the remaining fields, so it stays strictly
// between its bounds regardless of their site ids.
func Between(left, right *Position, site vortex.HLCNode, counter uint64) Position {
	var path []uint32
	switch {
	case left == nil && right == nil:
		path = []uint32{pathMid}
	case left != nil && right == nil:
		path = pathAbove(left.Path)
	case left == nil && right != nil:
		path = pathBelow(right.Path)
	default:
		path = pathBetween(left.Path, right.Path)
	}
	return Position{Path: path, Site: site, Counter: counter}
}

// pathAbove returns a path strictly greater than remainder. When the
// final segment is already at the maximum it descends one segment
// deeper instead, since a longer path sharing the full prefix sorts
// after the shorter one.
func pathAbove(remainder []uint32) []uint32 {
	if len(remainder) == 0 {
		return []uint32{pathMid}
	}
	path := append([]uint32{}, remainder...)
	last := len(path) - 1
	if path[last] == ^uint32(0) {
		return append(path, pathMid)
	}
	path[last]++
	return path
}

// pathBelow returns a path strictly less than remainder. A leading
// segment that can still be halved is halved; a segment of 1 descends
// below it into a fresh deeper segment, and a segment of 0 keeps the
// zero and recurses on the tail, so the result never lands on a bare
// zero path that nothing could later sort below.
func pathBelow(remainder []uint32) []uint32 {
	if len(remainder) == 0 {
		return []uint32{0, pathMid}
	}
	switch {
	case remainder[0] > 1:
		return []uint32{remainder[0] / 2}
	case remainder[0] == 1:
		return []uint32{0, pathMid}
	default:
		if len(remainder) == 1 {
			return []uint32{0, pathMid}
		}
		return append([]uint32{0}, pathBelow(remainder[1:])...)
	}
}

// pathBetween computes a path strictly between l and r, where l is
// assumed to sort before r element-wise. It walks the shared prefix; at
// the first element where the two differ by more than one it splits the
// gap and returns. Where they are equal it keeps the shared digit and
// recurses on the remaining tails. Where they are adjacent it keeps l's
// digit and descends strictly above l's remaining tail, since r no
// longer constrains the result once the digit itself already sorts
// below r's.
func pathBetween(l, r []uint32) []uint32 {
	switch {
	case len(l) == 0 && len(r) == 0:
		return []uint32{pathMid}
	case len(l) == 0:
		return pathBelow(r)
	case len(r) == 0:
		return pathAbove(l)
	}
	switch {
	case l[0] < r[0]:
		if r[0]-l[0] > 1 {
			return []uint32{l[0] + (r[0]-l[0])/2}
		}
		return append([]uint32{l[0]}, pathAbove(l[1:])...)
	case l[0] == r[0]:
		return append([]uint32{l[0]}, pathBetween(l[1:], r[1:])...)
	default:
		// l does not sort before r at this element; callers are
		// expected to pass bounds with left < right, but degrade
		// gracefully by treating r as the lower bound.
		return pathAbove(r)
	}
}

// Compare returns -1, 0, or 1 comparing p to other lexicographically on
// Path, then Site, then Counter; a shorter path that is a strict prefix
// of a longer one sorts first.
func (p Position) Compare(other Position) int {
	n := utils.Min(len(p.Path), len(other.Path))
	for i := 0; i < n; i++ {
		if p.Path[i] != other.Path[i] {
			return cmpUint32(p.Path[i], other.Path[i])
		}
	}
	if len(p.Path) != len(other.Path) {
		return cmpUint32(uint32(len(p.Path)), uint32(len(other.Path)))
	}
	if c := bytes.Compare(p.Site[:], other.Site[:]); c != 0 {
		return c
	}
	return cmpUint64(p.Counter, other.Counter)
}

// Less reports whether p sorts strictly before other.
func (p Position) Less(other Position) bool { return p.Compare(other) < 0 }

// Key is a comparable value identifying a Position uniquely, usable as a
// map key. Position itself holds a slice and cannot be a map key
// directly.
type Key struct {
	pathKey string
	site    vortex.HLCNode
	counter uint64
}

// AsKey renders p into a Key usable as a map index.
func (p Position) AsKey() Key {
	buf := make([]byte, 0, len(p.Path)*4)
	for _, seg := range p.Path {
		buf = append(buf, byte(seg>>24), byte(seg>>16), byte(seg>>8), byte(seg))
	}
	return Key{pathKey: string(buf), site: p.Site, counter: p.Counter}
}
