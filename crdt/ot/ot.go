// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ot implements operational-transform style cursor and selection
// tracking: every applied insert or delete deterministically shifts the
// cursors and selections of every other participant editing the same
// document, so presence indicators stay correct under concurrent edits.
package ot

import (
	"time"

	vortex "github.com/vortexmesh/vortex"
)

// Selection is a half-open byte range [Start, End) highlighted by a
// peer, or the zero value for "no selection".
type Selection struct {
	Start int
	End   int
}

// Empty reports whether the selection covers no bytes.
func (s Selection) Empty() bool { return s.Start == s.End }

// Cursor tracks one peer's caret position and optional selection within
// a shared document.
type Cursor struct {
	Peer        vortex.PeerID
	Position    int
	Selection   *Selection
	Color       string
	DisplayName string
	LastActive  time.Time
}

// InsertAt shifts c to account for an insert of length L at byte offset
// pos: positions at or after pos shift forward by L. An insert at or
// before a selection's start moves the whole selection; an insert
// strictly inside it stretches only the end, so a selection abutting
// the insert point on its trailing edge is not stretched and an empty
// selection stays empty.
func (c Cursor) InsertAt(pos, length int) Cursor {
	out := c
	if pos <= c.Position {
		out.Position += length
	}
	if c.Selection != nil {
		sel := *c.Selection
		if pos <= sel.Start {
			sel.Start += length
			sel.End += length
		} else if pos < sel.End {
			sel.End += length
		}
		out.Selection = &sel
	}
	return out
}

// DeleteAt shifts c to account for a delete of length L at byte offset
// pos: positions entirely before the deleted range are unaffected,
// positions inside it collapse to pos, and positions after it shift back
// by L. Selections are transformed endpoint-by-endpoint with the same
// rule, which also handles the case of a selection fully contained in
// the deleted range collapsing to a single point at pos.
func (c Cursor) DeleteAt(pos, length int) Cursor {
	out := c
	out.Position = shiftForDelete(c.Position, pos, length)
	if c.Selection != nil {
		sel := Selection{
			Start: shiftForDelete(c.Selection.Start, pos, length),
			End:   shiftForDelete(c.Selection.End, pos, length),
		}
		if sel.End < sel.Start {
			sel.End = sel.Start
		}
		out.Selection = &sel
	}
	return out
}

// shiftForDelete transforms a single byte offset across a delete of
// length at pos.
func shiftForDelete(offset, pos, length int) int {
	end := pos + length
	switch {
	case offset <= pos:
		return offset
	case offset >= end:
		return offset - length
	default:
		return pos
	}
}

// Clamp ensures c's position and selection stay within [0, contentLen],
// guarding against drift from a caller applying transforms out of order.
func (c Cursor) Clamp(contentLen int) Cursor {
	out := c
	out.Position = clampInt(out.Position, 0, contentLen)
	if out.Selection != nil {
		sel := Selection{
			Start: clampInt(out.Selection.Start, 0, contentLen),
			End:   clampInt(out.Selection.End, 0, contentLen),
		}
		if sel.End < sel.Start {
			sel.End = sel.Start
		}
		out.Selection = &sel
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Set tracks every peer's cursor for one document, applying the same
// insert/delete transform to all of them as edits land.
type Set struct {
	cursors map[vortex.PeerID]Cursor
}

// NewSet returns an empty cursor Set.
func NewSet() *Set {
	return &Set{cursors: make(map[vortex.PeerID]Cursor)}
}

// Upsert records or replaces peer's cursor.
func (s *Set) Upsert(c Cursor) {
	s.cursors[c.Peer] = c
}

// Remove drops peer's cursor, e.g. on disconnect.
func (s *Set) Remove(peer vortex.PeerID) {
	delete(s.cursors, peer)
}

// Get returns peer's cursor and whether it is present.
func (s *Set) Get(peer vortex.PeerID) (Cursor, bool) {
	c, ok := s.cursors[peer]
	return c, ok
}

// All returns every tracked cursor in no particular order.
func (s *Set) All() []Cursor {
	out := make([]Cursor, 0, len(s.cursors))
	for _, c := range s.cursors {
		out = append(out, c)
	}
	return out
}

// ApplyInsert transforms every tracked cursor for an insert of length at
// pos.
func (s *Set) ApplyInsert(pos, length int) {
	for peer, c := range s.cursors {
		s.cursors[peer] = c.InsertAt(pos, length)
	}
}

// ApplyDelete transforms every tracked cursor for a delete of length at
// pos.
func (s *Set) ApplyDelete(pos, length int) {
	for peer, c := range s.cursors {
		s.cursors[peer] = c.DeleteAt(pos, length)
	}
}
