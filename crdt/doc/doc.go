// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package doc implements the HLC-timestamped sequence CRDT used for
// collaborative text editing: an append-only operation log, a
// materialized string cache, a tombstone set of deleted positions, and
// the frontier of latest-seen timestamps per contributing node.
package doc

import (
	"fmt"
	"sort"

	"github.com/fxamacker/cbor/v2"

	vortex "github.com/vortexmesh/vortex"
	"github.com/vortexmesh/vortex/crdt/hlc"
)

// OpKind discriminates the two operation shapes a Document's log holds.
type OpKind uint8

const (
	// OpInsert places Content at Position.
	OpInsert OpKind = iota
	// OpDelete tombstones Position; Content is unused.
	OpDelete
)

// Op is one entry in a Document's operation log.
type Op struct {
	Kind      OpKind        `cbor:"kind"`
	Position  hlc.Position  `cbor:"position"`
	Content   string        `cbor:"content,omitempty"`
	Timestamp hlc.Timestamp `cbor:"timestamp"`
}

// Document is the materialized CRDT state: an append-only op log, the
// current string (cached for O(1) reads, reconstructible from the log
// via Verify), a tombstone set keyed by position, and the frontier of
// latest timestamps per node. A Document is single-owner; concurrent
// access is the caller's responsibility.
type Document struct {
	id         string
	node       vortex.HLCNode
	ops        []Op
	content    []byte
	tombstones map[hlc.Key]hlc.Timestamp
	frontier   map[vortex.HLCNode]hlc.Timestamp
	clock      hlc.Timestamp
	counter    uint64
}

// New creates an empty Document identified by id, owned by node.
func New(id string, node vortex.HLCNode) *Document {
	return &Document{
		id:         id,
		node:       node,
		tombstones: make(map[hlc.Key]hlc.Timestamp),
		frontier:   make(map[vortex.HLCNode]hlc.Timestamp),
		clock:      hlc.New(node),
	}
}

// ID returns the document's identifier.
func (d *Document) ID() string { return d.id }

// Content returns the current materialized string.
func (d *Document) Content() string { return string(d.content) }

// Frontier returns a copy of the latest timestamp seen per contributing
// node.
func (d *Document) Frontier() map[vortex.HLCNode]hlc.Timestamp {
	out := make(map[vortex.HLCNode]hlc.Timestamp, len(d.frontier))
	for k, v := range d.frontier {
		out[k] = v
	}
	return out
}

// Ops returns the operation log in application order. The returned
// slice must not be mutated by the caller.
func (d *Document) Ops() []Op { return d.ops }

// sortedLivePositions returns every non-tombstoned insert's position and
// byte length, in position order, used both to find an insertion index
// and to reconstruct content from the log.
func (d *Document) sortedLivePositions() ([]hlc.Position, []int) {
	type entry struct {
		pos hlc.Position
		len int
	}
	var live []entry
	for _, op := range d.ops {
		if op.Kind != OpInsert {
			continue
		}
		if _, tombstoned := d.tombstones[op.Position.AsKey()]; tombstoned {
			continue
		}
		live = append(live, entry{pos: op.Position, len: len(op.Content)})
	}
	sort.Slice(live, func(i, j int) bool { return live[i].pos.Less(live[j].pos) })

	positions := make([]hlc.Position, len(live))
	lengths := make([]int, len(live))
	for i, e := range live {
		positions[i] = e.pos
		lengths[i] = e.len
	}
	return positions, lengths
}

// byteIndexFor returns the byte offset at which position sorts among the
// document's current live positions.
func (d *Document) byteIndexFor(position hlc.Position) int {
	positions, lengths := d.sortedLivePositions()
	idx := 0
	for i, p := range positions {
		if position.Less(p) {
			return idx
		}
		idx += lengths[i]
	}
	return idx
}

// Insert performs a local insert of text at the materialized-string
// index, bumping the HLC and synthesizing a fresh position. It returns
// the op recorded so a host can broadcast it to other replicas.
func (d *Document) Insert(index int, text string) (Op, error) {
	if index < 0 || index > len(d.content) {
		return Op{}, fmt.Errorf("%w: insert index %d out of range [0,%d]", vortex.ErrInvalidData, index, len(d.content))
	}
	d.counter++
	d.clock = d.clock.Increment()

	position := d.positionForIndex(index)
	op := Op{
		Kind:      OpInsert,
		Position:  position,
		Content:   text,
		Timestamp: d.clock,
	}
	d.applyLocal(op)
	return op, nil
}

// positionForIndex synthesizes a fresh position between the positions
// immediately surrounding the given materialized-string index.
func (d *Document) positionForIndex(index int) hlc.Position {
	positions, lengths := d.sortedLivePositions()
	if len(positions) == 0 {
		return hlc.Generate(d.node, d.counter, 0)
	}

	idx := 0
	for i := range positions {
		if idx == index {
			var left *hlc.Position
			if i > 0 {
				left = &positions[i-1]
			}
			right := positions[i]
			return hlc.Between(left, &right, d.node, d.counter)
		}
		idx += lengths[i]
	}
	last := positions[len(positions)-1]
	return hlc.Between(&last, nil, d.node, d.counter)
}

// Delete performs a local delete of the character at the materialized
// index, marking the position it finds there as a tombstone.
func (d *Document) Delete(index int) (Op, error) {
	if index < 0 || index >= len(d.content) {
		return Op{}, fmt.Errorf("%w: delete index %d out of range [0,%d)", vortex.ErrInvalidData, index, len(d.content))
	}
	position, ok := d.positionAtIndex(index)
	if !ok {
		return Op{}, fmt.Errorf("%w: no live position at index %d", vortex.ErrInvalidData, index)
	}
	d.clock = d.clock.Increment()
	op := Op{Kind: OpDelete, Position: position, Timestamp: d.clock}
	d.applyLocal(op)
	return op, nil
}

// positionAtIndex finds the live insert position covering byte index.
func (d *Document) positionAtIndex(index int) (hlc.Position, bool) {
	positions, lengths := d.sortedLivePositions()
	idx := 0
	for i, p := range positions {
		if index >= idx && index < idx+lengths[i] {
			return p, true
		}
		idx += lengths[i]
	}
	return hlc.Position{}, false
}

// ApplyRemote merges a remote op's timestamp into the local HLC, then
// applies the op as if it were local. Because the CRDT's total order on
// positions is independent of arrival order, any two replicas that have
// seen the same set of ops converge to identical materialized content
// regardless of the order ops arrive in.
func (d *Document) ApplyRemote(op Op) {
	d.clock = d.clock.Update(op.Timestamp)
	d.applyLocal(op)
}

// applyLocal mutates content/tombstones/frontier for op and appends it
// to the log. Shared by local and remote application paths.
func (d *Document) applyLocal(op Op) {
	switch op.Kind {
	case OpInsert:
		if _, tombstoned := d.tombstones[op.Position.AsKey()]; tombstoned {
			d.ops = append(d.ops, op)
			break
		}
		idx := d.byteIndexFor(op.Position)
		d.ops = append(d.ops, op)
		grown := make([]byte, 0, len(d.content)+len(op.Content))
		grown = append(grown, d.content[:idx]...)
		grown = append(grown, op.Content...)
		grown = append(grown, d.content[idx:]...)
		d.content = grown
	case OpDelete:
		key := op.Position.AsKey()
		if existing, ok := d.tombstones[key]; !ok || op.Timestamp.After(existing) {
			d.tombstones[key] = op.Timestamp
		}
		d.ops = append(d.ops, op)
		d.rebuildContent()
	}
	d.updateFrontier(op.Timestamp)
}

// rebuildContent recomputes the materialized string from the live
// (non-tombstoned) inserts in position order. Called after a delete,
// since removing a position can shift byte offsets non-locally.
func (d *Document) rebuildContent() {
	positions, _ := d.sortedLivePositions()
	byPosition := make(map[hlc.Key]string, len(positions))
	for _, op := range d.ops {
		if op.Kind == OpInsert {
			byPosition[op.Position.AsKey()] = op.Content
		}
	}
	var content []byte
	for _, p := range positions {
		content = append(content, byPosition[p.AsKey()]...)
	}
	d.content = content
}

func (d *Document) updateFrontier(ts hlc.Timestamp) {
	existing, ok := d.frontier[ts.Node]
	if !ok || ts.After(existing) {
		d.frontier[ts.Node] = ts
	}
}

// Compact removes redundant delete-of-same-position ops, keeping only
// the one with the latest timestamp for each tombstoned position. It
// never removes inserts or non-redundant deletes, and never reverses
// history. It returns the number of ops removed.
func (d *Document) Compact() int {
	latest := make(map[hlc.Key]hlc.Timestamp)
	for _, op := range d.ops {
		if op.Kind != OpDelete {
			continue
		}
		key := op.Position.AsKey()
		if ts, ok := latest[key]; !ok || op.Timestamp.After(ts) {
			latest[key] = op.Timestamp
		}
	}
	kept := d.ops[:0:0]
	keptKey := make(map[hlc.Key]bool)
	removed := 0
	for _, op := range d.ops {
		if op.Kind != OpDelete {
			kept = append(kept, op)
			continue
		}
		key := op.Position.AsKey()
		if keptKey[key] || op.Timestamp.After(latest[key]) || latest[key].After(op.Timestamp) {
			removed++
			continue
		}
		keptKey[key] = true
		kept = append(kept, op)
	}
	d.ops = kept
	return removed
}

// ShouldCompact reports whether the op log has grown past threshold
// entries, a hint a host can use to schedule Compact.
func (d *Document) ShouldCompact(threshold int) bool {
	return len(d.ops) > threshold
}

// wireFormat is the (doc_id, op_log, current_string) serialization.
type wireFormat struct {
	DocID   string `cbor:"doc_id"`
	Ops     []Op   `cbor:"ops"`
	Content string `cbor:"content"`
}

// Serialize encodes the document as (doc_id, op_log, current_string).
func (d *Document) Serialize() ([]byte, error) {
	encoded, err := cbor.Marshal(wireFormat{DocID: d.id, Ops: d.ops, Content: string(d.content)})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", vortex.ErrInvalidData, err)
	}
	return encoded, nil
}

// Deserialize rebuilds a Document from bytes produced by Serialize,
// owned by node. The cached content is trusted as-is; call Verify to
// check it against a from-scratch reconstruction of the op log before
// trusting data from an untrusted source.
func Deserialize(data []byte, node vortex.HLCNode) (*Document, error) {
	var wire wireFormat
	if err := cbor.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("%w: %w", vortex.ErrInvalidData, err)
	}
	d := New(wire.DocID, node)
	d.ops = wire.Ops
	d.content = []byte(wire.Content)
	for _, op := range wire.Ops {
		if op.Kind == OpDelete {
			key := op.Position.AsKey()
			if existing, ok := d.tombstones[key]; !ok || op.Timestamp.After(existing) {
				d.tombstones[key] = op.Timestamp
			}
		}
		d.updateFrontier(op.Timestamp)
	}
	return d, nil
}

// Verify reconstructs the materialized content from the op log alone and
// checks it equals the cached Content, so a host never has to simply
// trust the cached string of a document loaded from untrusted storage.
func (d *Document) Verify() bool {
	rebuilt := New(d.id, d.node)
	rebuilt.tombstones = make(map[hlc.Key]hlc.Timestamp)
	for _, op := range d.ops {
		if op.Kind == OpDelete {
			key := op.Position.AsKey()
			if existing, ok := rebuilt.tombstones[key]; !ok || op.Timestamp.After(existing) {
				rebuilt.tombstones[key] = op.Timestamp
			}
		}
	}
	rebuilt.ops = d.ops
	rebuilt.rebuildContent()
	return string(rebuilt.content) == string(d.content)
}
