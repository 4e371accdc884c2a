// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package causal implements the causal-delivery reorder buffer: messages
// stamped with a vector clock are held until every message that causally
// precedes them has been delivered, so a host never observes an effect
// before its cause.
package causal

import (
	"fmt"

	vortex "github.com/vortexmesh/vortex"
	"github.com/vortexmesh/vortex/crdt/clock"
	"github.com/vortexmesh/vortex/utils"
)

// Message carries a sender identifier, the sender's vector clock at the
// moment of send, and an opaque payload.
type Message struct {
	Sender  vortex.PeerID
	Clock   *clock.Clock
	Payload any
}

// Buffer reorders received messages so they become deliverable only once
// every causal dependency has already been delivered. A Buffer is
// single-owner; concurrent access is the caller's responsibility.
type Buffer struct {
	pending      []Message
	delivered    *clock.Clock
	localPeer    vortex.PeerID
	pendingGauge *utils.AtomicInt64
}

// NewBuffer creates a Buffer for localPeer with an empty delivered clock.
func NewBuffer(localPeer vortex.PeerID) *Buffer {
	return &Buffer{
		delivered:    clock.New(),
		localPeer:    localPeer,
		pendingGauge: utils.NewAtomicInt64(0),
	}
}

// Send ticks the local peer's component and returns a Message stamped
// with the resulting clock, ready to be transmitted to other peers.
func (b *Buffer) Send(payload any) Message {
	b.delivered.Tick(b.localPeer)
	return Message{
		Sender:  b.localPeer,
		Clock:   b.delivered.Clone(),
		Payload: payload,
	}
}

// Receive enqueues msg and attempts to deliver it and any other pending
// messages whose dependencies are now satisfied, returning the ordered
// list of messages newly ready for delivery. It rejects a message whose
// sender component can never be satisfied — one already at or behind the
// delivered clock, meaning it is a duplicate or a replay of an already
// observed send — with ErrCausalViolation, since waiting for it to
// become deliverable would wait forever.
func (b *Buffer) Receive(msg Message) ([]Message, error) {
	if senderVal := msg.Clock.Get(msg.Sender); senderVal <= b.delivered.Get(msg.Sender) {
		return nil, fmt.Errorf("%w: sender %q at %d, already delivered through %d",
			vortex.ErrCausalViolation, msg.Sender, senderVal, b.delivered.Get(msg.Sender))
	}
	b.pending = append(b.pending, msg)
	b.pendingGauge.Set(int64(len(b.pending)))
	return b.tryDeliver(), nil
}

// canDeliver reports whether every dependency of msg is already
// reflected in the delivered clock: the sender's component must be
// exactly one ahead of delivered, and every other peer's component in
// msg.Clock must be at or behind delivered.
func (b *Buffer) canDeliver(msg Message) bool {
	for _, peer := range msg.Clock.Peers() {
		val := msg.Clock.Get(peer)
		deliveredVal := b.delivered.Get(peer)
		if peer == msg.Sender {
			if val != deliveredVal+1 {
				return false
			}
		} else if val > deliveredVal {
			return false
		}
	}
	return true
}

// tryDeliver repeatedly scans the pending queue, delivering any message
// whose dependencies are satisfied, until a full pass makes no progress.
func (b *Buffer) tryDeliver() []Message {
	var ready []Message
	progress := true
	for progress {
		progress = false
		remaining := b.pending[:0]
		for _, msg := range b.pending {
			if b.canDeliver(msg) {
				b.delivered.Merge(msg.Clock)
				ready = append(ready, msg)
				progress = true
			} else {
				remaining = append(remaining, msg)
			}
		}
		b.pending = remaining
	}
	b.pendingGauge.Set(int64(len(b.pending)))
	return ready
}

// Clock returns the buffer's current delivered clock.
func (b *Buffer) Clock() *clock.Clock {
	return b.delivered
}

// PendingCount returns the number of messages still awaiting delivery,
// read from an atomic gauge so a host metrics goroutine can poll it
// without synchronizing with the buffer's single owner.
func (b *Buffer) PendingCount() int {
	return int(b.pendingGauge.Get())
}
