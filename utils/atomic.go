// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package utils holds small, dependency-free helpers shared across the
// crypto, codec, and CRDT layers: atomic value wrappers, saturating
// arithmetic, and multi-error aggregation.
package utils

import "sync/atomic"

// Atomic provides atomic load/store for an arbitrary value type.
type Atomic[T any] struct {
	value atomic.Value
}

// NewAtomic creates an Atomic already holding value.
func NewAtomic[T any](value T) *Atomic[T] {
	a := &Atomic[T]{}
	a.Set(value)
	return a
}

// Get returns the current value, or the zero value of T if nothing was
// ever stored.
func (a *Atomic[T]) Get() T {
	v := a.value.Load()
	if v == nil {
		var zero T
		return zero
	}
	return v.(T)
}

// Set stores value.
func (a *Atomic[T]) Set(value T) {
	a.value.Store(value)
}

// AtomicInt64 provides atomic int64 operations, used for monotonic
// counters such as the key cycler's message count.
type AtomicInt64 struct {
	value atomic.Int64
}

// NewAtomicInt64 creates an AtomicInt64 holding value.
func NewAtomicInt64(value int64) *AtomicInt64 {
	a := &AtomicInt64{}
	a.value.Store(value)
	return a
}

// Get returns the current value.
func (a *AtomicInt64) Get() int64 {
	return a.value.Load()
}

// Set stores value.
func (a *AtomicInt64) Set(value int64) {
	a.value.Store(value)
}

// Add atomically adds delta and returns the new value.
func (a *AtomicInt64) Add(delta int64) int64 {
	return a.value.Add(delta)
}

// Inc atomically increments by one and returns the new value.
func (a *AtomicInt64) Inc() int64 {
	return a.Add(1)
}

// Reset atomically sets the value back to zero.
func (a *AtomicInt64) Reset() {
	a.value.Store(0)
}
