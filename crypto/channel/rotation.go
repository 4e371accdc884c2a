// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package channel

import (
	"time"

	"github.com/vortexmesh/vortex/utils"
)

const (
	// DefaultRotationBytes and DefaultRotationAge are the secure
	// channel's default rotation thresholds: 100 MiB transferred or
	// 24h age, whichever comes first.
	DefaultRotationBytes = 100 * 1024 * 1024
	DefaultRotationAge   = 24 * time.Hour
)

// RotationState tracks how much has been transferred and how long it's
// been since the channel's session keys were last rotated.
type RotationState struct {
	bytesTransferred *utils.AtomicInt64
	epoch            *utils.AtomicInt64
	lastRotation     time.Time
	maxBytes         int64
	maxAge           time.Duration
}

// NewRotationState creates a RotationState using the default thresholds,
// considered freshly rotated as of now.
func NewRotationState() *RotationState {
	return &RotationState{
		bytesTransferred: utils.NewAtomicInt64(0),
		epoch:            utils.NewAtomicInt64(0),
		lastRotation:     time.Now(),
		maxBytes:         DefaultRotationBytes,
		maxAge:           DefaultRotationAge,
	}
}

// RecordBytes adds n to the running bytes-transferred total.
func (r *RotationState) RecordBytes(n int) {
	r.bytesTransferred.Add(int64(n))
}

// ShouldRotate reports whether the bytes-transferred or age threshold has
// been crossed.
func (r *RotationState) ShouldRotate() bool {
	return r.bytesTransferred.Get() >= r.maxBytes || time.Since(r.lastRotation) >= r.maxAge
}

// reset clears the bytes-transferred counter, resets the rotation clock,
// and advances the epoch used to derive the next session keys.
func (r *RotationState) reset() int64 {
	r.bytesTransferred.Reset()
	r.lastRotation = time.Now()
	return r.epoch.Inc()
}
