// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package cycler implements the bounded-history symmetric key cycler:
// AEAD encryption under a key that rotates on a message-count or
// duration threshold, retaining just enough history to decrypt
// already-in-flight ciphertexts.
package cycler

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"time"

	vortex "github.com/vortexmesh/vortex"
	"github.com/vortexmesh/vortex/crypto/session"
	"github.com/vortexmesh/vortex/utils"
)

const (
	cycleLabel = "vortex-key-cycle-v1"

	// DefaultMaxMessages and DefaultMaxAge are the dual rotation
	// thresholds: rotation is due once the message counter reaches
	// DefaultMaxMessages or the key's age exceeds DefaultMaxAge,
	// whichever comes first.
	DefaultMaxMessages = 1000
	DefaultMaxAge      = time.Hour

	// DefaultHistoryCapacity bounds how many past keys are retained.
	DefaultHistoryCapacity = 3
)

// Option configures a Cycler at construction time.
type Option func(*Cycler)

// WithMaxMessages overrides the message-count rotation threshold.
func WithMaxMessages(n int64) Option {
	return func(c *Cycler) { c.maxMessages = n }
}

// WithMaxAge overrides the duration rotation threshold.
func WithMaxAge(d time.Duration) Option {
	return func(c *Cycler) { c.maxAge = d }
}

// WithHistoryCapacity overrides the bounded-history size.
func WithHistoryCapacity(n int) Option {
	return func(c *Cycler) { c.historyCapacity = n }
}

// Cycler holds the current key, a monotonic message counter, the instant
// of last rotation, and a bounded FIFO history of past keys. A Cycler is
// single-owner: callers needing concurrent access must serialize it
// themselves, matching the concurrency model's ordering guarantee.
type Cycler struct {
	current         []byte
	counter         *utils.AtomicInt64
	lastRotation    time.Time
	history         [][]byte
	historyCapacity int
	maxMessages     int64
	maxAge          time.Duration
}

// New creates a Cycler seeded with the given initial key.
func New(seedKey []byte, opts ...Option) *Cycler {
	c := &Cycler{
		current:         append([]byte{}, seedKey...),
		counter:         utils.NewAtomicInt64(0),
		lastRotation:    time.Now(),
		historyCapacity: DefaultHistoryCapacity,
		maxMessages:     DefaultMaxMessages,
		maxAge:          DefaultMaxAge,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CurrentKey returns a copy of the key currently in use.
func (c *Cycler) CurrentKey() []byte {
	return append([]byte{}, c.current...)
}

// ShouldRotate reports whether the counter has reached its threshold or
// the key's age has exceeded the duration threshold.
func (c *Cycler) ShouldRotate() bool {
	return c.counter.Get() >= c.maxMessages || time.Since(c.lastRotation) >= c.maxAge
}

// Cycle pushes the current key to history (evicting the oldest entry
// past capacity), derives the next key from the current key and counter
// under a keyed hash, and resets the counter and rotation clock.
func (c *Cycler) Cycle() {
	c.history = append(c.history, c.current)
	if len(c.history) > c.historyCapacity {
		c.history = c.history[len(c.history)-c.historyCapacity:]
	}
	c.current = deriveNextKey(c.current, c.counter.Get())
	c.counter.Reset()
	c.lastRotation = time.Now()
}

// deriveNextKey is the keyed-hash step: HMAC-SHA-512(current,
// counter || cycleLabel), truncated to the AEAD key size.
func deriveNextKey(current []byte, counter int64) []byte {
	mac := hmac.New(sha512.New, current)
	var counterBuf [8]byte
	binary.BigEndian.PutUint64(counterBuf[:], uint64(counter))
	mac.Write(counterBuf[:])
	mac.Write([]byte(cycleLabel))
	return mac.Sum(nil)[:session.EncKeySize]
}

// Encrypt seals plaintext under the current key with a fresh nonce,
// incrementing the message counter.
func (c *Cycler) Encrypt(plaintext []byte) ([]byte, error) {
	sealed, err := session.Encrypt(c.current, plaintext, nil)
	if err != nil {
		return nil, err
	}
	c.counter.Inc()
	return sealed, nil
}

// DecryptWithHistory tries the current key, then the history newest to
// oldest, returning ErrKeyNotInHistory if none succeed.
func (c *Cycler) DecryptWithHistory(ciphertext []byte) ([]byte, error) {
	if plaintext, err := session.Decrypt(c.current, ciphertext, nil); err == nil {
		return plaintext, nil
	}
	for i := len(c.history) - 1; i >= 0; i-- {
		if plaintext, err := session.Decrypt(c.history[i], ciphertext, nil); err == nil {
			return plaintext, nil
		}
	}
	return nil, vortex.ErrKeyNotInHistory
}
