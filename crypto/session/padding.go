// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package session

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	vortex "github.com/vortexmesh/vortex"
)

// PaddingBlockSize is the traffic-analysis padding granularity: pad
// output length is always a multiple of this plus the 2-byte length
// suffix.
const PaddingBlockSize = 2048

// Pad produces an output whose length is a multiple of PaddingBlockSize
// plus the 2-byte big-endian length suffix. The padding region is filled
// with random bytes. A message whose length is already a multiple of
// PaddingBlockSize still receives a full block of padding, so the
// padding amount is never observably zero.
func Pad(msg []byte) ([]byte, error) {
	rem := len(msg) % PaddingBlockSize
	padLen := PaddingBlockSize - rem
	if padLen > 0xFFFF {
		return nil, fmt.Errorf("%w: padding amount overflows u16 suffix", vortex.ErrInvalidData)
	}

	padding := make([]byte, padLen)
	if _, err := rand.Read(padding); err != nil {
		return nil, fmt.Errorf("%w: %v", vortex.ErrKeyGeneration, err)
	}

	out := make([]byte, 0, len(msg)+padLen+2)
	out = append(out, msg...)
	out = append(out, padding...)
	var suffix [2]byte
	binary.BigEndian.PutUint16(suffix[:], uint16(padLen))
	out = append(out, suffix[:]...)
	return out, nil
}

// Unpad reverses Pad, rejecting input shorter than the 2-byte suffix or
// whose declared padding amount exceeds the available input.
func Unpad(padded []byte) ([]byte, error) {
	if len(padded) < 2 {
		return nil, fmt.Errorf("%w: padded input shorter than length suffix", vortex.ErrInvalidData)
	}
	padLen := int(binary.BigEndian.Uint16(padded[len(padded)-2:]))
	if padLen > len(padded)-2 {
		return nil, fmt.Errorf("%w: declared padding exceeds input length", vortex.ErrInvalidData)
	}
	return padded[:len(padded)-2-padLen], nil
}
