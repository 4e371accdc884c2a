// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package entropy

import (
	"encoding/binary"
	"fmt"

	"github.com/vortexmesh/vortex/codec/nonary"

	vortex "github.com/vortexmesh/vortex"
)

const (
	adaptiveMarkerRaw byte = iota
	adaptiveMarkerRLEVortex
	adaptiveMarkerVortex
	adaptiveMarkerZstd
)

// adaptiveMinSize is the floor below which the per-format overhead can't
// pay for itself; it is half the hybrid dispatcher's 64-byte floor.
const adaptiveMinSize = 32

// AdaptiveCompress classifies data by entropy and picks the transform
// that class tends to reward: very-low/low entropy gets run-length
// encoding followed by the nonary hybrid dispatcher, medium entropy goes
// straight to the dispatcher, high entropy tries zstd, and random data is
// stored raw since nothing would help. Any branch that fails to actually
// shrink the input falls back to raw.
func AdaptiveCompress(data []byte) []byte {
	if len(data) < adaptiveMinSize {
		return withMarker(adaptiveMarkerRaw, data)
	}

	switch Classify(data) {
	case VeryLow, Low:
		rle := RLEEncode(data)
		compressed := nonary.VortexCompress(rle)
		if len(compressed) < len(data) {
			out := make([]byte, 0, 5+len(compressed))
			out = append(out, adaptiveMarkerRLEVortex)
			var lenBuf [4]byte
			binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(data)))
			out = append(out, lenBuf[:]...)
			out = append(out, compressed...)
			return out
		}
	case Medium:
		compressed := nonary.VortexCompress(data)
		if len(compressed) < len(data) {
			return withMarker(adaptiveMarkerVortex, compressed)
		}
	case High:
		compressed := nonary.ZstdCompress(data)
		if len(compressed) < len(data) {
			return withMarker(adaptiveMarkerZstd, compressed)
		}
	}
	return withMarker(adaptiveMarkerRaw, data)
}

// AdaptiveDecompress reverses AdaptiveCompress.
func AdaptiveDecompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", vortex.ErrInvalidData)
	}

	switch data[0] {
	case adaptiveMarkerRaw:
		out := make([]byte, len(data)-1)
		copy(out, data[1:])
		return out, nil
	case adaptiveMarkerRLEVortex:
		if len(data) < 5 {
			return nil, fmt.Errorf("%w: adaptive header truncated", vortex.ErrInvalidData)
		}
		vortexData, err := nonary.VortexDecompress(data[5:])
		if err != nil {
			return nil, err
		}
		return RLEDecode(vortexData)
	case adaptiveMarkerVortex:
		return nonary.VortexDecompress(data[1:])
	case adaptiveMarkerZstd:
		return nonary.ZstdDecompress(data[1:])
	default:
		return nil, fmt.Errorf("%w: unknown adaptive marker %d", vortex.ErrInvalidData, data[0])
	}
}

func withMarker(marker byte, payload []byte) []byte {
	out := make([]byte, 0, len(payload)+1)
	out = append(out, marker)
	return append(out, payload...)
}
