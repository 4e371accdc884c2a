// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package nonary

import (
	"encoding/binary"
	"fmt"

	vortex "github.com/vortexmesh/vortex"
)

const symbolTableSize = 256
const nonaryHeaderSize = 4 + symbolTableSize

// Encode builds a frequency-ranked symbol table for data, rank-encodes
// every byte in bijective base-9 with a length-prefixed digit group, and
// packs the resulting digit stream two to a byte. If the nonary form
// would not be smaller than the raw input, Encode falls back to the raw
// form instead (marker 0).
//
// Wire format (nonary form): marker(1)=1 ‖ u32-LE original length ‖
// 256-byte symbol table ‖ packed digits.
func Encode(data []byte) []byte {
	table := BuildSymbolTable(data)

	var digits []byte
	for _, b := range data {
		n := int(table.Rank(b)) + 1
		enc := encodeBijectiveBase9(n)
		digits = append(digits, byte(len(enc)))
		digits = append(digits, enc...)
	}
	packed := packNonary(digits)

	compressed := make([]byte, 0, 1+nonaryHeaderSize+len(packed))
	compressed = append(compressed, MarkerNonary)
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(data)))
	compressed = append(compressed, lenBuf[:]...)
	compressed = append(compressed, table.Table[:]...)
	compressed = append(compressed, packed...)

	if len(compressed) >= len(data)+1 {
		raw := make([]byte, 0, len(data)+1)
		raw = append(raw, MarkerRaw)
		raw = append(raw, data...)
		return raw
	}
	return compressed
}

// Decode reverses Encode, dispatching on the leading marker byte.
func Decode(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", vortex.ErrInvalidData)
	}
	switch data[0] {
	case MarkerRaw:
		out := make([]byte, len(data)-1)
		copy(out, data[1:])
		return out, nil
	case MarkerNonary:
		return decodeNonary(data[1:])
	default:
		return nil, fmt.Errorf("%w: unknown codec marker %d", vortex.ErrInvalidData, data[0])
	}
}

func decodeNonary(body []byte) ([]byte, error) {
	if len(body) < nonaryHeaderSize {
		return nil, fmt.Errorf("%w: nonary header truncated", vortex.ErrInvalidData)
	}
	origLen := binary.LittleEndian.Uint32(body[:4])
	table := symbolTableFromBytes(body[4:nonaryHeaderSize])
	digits := unpackNonary(body[nonaryHeaderSize:])

	out := make([]byte, 0, origLen)
	cursor := 0
	for i := 0; i < int(origLen); i++ {
		if cursor >= len(digits) {
			return nil, fmt.Errorf("%w: digit stream truncated", vortex.ErrInvalidData)
		}
		groupLen := int(digits[cursor])
		cursor++
		if groupLen <= 0 || cursor+groupLen > len(digits) {
			return nil, fmt.Errorf("%w: digit group truncated", vortex.ErrInvalidData)
		}
		n := decodeBijectiveBase9(digits[cursor : cursor+groupLen])
		cursor += groupLen
		rank := n - 1
		if rank < 0 || rank > 255 {
			return nil, fmt.Errorf("%w: rank out of range", vortex.ErrInvalidData)
		}
		out = append(out, table.Byte(byte(rank)))
	}
	return out, nil
}
