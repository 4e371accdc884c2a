// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package entropy

import (
	"fmt"

	vortex "github.com/vortexmesh/vortex"
)

// runMarker introduces a run in the RLE stream; it's escaped when it
// appears as a literal byte by following it with 0x00.
const runMarker = 0xFF

const minRunLength = 4
const maxRunLength = 65535

// RLEEncode run-length encodes data, most useful ahead of the nonary
// codec on low-entropy input. Runs of at least minRunLength identical
// bytes are replaced by a marker, the byte, a digit count, and the run
// length packed as base-9 digits (least significant digit first, each
// stored as value+1 so 0x00 stays free for the escape). Literal 0xFF
// bytes are escaped as 0xFF 0x00. Runs of 0x00 are written literally,
// since a run header for them would begin 0xFF 0x00 and read as the escape.
func RLEEncode(data []byte) []byte {
	if len(data) == 0 {
		return nil
	}

	out := make([]byte, 0, len(data))
	i := 0
	for i < len(data) {
		b := data[i]
		runLen := 1
		for i+runLen < len(data) && data[i+runLen] == b && runLen < maxRunLength {
			runLen++
		}

		if runLen >= minRunLength && b != 0x00 {
			out = append(out, runMarker, b)
			var digits []byte
			n := runLen
			for n > 0 {
				digits = append(digits, byte(n%9)+1)
				n /= 9
			}
			out = append(out, byte(len(digits)))
			out = append(out, digits...)
		} else {
			for j := 0; j < runLen; j++ {
				if b == runMarker {
					out = append(out, runMarker, 0x00)
				} else {
					out = append(out, b)
				}
			}
		}
		i += runLen
	}
	return out
}

// RLEDecode reverses RLEEncode.
func RLEDecode(data []byte) ([]byte, error) {
	out := make([]byte, 0, len(data))
	i := 0
	for i < len(data) {
		if data[i] != runMarker {
			out = append(out, data[i])
			i++
			continue
		}
		if i+1 >= len(data) {
			return nil, fmt.Errorf("%w: rle marker truncated at offset %d", vortex.ErrInvalidData, i)
		}
		if data[i+1] == 0x00 {
			out = append(out, runMarker)
			i += 2
			continue
		}
		if i+3 > len(data) {
			return nil, fmt.Errorf("%w: rle run header truncated at offset %d", vortex.ErrInvalidData, i)
		}
		b := data[i+1]
		digitCount := int(data[i+2])
		if i+3+digitCount > len(data) {
			return nil, fmt.Errorf("%w: rle run digits truncated at offset %d", vortex.ErrInvalidData, i)
		}
		runLen := 0
		multiplier := 1
		for j := 0; j < digitCount; j++ {
			digit := int(data[i+3+j]) - 1
			if digit < 0 || digit > 8 {
				return nil, fmt.Errorf("%w: invalid rle run digit at offset %d", vortex.ErrInvalidData, i+3+j)
			}
			runLen += digit * multiplier
			multiplier *= 9
		}
		for k := 0; k < runLen; k++ {
			out = append(out, b)
		}
		i += 3 + digitCount
	}
	return out, nil
}
