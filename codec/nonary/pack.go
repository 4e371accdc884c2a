// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package nonary

// packNonary packs a stream of nonary digits (each in 1..9) two to a
// byte, since 9*9 = 81 fits comfortably under 256. An odd trailing digit
// is padded with an arbitrary filler digit that the unpacker never reads,
// because the caller always knows how many digits it needs ahead of time.
func packNonary(digits []byte) []byte {
	out := make([]byte, 0, (len(digits)+1)/2)
	for i := 0; i < len(digits); i += 2 {
		d1 := digits[i]
		d2 := byte(1)
		if i+1 < len(digits) {
			d2 = digits[i+1]
		}
		out = append(out, (d1-1)*9+(d2-1))
	}
	return out
}

// unpackNonary expands packed bytes back into individual nonary digits,
// two per byte, inverse of packNonary.
func unpackNonary(packed []byte) []byte {
	digits := make([]byte, 0, len(packed)*2)
	for _, b := range packed {
		digits = append(digits, b/9+1, b%9+1)
	}
	return digits
}
