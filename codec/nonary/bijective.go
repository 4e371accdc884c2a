// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package nonary

// encodeBijectiveBase9 renders the positive integer n in bijective base-9,
// using digit symbols 1-9 (there is no zero digit). 1 becomes [1], 9
// becomes [9], 10 becomes [1,1]; the most significant digit comes first.
func encodeBijectiveBase9(n int) []byte {
	var digits []byte
	for n > 0 {
		n--
		d := n % 9
		digits = append(digits, byte(d+1))
		n /= 9
	}
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return digits
}

// decodeBijectiveBase9 is the inverse of encodeBijectiveBase9: digits are
// consumed most significant first, each contributing its symbol value
// directly (no shift), since bijective base-9 has no zero digit.
func decodeBijectiveBase9(digits []byte) int {
	n := 0
	for _, d := range digits {
		n = n*9 + int(d)
	}
	return n
}
