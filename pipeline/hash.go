// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package pipeline

import "crypto/sha512"

// hashData is the checksum the pipeline envelope records for the original
// input and that Reverse checks the recovered plaintext against. A
// KindHash layer does not call it and records no digest of its own.
func hashData(data []byte) []byte {
	sum := sha512.Sum512(data)
	return sum[:]
}
