// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package session

import (
	"crypto/hmac"
	"crypto/sha512"

	vortex "github.com/vortexmesh/vortex"
)

// TagSize is the fixed length of an HMAC-SHA-512 tag.
const TagSize = sha512.Size

// Tag computes a 64-byte HMAC-SHA-512 tag over message under key.
func Tag(key, message []byte) []byte {
	mac := hmac.New(sha512.New, key)
	mac.Write(message)
	return mac.Sum(nil)
}

// VerifyTag checks tag against message under key in constant time.
func VerifyTag(key, message, tag []byte) error {
	expected := Tag(key, message)
	if !hmac.Equal(expected, tag) {
		return vortex.ErrHmacVerification
	}
	return nil
}
