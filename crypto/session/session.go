// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package session derives symmetric session keys from a shared secret and
// provides the AEAD, HMAC, and traffic-padding primitives built on top of
// them.
package session

import (
	"crypto/sha512"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	vortex "github.com/vortexmesh/vortex"
)

const (
	hkdfSalt = "vortex-session-v1"

	labelEncryption = "encryption"
	labelHMAC       = "hmac"
	labelIV         = "iv"

	// EncKeySize, MACKeySize, and IVSeedSize are the lengths derived by
	// Derive and the wire layout of Serialize/Deserialize: 32 + 32 + 12
	// = 76 bytes total.
	EncKeySize = 32
	MACKeySize = 32
	IVSeedSize = 12
	WireSize   = EncKeySize + MACKeySize + IVSeedSize
)

// Keys holds the three keys derived from a shared secret.
type Keys struct {
	EncKey []byte
	MACKey []byte
	IVSeed []byte
}

// Derive is pure and deterministic: equal shared secrets always produce
// byte-identical Keys.
func Derive(sharedSecret []byte) (*Keys, error) {
	encKey, err := expand(sharedSecret, labelEncryption, EncKeySize)
	if err != nil {
		return nil, err
	}
	macKey, err := expand(sharedSecret, labelHMAC, MACKeySize)
	if err != nil {
		return nil, err
	}
	ivSeed, err := expand(sharedSecret, labelIV, IVSeedSize)
	if err != nil {
		return nil, err
	}
	return &Keys{EncKey: encKey, MACKey: macKey, IVSeed: ivSeed}, nil
}

func expand(secret []byte, label string, size int) ([]byte, error) {
	reader := hkdf.New(sha512.New, secret, []byte(hkdfSalt), []byte(label))
	out := make([]byte, size)
	if _, err := io.ReadFull(reader, out); err != nil {
		return nil, fmt.Errorf("%w: %v", vortex.ErrHkdfExpansion, err)
	}
	return out, nil
}

// Serialize writes the three keys as a fixed 76-byte concatenation.
func (k *Keys) Serialize() []byte {
	out := make([]byte, 0, WireSize)
	out = append(out, k.EncKey...)
	out = append(out, k.MACKey...)
	out = append(out, k.IVSeed...)
	return out
}

// DeserializeKeys reverses Serialize.
func DeserializeKeys(blob []byte) (*Keys, error) {
	if len(blob) != WireSize {
		return nil, fmt.Errorf("%w: session keys blob must be %d bytes, got %d", vortex.ErrInvalidData, WireSize, len(blob))
	}
	return &Keys{
		EncKey: append([]byte{}, blob[:EncKeySize]...),
		MACKey: append([]byte{}, blob[EncKeySize:EncKeySize+MACKeySize]...),
		IVSeed: append([]byte{}, blob[EncKeySize+MACKeySize:]...),
	}, nil
}
