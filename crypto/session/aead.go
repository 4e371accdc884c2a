// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package session

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	vortex "github.com/vortexmesh/vortex"
)

// Encrypt seals plaintext under key with a fresh random 96-bit nonce
// prepended to the ciphertext, optionally binding aad.
func Encrypt(key, plaintext, aad []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("%w: aead init: %v", vortex.ErrDecrypt, err)
	}
	nonce := make([]byte, chacha20poly1305.NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("%w: nonce: %v", vortex.ErrKeyGeneration, err)
	}
	ciphertext := aead.Seal(nil, nonce, plaintext, aad)
	return append(nonce, ciphertext...), nil
}

// Decrypt reads the leading 12-byte nonce off sealed and opens the
// remainder. Any tampering with the ciphertext, nonce, tag, or a
// mismatched aad fails as ErrDecrypt without distinguishing the cause.
func Decrypt(key, sealed, aad []byte) ([]byte, error) {
	if len(sealed) < chacha20poly1305.NonceSize {
		return nil, fmt.Errorf("%w: sealed payload too short", vortex.ErrDecrypt)
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("%w: aead init: %v", vortex.ErrDecrypt, err)
	}
	nonce := sealed[:chacha20poly1305.NonceSize]
	ciphertext := sealed[chacha20poly1305.NonceSize:]
	plaintext, err := aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", vortex.ErrDecrypt, err)
	}
	return plaintext, nil
}
