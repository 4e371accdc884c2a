// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package hybrid

import (
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	atRestVersion   byte = 0x01
	atRestSaltSize       = 16
	atRestNonceSize      = chacha20poly1305.NonceSize

	// Argon2id defaults; memory-hard by construction so brute-forcing a
	// stolen at-rest blob is expensive even against weak passwords.
	argon2Time    = 1
	argon2Memory  = 64 * 1024 // KiB
	argon2Threads = 4
	argon2KeyLen  = 32
)

func deriveAtRestKey(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)
}

// EncryptAtRest serializes the keypair and encrypts it under a
// password-derived key. Wire format: version(1) || salt(16) || nonce(12)
// || ciphertext.
func (k *Keypair) EncryptAtRest(password string) ([]byte, error) {
	return EncryptWithPassword(k.Serialize(), password)
}

// DecryptAtRest reverses EncryptAtRest. Wrong password, truncated input,
// and an unknown version all surface as ErrDecrypt.
func DecryptAtRest(blob []byte, password string) (*Keypair, error) {
	plaintext, err := DecryptWithPassword(blob, password)
	if err != nil {
		return nil, err
	}
	return Deserialize(plaintext)
}
