// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package hybrid

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	vortex "github.com/vortexmesh/vortex"
)

// EncryptWithPassword encrypts arbitrary data under a password-derived
// key. Wire format: version(1) || salt(16) || nonce(12) || ciphertext.
// EncryptAtRest is built on this with the keypair's serialized bytes as
// the plaintext.
func EncryptWithPassword(data []byte, password string) ([]byte, error) {
	salt := make([]byte, atRestSaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("%w: salt: %v", vortex.ErrKeyGeneration, err)
	}
	key := deriveAtRestKey(password, salt)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("%w: aead init: %v", vortex.ErrKeyGeneration, err)
	}

	nonce := make([]byte, atRestNonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("%w: nonce: %v", vortex.ErrKeyGeneration, err)
	}

	ciphertext := aead.Seal(nil, nonce, data, nil)

	out := make([]byte, 0, 1+atRestSaltSize+atRestNonceSize+len(ciphertext))
	out = append(out, atRestVersion)
	out = append(out, salt...)
	out = append(out, nonce...)
	out = append(out, ciphertext...)
	return out, nil
}

// DecryptWithPassword reverses EncryptWithPassword.
func DecryptWithPassword(blob []byte, password string) ([]byte, error) {
	if len(blob) < 1+atRestSaltSize+atRestNonceSize {
		return nil, fmt.Errorf("%w: truncated password blob", vortex.ErrDecrypt)
	}
	if blob[0] != atRestVersion {
		return nil, fmt.Errorf("%w: unknown password blob version %d", vortex.ErrDecrypt, blob[0])
	}
	salt := blob[1 : 1+atRestSaltSize]
	nonce := blob[1+atRestSaltSize : 1+atRestSaltSize+atRestNonceSize]
	ciphertext := blob[1+atRestSaltSize+atRestNonceSize:]

	key := deriveAtRestKey(password, salt)
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("%w: aead init: %v", vortex.ErrDecrypt, err)
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", vortex.ErrDecrypt, err)
	}
	return plaintext, nil
}
