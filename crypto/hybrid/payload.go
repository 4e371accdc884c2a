// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package hybrid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	vortex "github.com/vortexmesh/vortex"
)

// EncryptForRecipient hybrid-encrypts arbitrary data for the holder of
// remote's private keys: it runs Encapsulate to agree a shared secret,
// then seals data under it with ChaCha20-Poly1305. Wire format:
// u32-LE combined-ciphertext length || combined ciphertext || nonce(12)
// || AEAD ciphertext.
func EncryptForRecipient(data []byte, remote *PublicBundleView) ([]byte, error) {
	return EncryptForRecipientWithAAD(data, remote, nil)
}

// EncryptForRecipientWithAAD is EncryptForRecipient with associated data
// bound into the AEAD tag; DecryptFromSenderWithAAD succeeds only when
// presented with byte-identical associated data.
func EncryptForRecipientWithAAD(data []byte, remote *PublicBundleView, aad []byte) ([]byte, error) {
	combined, secret, err := Encapsulate(remote)
	if err != nil {
		return nil, err
	}

	aead, err := chacha20poly1305.New(secret)
	if err != nil {
		return nil, fmt.Errorf("%w: aead init: %v", vortex.ErrKeyExchange, err)
	}
	nonce := make([]byte, chacha20poly1305.NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("%w: nonce: %v", vortex.ErrKeyGeneration, err)
	}
	ciphertext := aead.Seal(nil, nonce, data, aad)

	out := make([]byte, 0, 4+len(combined)+len(nonce)+len(ciphertext))
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(combined)))
	out = append(out, lenBuf[:]...)
	out = append(out, combined...)
	out = append(out, nonce...)
	out = append(out, ciphertext...)
	return out, nil
}

// DecryptFromSender reverses EncryptForRecipient using k's private keys.
func (k *Keypair) DecryptFromSender(payload []byte) ([]byte, error) {
	return k.DecryptFromSenderWithAAD(payload, nil)
}

// DecryptFromSenderWithAAD reverses EncryptForRecipientWithAAD; a
// mismatched aad fails as ErrDecrypt like any other tampering.
func (k *Keypair) DecryptFromSenderWithAAD(payload, aad []byte) ([]byte, error) {
	if len(payload) < 4 {
		return nil, fmt.Errorf("%w: payload too short", vortex.ErrInvalidData)
	}
	ctLen := int(binary.LittleEndian.Uint32(payload[:4]))
	if len(payload) < 4+ctLen+chacha20poly1305.NonceSize {
		return nil, fmt.Errorf("%w: payload too short for ciphertext length", vortex.ErrInvalidData)
	}
	combined := payload[4 : 4+ctLen]
	nonce := payload[4+ctLen : 4+ctLen+chacha20poly1305.NonceSize]
	ciphertext := payload[4+ctLen+chacha20poly1305.NonceSize:]

	secret, err := k.Decapsulate(combined)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.New(secret)
	if err != nil {
		return nil, fmt.Errorf("%w: aead init: %v", vortex.ErrKeyExchange, err)
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", vortex.ErrDecrypt, err)
	}
	return plaintext, nil
}
