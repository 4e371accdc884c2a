// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package hybrid

import (
	"crypto/ecdh"
	"crypto/rand"
	"crypto/sha512"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	vortex "github.com/vortexmesh/vortex"
)

const (
	hybridKDFSalt    = "vortex-hybrid-kex-v1"
	hybridKDFInfo    = "shared-secret"
	sharedSecretSize = 32
)

// Encapsulate runs KEM-encapsulation against remote's PQ public key and
// an ephemeral X25519 exchange against remote's DH public key, combining
// both secrets under a domain-separated HKDF. It returns the 32-byte
// shared secret and a combined ciphertext (KEM ciphertext || ephemeral
// X25519 public key) that the caller transports to remote so it can call
// Decapsulate.
func Encapsulate(remote *PublicBundleView) (combinedCiphertext, sharedSecret []byte, err error) {
	kemPub, err := kemScheme.UnmarshalBinaryPublicKey(remote.KEMPublicKey)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: kem public unmarshal: %v", vortex.ErrKeyExchange, err)
	}
	kemCiphertext, kemSecret, err := kemScheme.Encapsulate(kemPub)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: kem encapsulate: %v", vortex.ErrKeyExchange, err)
	}

	curve := ecdh.X25519()
	remoteDHPub, err := curve.NewPublicKey(remote.DHPublicKey)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: dh public unmarshal: %v", vortex.ErrKeyExchange, err)
	}
	ephemeral, err := curve.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: ephemeral dh keygen: %v", vortex.ErrKeyExchange, err)
	}
	dhSecret, err := ephemeral.ECDH(remoteDHPub)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: ecdh: %v", vortex.ErrKeyExchange, err)
	}

	secret, err := deriveSharedSecret(kemSecret, dhSecret)
	if err != nil {
		return nil, nil, err
	}

	combined := append(append([]byte{}, kemCiphertext...), ephemeral.PublicKey().Bytes()...)
	return combined, secret, nil
}

// KeyExchange computes the 32-byte shared secret against remote's public
// bundle: it runs KEM-encapsulation against the remote PQ public key and
// a DH exchange over X25519, discarding the KEM transport ciphertext
// locally (a full protocol transports it to the peer so Decapsulate can
// recover the same secret; Encapsulate exposes that ciphertext for
// callers that need it).
func (k *Keypair) KeyExchange(remote *PublicBundleView) ([]byte, error) {
	_, secret, err := Encapsulate(remote)
	if err != nil {
		return nil, err
	}
	return secret, nil
}

// Decapsulate reverses Encapsulate using this keypair's KEM and DH
// private keys.
func (k *Keypair) Decapsulate(combinedCiphertext []byte) ([]byte, error) {
	kemCTSize := kemScheme.CiphertextSize()
	if len(combinedCiphertext) != kemCTSize+32 {
		return nil, fmt.Errorf("%w: wrong ciphertext length", vortex.ErrKeyExchange)
	}
	kemCT := combinedCiphertext[:kemCTSize]
	ephemeralDHPub := combinedCiphertext[kemCTSize:]

	kemPriv, err := kemScheme.UnmarshalBinaryPrivateKey(k.KEMPrivateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: kem private unmarshal: %v", vortex.ErrKeyExchange, err)
	}
	kemSecret, err := kemScheme.Decapsulate(kemPriv, kemCT)
	if err != nil {
		return nil, fmt.Errorf("%w: kem decapsulate: %v", vortex.ErrKeyExchange, err)
	}

	curve := ecdh.X25519()
	remotePub, err := curve.NewPublicKey(ephemeralDHPub)
	if err != nil {
		return nil, fmt.Errorf("%w: dh public unmarshal: %v", vortex.ErrKeyExchange, err)
	}
	localPriv, err := k.dhPrivateKey()
	if err != nil {
		return nil, err
	}
	dhSecret, err := localPriv.ECDH(remotePub)
	if err != nil {
		return nil, fmt.Errorf("%w: ecdh: %v", vortex.ErrKeyExchange, err)
	}

	return deriveSharedSecret(kemSecret, dhSecret)
}

// deriveSharedSecret combines a KEM shared secret and a DH shared secret
// under a domain-separated HKDF-SHA-512, producing the 32-byte secret
// both sides converge on.
func deriveSharedSecret(kemSecret, dhSecret []byte) ([]byte, error) {
	combined := append(append([]byte{}, kemSecret...), dhSecret...)
	reader := hkdf.New(sha512.New, combined, []byte(hybridKDFSalt), []byte(hybridKDFInfo))
	out := make([]byte, sharedSecretSize)
	if _, err := io.ReadFull(reader, out); err != nil {
		return nil, fmt.Errorf("%w: %v", vortex.ErrHkdfExpansion, err)
	}
	return out, nil
}
