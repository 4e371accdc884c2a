// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package hybrid implements the post-quantum/classical hybrid keypair and
// key exchange: a Kyber-1024 (ML-KEM-1024) KEM keypair paired with an
// X25519 DH keypair and an Ed25519 signing keypair, plus a separate
// Dilithium-5 (ML-DSA-87) signature keypair used for identity-level
// signing such as credentials.
package hybrid

import (
	"crypto/ecdh"
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/cloudflare/circl/kem/mlkem/mlkem1024"
	"github.com/cloudflare/circl/sign/mldsa/mldsa87"

	vortex "github.com/vortexmesh/vortex"
)

var (
	kemScheme = mlkem1024.Scheme()
	sigScheme = mldsa87.Scheme()
)

// publicBundleTTL is how long a freshly generated keypair's public bundle
// is considered fresh for ephemeral KEX use before a caller should
// regenerate; it does not expire the private key material itself.
const publicBundleTTL = 5 * time.Minute

// Keypair is the hybrid KEM+DH+signing keypair described by the data
// model: a Kyber-1024 KEM keypair, an X25519 DH keypair, and an Ed25519
// signing keypair. No two of its public keys are ever byte-equal.
type Keypair struct {
	KEMPublicKey  []byte
	KEMPrivateKey []byte
	DHPublicKey   []byte
	DHPrivateKey  []byte
	EdPublicKey   []byte
	EdPrivateKey  []byte

	CreatedAt time.Time
	ExpiresAt time.Time

	// Legacy is set when this keypair was produced by deserializing a
	// pre-signing-section blob; the Ed25519 section was freshly
	// generated rather than recovered.
	Legacy bool
}

// runOnWorker executes fn on a dedicated goroutine and waits for it to
// finish, mirroring the "PQ keygen runs on its own worker, joined before
// returning" contract in the concurrency model: the core spawns no
// threads of its own except for this one generation step.
func runOnWorker(fn func() error) error {
	done := make(chan error, 1)
	go func() {
		done <- fn()
	}()
	return <-done
}

// Generate produces a fresh hybrid keypair. Key generation runs on a
// dedicated worker goroutine because the underlying lattice arithmetic
// allocates large matrices; the worker is joined before Generate returns.
func Generate() (*Keypair, error) {
	kp := &Keypair{}
	err := runOnWorker(func() error {
		kemPub, kemPriv, err := kemScheme.GenerateKeyPair()
		if err != nil {
			return fmt.Errorf("%w: kem keygen: %v", vortex.ErrKeyGeneration, err)
		}
		kemPubBytes, err := kemPub.MarshalBinary()
		if err != nil {
			return fmt.Errorf("%w: kem public marshal: %v", vortex.ErrKeyGeneration, err)
		}
		kemPrivBytes, err := kemPriv.MarshalBinary()
		if err != nil {
			return fmt.Errorf("%w: kem private marshal: %v", vortex.ErrKeyGeneration, err)
		}

		curve := ecdh.X25519()
		dhPriv, err := curve.GenerateKey(rand.Reader)
		if err != nil {
			return fmt.Errorf("%w: dh keygen: %v", vortex.ErrKeyGeneration, err)
		}

		edPub, edPriv, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return fmt.Errorf("%w: ed25519 keygen: %v", vortex.ErrKeyGeneration, err)
		}

		now := time.Now()
		kp.KEMPublicKey = kemPubBytes
		kp.KEMPrivateKey = kemPrivBytes
		kp.DHPublicKey = dhPriv.PublicKey().Bytes()
		kp.DHPrivateKey = dhPriv.Bytes()
		kp.EdPublicKey = []byte(edPub)
		kp.EdPrivateKey = []byte(edPriv)
		kp.CreatedAt = now
		kp.ExpiresAt = now.Add(publicBundleTTL)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return kp, nil
}

// generateEd25519 produces a fresh Ed25519 signing keypair, used both by
// Generate and by the legacy-keypair migration path.
func generateEd25519() (pub, priv []byte, err error) {
	p, s, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: ed25519 keygen: %v", vortex.ErrKeyGeneration, err)
	}
	return []byte(p), []byte(s), nil
}

// dhPrivateKey reconstructs the ecdh.PrivateKey for this keypair's X25519
// scalar.
func (k *Keypair) dhPrivateKey() (*ecdh.PrivateKey, error) {
	curve := ecdh.X25519()
	priv, err := curve.NewPrivateKey(k.DHPrivateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: dh private key: %v", vortex.ErrInvalidData, err)
	}
	return priv, nil
}

// SigKeypair is the separate Dilithium-5 (ML-DSA-87) signature keypair
// used for identity-level signing: credentials and authentication
// challenges.
type SigKeypair struct {
	PublicKey  []byte
	PrivateKey []byte
}

// GenerateSigKeypair produces a fresh PQ signing keypair.
func GenerateSigKeypair() (*SigKeypair, error) {
	sk := &SigKeypair{}
	err := runOnWorker(func() error {
		pub, priv, err := sigScheme.GenerateKey()
		if err != nil {
			return fmt.Errorf("%w: sig keygen: %v", vortex.ErrKeyGeneration, err)
		}
		pubBytes, err := pub.MarshalBinary()
		if err != nil {
			return fmt.Errorf("%w: sig public marshal: %v", vortex.ErrKeyGeneration, err)
		}
		privBytes, err := priv.MarshalBinary()
		if err != nil {
			return fmt.Errorf("%w: sig private marshal: %v", vortex.ErrKeyGeneration, err)
		}
		sk.PublicKey = pubBytes
		sk.PrivateKey = privBytes
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sk, nil
}

// Sign produces a PQ signature over message.
func (sk *SigKeypair) Sign(message []byte) ([]byte, error) {
	priv, err := sigScheme.UnmarshalBinaryPrivateKey(sk.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: sig private unmarshal: %v", vortex.ErrInvalidData, err)
	}
	sig := sigScheme.Sign(priv, message, nil)
	return sig, nil
}

// Verify checks a PQ signature over message against publicKey.
func Verify(publicKey, message, signature []byte) error {
	pub, err := sigScheme.UnmarshalBinaryPublicKey(publicKey)
	if err != nil {
		return fmt.Errorf("%w: sig public unmarshal: %v", vortex.ErrInvalidData, err)
	}
	if !sigScheme.Verify(pub, message, signature, nil) {
		return vortex.ErrSignatureInvalid
	}
	return nil
}
