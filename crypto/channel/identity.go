// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package channel implements identities, credentials, revocation, the
// vault capability, and secure channel establishment (mutual
// authentication and key rotation) built on top of crypto/hybrid and
// crypto/session.
package channel

import (
	vortex "github.com/vortexmesh/vortex"
	"github.com/vortexmesh/vortex/crypto/hybrid"
)

// Identity owns three distinct hybrid keypairs — signing, encryption,
// authentication — plus a separate PQ signature keypair used to sign
// credentials and challenges. The invariant that no two public keys are
// byte-equal holds both within one hybrid keypair (see crypto/hybrid) and
// across the three purpose-specific keypairs, since each is generated
// independently.
//
// Each purpose-specific field stores the complete hybrid keypair
// (KEM+DH+Ed25519), not just its PQ half, so crypto/hybrid's KEX and
// at-rest operations are available off the encryption and authentication
// keys as well as the signing key.
type Identity struct {
	ID vortex.PeerID

	SigningKeypair    *hybrid.Keypair
	EncryptionKeypair *hybrid.Keypair
	AuthKeypair       *hybrid.Keypair

	// CredentialSigner is the separate Dilithium-5 keypair used to sign
	// and verify credentials and authentication challenges.
	CredentialSigner *hybrid.SigKeypair
}

// NewIdentity generates a fresh identity: three independent hybrid
// keypairs plus a PQ credential-signing keypair.
func NewIdentity(id vortex.PeerID) (*Identity, error) {
	signing, err := hybrid.Generate()
	if err != nil {
		return nil, err
	}
	encryption, err := hybrid.Generate()
	if err != nil {
		return nil, err
	}
	auth, err := hybrid.Generate()
	if err != nil {
		return nil, err
	}
	credSigner, err := hybrid.GenerateSigKeypair()
	if err != nil {
		return nil, err
	}
	return &Identity{
		ID:                id,
		SigningKeypair:    signing,
		EncryptionKeypair: encryption,
		AuthKeypair:       auth,
		CredentialSigner:  credSigner,
	}, nil
}
