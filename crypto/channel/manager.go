// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package channel

import (
	"bytes"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	vortex "github.com/vortexmesh/vortex"
	"github.com/vortexmesh/vortex/crypto/hybrid"
)

// IdentityManager creates identities and moves them in and out of a
// Vault, password-protected at rest. The manager owns nothing itself;
// the vault decides where the bytes live.
type IdentityManager struct {
	vault Vault
}

// NewIdentityManager creates a manager backed by vault.
func NewIdentityManager(vault Vault) *IdentityManager {
	return &IdentityManager{vault: vault}
}

// CreateIdentity generates a fresh identity and checks its purpose keys
// are pairwise distinct before handing it out.
func (m *IdentityManager) CreateIdentity(id vortex.PeerID) (*Identity, error) {
	identity, err := NewIdentity(id)
	if err != nil {
		return nil, err
	}
	if !VerifyKeyDistinctness(identity) {
		return nil, fmt.Errorf("%w: generated identity has colliding public keys", vortex.ErrKeyGeneration)
	}
	return identity, nil
}

// VerifyKeyDistinctness reports whether no two of the identity's public
// keys are byte-equal, across all three hybrid keypairs and the
// credential signer.
func VerifyKeyDistinctness(identity *Identity) bool {
	publics := [][]byte{
		identity.SigningKeypair.KEMPublicKey,
		identity.SigningKeypair.DHPublicKey,
		identity.SigningKeypair.EdPublicKey,
		identity.EncryptionKeypair.KEMPublicKey,
		identity.EncryptionKeypair.DHPublicKey,
		identity.EncryptionKeypair.EdPublicKey,
		identity.AuthKeypair.KEMPublicKey,
		identity.AuthKeypair.DHPublicKey,
		identity.AuthKeypair.EdPublicKey,
		identity.CredentialSigner.PublicKey,
	}
	for i := range publics {
		for j := i + 1; j < len(publics); j++ {
			if bytes.Equal(publics[i], publics[j]) {
				return false
			}
		}
	}
	return true
}

// identityWire is the CBOR container an identity persists as, with each
// hybrid keypair in its length-prefixed serialized form.
type identityWire struct {
	ID         string `cbor:"id"`
	Signing    []byte `cbor:"signing"`
	Encryption []byte `cbor:"encryption"`
	Auth       []byte `cbor:"auth"`
	SigPublic  []byte `cbor:"sig_public"`
	SigPrivate []byte `cbor:"sig_private"`
}

// StoreIdentity serializes identity, encrypts it under password, and
// stores the blob in the vault keyed by the identity's id.
func (m *IdentityManager) StoreIdentity(identity *Identity, password string) error {
	encoded, err := cbor.Marshal(identityWire{
		ID:         string(identity.ID),
		Signing:    identity.SigningKeypair.Serialize(),
		Encryption: identity.EncryptionKeypair.Serialize(),
		Auth:       identity.AuthKeypair.Serialize(),
		SigPublic:  identity.CredentialSigner.PublicKey,
		SigPrivate: identity.CredentialSigner.PrivateKey,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", vortex.ErrInvalidData, err)
	}
	sealed, err := hybrid.EncryptWithPassword(encoded, password)
	if err != nil {
		return err
	}
	return m.vault.Store(string(identity.ID), sealed)
}

// LoadIdentity reverses StoreIdentity.
func (m *IdentityManager) LoadIdentity(id vortex.PeerID, password string) (*Identity, error) {
	sealed, err := m.vault.Get(string(id))
	if err != nil {
		return nil, err
	}
	encoded, err := hybrid.DecryptWithPassword(sealed, password)
	if err != nil {
		return nil, err
	}
	var wire identityWire
	if err := cbor.Unmarshal(encoded, &wire); err != nil {
		return nil, fmt.Errorf("%w: %w", vortex.ErrInvalidData, err)
	}
	signing, err := hybrid.Deserialize(wire.Signing)
	if err != nil {
		return nil, err
	}
	encryption, err := hybrid.Deserialize(wire.Encryption)
	if err != nil {
		return nil, err
	}
	auth, err := hybrid.Deserialize(wire.Auth)
	if err != nil {
		return nil, err
	}
	return &Identity{
		ID:                vortex.PeerID(wire.ID),
		SigningKeypair:    signing,
		EncryptionKeypair: encryption,
		AuthKeypair:       auth,
		CredentialSigner: &hybrid.SigKeypair{
			PublicKey:  wire.SigPublic,
			PrivateKey: wire.SigPrivate,
		},
	}, nil
}

// DeleteIdentity removes the stored blob for id, if any.
func (m *IdentityManager) DeleteIdentity(id vortex.PeerID) error {
	return m.vault.Delete(string(id))
}
