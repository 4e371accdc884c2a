// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package channel

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"time"

	"github.com/fxamacker/cbor/v2"

	vortex "github.com/vortexmesh/vortex"
	"github.com/vortexmesh/vortex/crypto/hybrid"
)

// Credential is a signed assertion linking a subject identity to an
// issuer identity, a set of string attributes, and an expiry instant.
type Credential struct {
	Subject    vortex.PeerID
	Issuer     vortex.PeerID
	Attributes map[string]string
	ExpiresAt  time.Time
	Signature  []byte
}

// CredentialID returns the hash of subject‖issuer, used as the
// credential's identifier in a RevocationList.
func CredentialID(subject, issuer vortex.PeerID) []byte {
	h := sha256.Sum256([]byte(string(subject) + string(issuer)))
	return h[:]
}

// ID returns this credential's CredentialID.
func (c *Credential) ID() []byte {
	return CredentialID(c.Subject, c.Issuer)
}

// signableData builds the byte sequence an issuer signs and a verifier
// checks. Attribute keys are sorted before encoding so the signable
// bytes are a pure function of the credential's fields; map iteration
// order must not leak into what gets signed.
func (c *Credential) signableData() []byte {
	var buf []byte
	buf = append(buf, []byte(c.Subject)...)
	buf = append(buf, []byte(c.Issuer)...)

	keys := make([]string, 0, len(c.Attributes))
	for k := range c.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		buf = append(buf, []byte(k)...)
		buf = append(buf, '=')
		buf = append(buf, []byte(c.Attributes[k])...)
		buf = append(buf, ';')
	}

	expiry := c.ExpiresAt.UTC().Format(time.RFC3339Nano)
	buf = append(buf, []byte(expiry)...)
	return buf
}

// IssueCredential builds and signs a credential on behalf of issuer.
func IssueCredential(issuer *Identity, subject vortex.PeerID, attributes map[string]string, expiresAt time.Time) (*Credential, error) {
	cred := &Credential{
		Subject:    subject,
		Issuer:     issuer.ID,
		Attributes: attributes,
		ExpiresAt:  expiresAt,
	}
	sig, err := issuer.CredentialSigner.Sign(cred.signableData())
	if err != nil {
		return nil, err
	}
	cred.Signature = sig
	return cred, nil
}

// credentialWire is the CBOR record a credential travels and persists
// as. The expiry is carried as unix nanoseconds so the instant survives
// transport exactly and the signable bytes re-derived by a verifier
// match what the issuer signed.
type credentialWire struct {
	Subject    string            `cbor:"subject"`
	Issuer     string            `cbor:"issuer"`
	Attributes map[string]string `cbor:"attributes,omitempty"`
	ExpiresAt  int64             `cbor:"expires_at"`
	Signature  []byte            `cbor:"signature"`
}

// Marshal encodes the credential as a CBOR record.
func (c *Credential) Marshal() ([]byte, error) {
	encoded, err := cbor.Marshal(credentialWire{
		Subject:    string(c.Subject),
		Issuer:     string(c.Issuer),
		Attributes: c.Attributes,
		ExpiresAt:  c.ExpiresAt.UTC().UnixNano(),
		Signature:  c.Signature,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", vortex.ErrInvalidData, err)
	}
	return encoded, nil
}

// ParseCredential decodes a CBOR record produced by Marshal.
func ParseCredential(data []byte) (*Credential, error) {
	var wire credentialWire
	if err := cbor.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("%w: %w", vortex.ErrInvalidData, err)
	}
	return &Credential{
		Subject:    vortex.PeerID(wire.Subject),
		Issuer:     vortex.PeerID(wire.Issuer),
		Attributes: wire.Attributes,
		ExpiresAt:  time.Unix(0, wire.ExpiresAt).UTC(),
		Signature:  wire.Signature,
	}, nil
}

// verifySignature checks the credential's PQ signature against the
// issuer's credential-signing public key.
func (c *Credential) verifySignature(issuerPublicKey []byte) error {
	if err := hybrid.Verify(issuerPublicKey, c.signableData(), c.Signature); err != nil {
		return fmt.Errorf("%w: %w", vortex.ErrCredentialInvalid, err)
	}
	return nil
}

// isExpired reports whether the credential's expiry instant has passed
// as of now.
func (c *Credential) isExpired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
