// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package channel

import (
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"time"

	vortex "github.com/vortexmesh/vortex"
	"github.com/vortexmesh/vortex/crypto/session"
)

// AuthFlow selects how SecureChannelBuilder.Authenticate derives session
// keys with a remote peer.
type AuthFlow int

const (
	// Interactive requires the remote public bundle to be at least
	// identityIDMinLength bytes, a cheap sanity check that the caller
	// passed a real bundle rather than a short garbage value.
	Interactive AuthFlow = iota
	// NonInteractive skips that length check, for callers that already
	// validated the remote bundle out of band.
	NonInteractive
)

// identityIDMinLength is the minimum plausible length of a remote public
// bundle accepted by the Interactive flow.
const identityIDMinLength = 16

// AuthResult is returned by Authenticate: the peer identity that was
// authenticated, the session keys derived for this channel, and which
// flow produced them.
type AuthResult struct {
	PeerID      vortex.PeerID
	SessionKeys *session.Keys
	Flow        AuthFlow
}

// SecureChannelBuilder holds one identity's channel-establishment state:
// its own identity, the set of authorities it trusts to issue
// credentials, and a cached revocation list.
type SecureChannelBuilder struct {
	Local              *Identity
	TrustedAuthorities map[vortex.PeerID]struct{}
	Revocation         *RevocationList
}

// NewSecureChannelBuilder creates a builder for local, trusting the given
// authorities.
func NewSecureChannelBuilder(local *Identity, trusted ...vortex.PeerID) *SecureChannelBuilder {
	trustedSet := make(map[vortex.PeerID]struct{}, len(trusted))
	for _, id := range trusted {
		trustedSet[id] = struct{}{}
	}
	return &SecureChannelBuilder{
		Local:              local,
		TrustedAuthorities: trustedSet,
		Revocation:         NewRevocationList(),
	}
}

// Authenticate derives session keys for a channel with a remote peer.
// Both flows derive session keys from the local auth keypair's private
// material, used here as an abstract secret rather than a genuine mutual
// KEX; callers that require full mutual key agreement must compose
// crypto/hybrid's KeyExchange explicitly; Authenticate does not infer
// that intent on their behalf.
func (s *SecureChannelBuilder) Authenticate(remotePublic []byte, flow AuthFlow) (*AuthResult, error) {
	if flow == Interactive && len(remotePublic) < identityIDMinLength {
		return nil, fmt.Errorf("%w: remote public shorter than identity id", vortex.ErrKeyExchange)
	}

	keys, err := deriveAbstractSessionKeys(s.Local.AuthKeypair.EdPrivateKey, 0)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		PeerID:      vortex.PeerID(remotePublic[:minInt(len(remotePublic), identityIDMinLength)]),
		SessionKeys: keys,
		Flow:        flow,
	}, nil
}

// VerifyCredential fails if the issuer is not trusted, the credential's
// id is revoked, it has expired, or its PQ signature does not verify.
func (s *SecureChannelBuilder) VerifyCredential(cred *Credential, issuerPublicKey []byte) error {
	if _, trusted := s.TrustedAuthorities[cred.Issuer]; !trusted {
		return fmt.Errorf("%w: issuer %q not trusted", vortex.ErrCredentialInvalid, cred.Issuer)
	}
	if s.Revocation.IsRevoked(cred.ID()) {
		return fmt.Errorf("%w", vortex.ErrCredentialRevoked)
	}
	if cred.isExpired(time.Now()) {
		return fmt.Errorf("%w: %w", vortex.ErrCredentialInvalid, vortex.ErrCredentialExpired)
	}
	return cred.verifySignature(issuerPublicKey)
}

// RotateKeys rotates the channel's session keys only if rs.ShouldRotate()
// reports true; otherwise it returns current unchanged.
func (s *SecureChannelBuilder) RotateKeys(rs *RotationState, current *session.Keys) (*session.Keys, error) {
	if !rs.ShouldRotate() {
		return current, nil
	}
	epoch := rs.reset()
	return deriveAbstractSessionKeys(s.Local.AuthKeypair.EdPrivateKey, epoch)
}

// deriveAbstractSessionKeys feeds the local auth private key, mixed with
// an epoch counter so successive rotations diverge, into session.Derive.
func deriveAbstractSessionKeys(authPrivateKey []byte, epoch int64) (*session.Keys, error) {
	h := sha512.New()
	h.Write(authPrivateKey)
	var epochBuf [8]byte
	binary.BigEndian.PutUint64(epochBuf[:], uint64(epoch))
	h.Write(epochBuf[:])
	return session.Derive(h.Sum(nil))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
