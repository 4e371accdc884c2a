// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package hybrid

import (
	"fmt"
	"time"

	vortex "github.com/vortexmesh/vortex"
)

// Serialize writes the keypair as four length-prefixed sections:
// pq-public, pq-private, dh-public+private, sig-public+private. This is
// the current dialect; it always includes the signing section.
func (k *Keypair) Serialize() []byte {
	var out []byte
	out = appendSection(out, k.KEMPublicKey)
	out = appendSection(out, k.KEMPrivateKey)
	out = appendSection(out, append(append([]byte{}, k.DHPublicKey...), k.DHPrivateKey...))
	out = appendSection(out, append(append([]byte{}, k.EdPublicKey...), k.EdPrivateKey...))
	return out
}

// Deserialize parses the current-dialect four-section format. Legacy
// three-section input (missing the signing section) is rejected; use
// DeserializeAllowLegacy for the explicit migration path.
func Deserialize(data []byte) (*Keypair, error) {
	kp, legacy, err := deserialize(data)
	if err != nil {
		return nil, err
	}
	if legacy {
		return nil, fmt.Errorf("%w: legacy keypair format requires explicit migration via DeserializeAllowLegacy", vortex.ErrInvalidData)
	}
	return kp, nil
}

// DeserializeAllowLegacy parses either dialect. A legacy blob (three
// sections, no signing section) is accepted and given a freshly
// generated Ed25519 signing keypair; the result's Legacy field is set so
// callers can detect that identity changed and re-persist in the current
// dialect.
func DeserializeAllowLegacy(data []byte) (*Keypair, error) {
	kp, _, err := deserialize(data)
	return kp, err
}

func deserialize(data []byte) (*Keypair, bool, error) {
	kemPub, off, err := readSection(data, 0)
	if err != nil {
		return nil, false, err
	}
	kemPriv, off, err := readSection(data, off)
	if err != nil {
		return nil, false, err
	}
	dh, off, err := readSection(data, off)
	if err != nil {
		return nil, false, err
	}
	if len(dh) != dhSectionSize {
		return nil, false, fmt.Errorf("%w: malformed dh section", vortex.ErrInvalidData)
	}

	kp := &Keypair{
		KEMPublicKey:  kemPub,
		KEMPrivateKey: kemPriv,
		DHPublicKey:   dh[:32],
		DHPrivateKey:  dh[32:],
		CreatedAt:     time.Now(),
	}

	if off >= len(data) {
		// Legacy dialect: no signing section present.
		edPub, edPriv, genErr := generateEd25519()
		if genErr != nil {
			return nil, false, genErr
		}
		kp.EdPublicKey = edPub
		kp.EdPrivateKey = edPriv
		kp.Legacy = true
		return kp, true, nil
	}

	sig, _, err := readSection(data, off)
	if err != nil {
		return nil, false, err
	}
	if len(sig) != edPublicKeySize+edPrivateKeySize {
		return nil, false, fmt.Errorf("%w: malformed signing section", vortex.ErrInvalidData)
	}
	kp.EdPublicKey = sig[:edPublicKeySize]
	kp.EdPrivateKey = sig[edPublicKeySize:]
	return kp, false, nil
}

const (
	dhSectionSize    = 64 // 32-byte public + 32-byte private X25519 scalar
	edPublicKeySize  = 32
	edPrivateKeySize = 64
)
