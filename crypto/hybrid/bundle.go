// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package hybrid

// PublicBundle returns the three public keys (KEM, DH, Ed25519)
// concatenated into an opaque blob with explicit sub-lengths. It is safe
// to share over an untrusted channel.
func (k *Keypair) PublicBundle() []byte {
	var out []byte
	out = appendSection(out, k.KEMPublicKey)
	out = appendSection(out, k.DHPublicKey)
	out = appendSection(out, k.EdPublicKey)
	return out
}

// PublicBundleView holds the parsed form of a bundle produced by
// (*Keypair).PublicBundle, enough to run KeyExchange or verify a
// signature against the bundle's Ed25519 key.
type PublicBundleView struct {
	KEMPublicKey []byte
	DHPublicKey  []byte
	EdPublicKey  []byte
}

// ParsePublicBundle parses the wire form produced by PublicBundle.
func ParsePublicBundle(bundle []byte) (*PublicBundleView, error) {
	kemPub, off, err := readSection(bundle, 0)
	if err != nil {
		return nil, err
	}
	dhPub, off, err := readSection(bundle, off)
	if err != nil {
		return nil, err
	}
	edPub, _, err := readSection(bundle, off)
	if err != nil {
		return nil, err
	}
	return &PublicBundleView{
		KEMPublicKey: kemPub,
		DHPublicKey:  dhPub,
		EdPublicKey:  edPub,
	}, nil
}
