// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

/*
Package vortex is the root of the secure data plane shared by every
peer-to-peer collaboration feature built on top of it: chat, file sync,
collaborative editing, watch-party, streaming, social feeds, and the rest.

The plane is three composable layers:

  - crypto/...   hybrid post-quantum key exchange, AEAD with key cycling,
                 HMAC-tagged traffic, padding, credentials, secure channels.
  - codec/...    a nonary rank-encoding codec, entropy-directed adaptive
                 compression, and the segmented/hybrid dispatcher built on
                 top of them.
  - pipeline     a metadata-wrapped multi-layer compress/encrypt/hash/encode
                 pipeline composed from the two layers above.
  - crdt/...     vector clocks, a causal-delivery reorder buffer, an
                 HLC-timestamped sequence CRDT, and cursor/selection
                 transform.

None of these packages own a network transport, a thread pool, or durable
storage; they operate on bytes and values handed to them by a host. The
package-level types declared here are PeerID, the string identifier
threaded through the crypto and CRDT layers, and HLCNode, the fixed-width
node id of clock timestamps and position identifiers.
*/
package vortex

// PeerID identifies a participant across the crypto and CRDT layers. It is
// opaque to this module; hosts are free to use a public key fingerprint, a
// UUID, or any other stable string.
type PeerID string

// HLCNode identifies the node component of a hybrid logical clock
// timestamp and the site component of a CRDT position identifier. It is
// fixed-width so timestamps pack predictably and compare lexicographically
// byte-for-byte; hosts typically derive it from a truncated peer-identity
// fingerprint.
type HLCNode [8]byte
