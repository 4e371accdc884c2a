// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package pipeline composes ordered transform layers — compression,
// password or hybrid PQ encryption, hashing, base64 — into a single
// reversible operation. Process wraps its output in a metadata envelope
// recording what each layer did, so Reverse can undo the whole stack
// from the bytes alone plus the secrets in a Context.
package pipeline

import "github.com/vortexmesh/vortex/crypto/hybrid"

// Kind identifies what a Layer does.
type Kind string

const (
	KindCompress      Kind = "compress"
	KindEncryptPass   Kind = "encrypt_password"
	KindEncryptHybrid Kind = "encrypt_hybrid_pq"
	KindHash          Kind = "hash"
	KindBase64Encode  Kind = "base64_encode"
)

// Layer is one step of a Config: the kind of transform, whether it
// currently runs, its position relative to the other layers, and any
// parameters the kind needs.
type Layer struct {
	ID      string
	Kind    Kind
	Enabled bool
	Order   uint32

	// Algorithm and Level apply to KindCompress.
	Algorithm Algorithm
	Level     int

	// RecipientBundle applies to KindEncryptHybrid.
	RecipientBundle *hybrid.PublicBundleView
}

// Config is an ordered, named set of layers.
type Config struct {
	ID          string
	Name        string
	Description string
	Layers      []Layer
}

// Context supplies the secrets layers need at run time: a password per
// layer id for KindEncryptPass, and a keypair for KindEncryptHybrid.
type Context struct {
	Passwords map[string]string
	Keypair   *hybrid.Keypair
}

// LayerResult records the outcome of running one layer.
type LayerResult struct {
	LayerID       string
	OperationType string
	InputSize     int
	OutputSize    int
	Success       bool
	Err           error
}

// Result is the outcome of Process or Reverse.
type Result struct {
	Data          []byte
	OriginalSize  int
	FinalSize     int
	LayersApplied []LayerResult
	Checksum      []byte
}
