// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package vortex

import "errors"

// The error surface is a small typed hierarchy shared by every layer and
// surfaced verbatim to callers: input errors are reported at the boundary
// and are safe to retry with corrected input; integrity errors are
// terminal for the operation that observed them; capability errors carry
// enough context (via wrapping, not via a distinct type) for a caller to
// rebind missing context; policy errors are non-retryable until the
// underlying policy state changes. None of these are ever logged here —
// they are returned to the caller, who decides what to do with them.
var (
	// ErrKeyGeneration covers entropy unavailability and allocation
	// failure during hybrid or PQ keypair generation.
	ErrKeyGeneration = errors.New("vortex: key generation failed")

	// ErrKeyExchange covers failure of the hybrid KEM+DH key exchange.
	ErrKeyExchange = errors.New("vortex: key exchange failed")

	// ErrHkdfExpansion covers HKDF-expand failure (output longer than
	// the underlying hash allows).
	ErrHkdfExpansion = errors.New("vortex: hkdf expansion failed")

	// ErrDecrypt is returned for every AEAD failure: wrong key,
	// tampered ciphertext, tampered nonce, or tampered tag. It never
	// distinguishes which, so a caller cannot use the failure mode as
	// an oracle.
	ErrDecrypt = errors.New("vortex: decryption failed")

	// ErrSignatureInvalid covers a PQ or classical signature that does
	// not verify.
	ErrSignatureInvalid = errors.New("vortex: signature invalid")

	// ErrKeyNotInHistory is returned when a cycler's current key and
	// its bounded history all fail to decrypt a ciphertext.
	ErrKeyNotInHistory = errors.New("vortex: key not in cycler history")

	// ErrCredentialInvalid covers a malformed credential, an untrusted
	// issuer, or a signature failure during credential verification.
	ErrCredentialInvalid = errors.New("vortex: credential invalid")

	// ErrCredentialRevoked is returned when a credential's id appears
	// in the revocation list.
	ErrCredentialRevoked = errors.New("vortex: credential revoked")

	// ErrCredentialExpired is returned when a credential's expiry
	// instant has passed.
	ErrCredentialExpired = errors.New("vortex: credential expired")

	// ErrHmacVerification covers an HMAC tag mismatch.
	ErrHmacVerification = errors.New("vortex: hmac verification failed")

	// ErrInvalidData covers malformed input bytes: truncated frames,
	// unknown markers, bad lengths.
	ErrInvalidData = errors.New("vortex: invalid data")

	// ErrChecksumMismatch is returned when a pipeline's recovered
	// plaintext hash does not match the original recorded hash.
	ErrChecksumMismatch = errors.New("vortex: checksum mismatch")

	// ErrUnknownOperation covers an unrecognized pipeline layer kind.
	ErrUnknownOperation = errors.New("vortex: unknown operation")

	// ErrMissingPassword is returned when a password-layer operation
	// runs without the context supplying that layer's password.
	ErrMissingPassword = errors.New("vortex: missing password")

	// ErrMissingKeypair is returned when a PQ-layer operation runs
	// without the context supplying a recipient or local keypair.
	ErrMissingKeypair = errors.New("vortex: missing keypair")

	// ErrInsufficientShards is reserved for storage-adjacent hosts that
	// compose this module with a sharding scheme; the core never
	// produces it itself but keeps the sentinel defined so downstream
	// error switches have a single stable hierarchy to match against.
	ErrInsufficientShards = errors.New("vortex: insufficient shards")

	// ErrCausalViolation covers a causal buffer receiving a message
	// whose dependencies can never be satisfied (e.g. a duplicate
	// send counter from a peer already advanced past it).
	ErrCausalViolation = errors.New("vortex: causal order violation")
)
