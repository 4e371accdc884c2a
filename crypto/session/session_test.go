// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package session

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func randomSecret(t *testing.T, n int) []byte {
	t.Helper()
	buf := make([]byte, n)
	_, err := rand.Read(buf)
	require.NoError(t, err)
	return buf
}

func TestDeriveIsDeterministic(t *testing.T) {
	require := require.New(t)

	secret := randomSecret(t, 32)

	a, err := Derive(secret)
	require.NoError(err)
	b, err := Derive(secret)
	require.NoError(err)

	require.Equal(a.EncKey, b.EncKey)
	require.Equal(a.MACKey, b.MACKey)
	require.Equal(a.IVSeed, b.IVSeed)
	require.NotEqual(a.EncKey, a.MACKey)
}

func TestKeysSerializeRoundTrip(t *testing.T) {
	require := require.New(t)

	secret := randomSecret(t, 32)
	keys, err := Derive(secret)
	require.NoError(err)

	blob := keys.Serialize()
	require.Len(blob, WireSize)

	out, err := DeserializeKeys(blob)
	require.NoError(err)
	require.Equal(keys, out)
}

func TestAEADRoundTrip(t *testing.T) {
	require := require.New(t)

	key := randomSecret(t, EncKeySize)
	plaintext := []byte("Post-quantum secure message!")

	sealed, err := Encrypt(key, plaintext, nil)
	require.NoError(err)

	opened, err := Decrypt(key, sealed, nil)
	require.NoError(err)
	require.Equal(plaintext, opened)

	tampered := append([]byte{}, sealed...)
	tampered[0] ^= 0xFF
	_, err = Decrypt(key, tampered, nil)
	require.Error(err)
}

func TestAEADBindsAAD(t *testing.T) {
	require := require.New(t)

	key := randomSecret(t, EncKeySize)
	plaintext := []byte("bound message")
	aad := []byte("channel-id:42")

	sealed, err := Encrypt(key, plaintext, aad)
	require.NoError(err)

	_, err = Decrypt(key, sealed, aad)
	require.NoError(err)

	_, err = Decrypt(key, sealed, []byte("channel-id:43"))
	require.Error(err)
}

func TestHMACVerify(t *testing.T) {
	require := require.New(t)

	key := randomSecret(t, MACKeySize)
	msg := []byte("message body")
	tag := Tag(key, msg)
	require.Len(tag, TagSize)
	require.NoError(VerifyTag(key, msg, tag))

	flipped := append([]byte{}, msg...)
	flipped[0] ^= 0x01
	require.Error(VerifyTag(key, flipped, tag))
}

func TestPaddingInvariant(t *testing.T) {
	require := require.New(t)

	lengths := []int{0, 1, 100, 2047, 2048, 2049, 4096}
	for _, n := range lengths {
		msg := randomSecret(t, n)
		padded, err := Pad(msg)
		require.NoError(err)
		require.Equal(0, (len(padded)-2)%PaddingBlockSize)

		out, err := Unpad(padded)
		require.NoError(err)
		require.Equal(msg, out)
	}
}

func TestUnpadRejectsMalformedInput(t *testing.T) {
	require := require.New(t)

	_, err := Unpad([]byte{0x01})
	require.Error(err)

	_, err = Unpad([]byte{0x00, 0xFF})
	require.Error(err)
}

func TestPaddingAlwaysAddsFullBlockWhenAligned(t *testing.T) {
	require := require.New(t)

	msg := randomSecret(t, PaddingBlockSize)
	padded, err := Pad(msg)
	require.NoError(err)
	require.Equal(len(msg)+PaddingBlockSize+2, len(padded))
}
