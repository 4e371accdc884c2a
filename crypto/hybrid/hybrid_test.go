// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package hybrid

import (
	"testing"

	"github.com/stretchr/testify/require"

	vortex "github.com/vortexmesh/vortex"
)

func TestGenerateProducesDistinctPublicKeys(t *testing.T) {
	require := require.New(t)

	kp, err := Generate()
	require.NoError(err)
	require.NotEqual(kp.KEMPublicKey, kp.DHPublicKey)
	require.NotEqual(kp.DHPublicKey, kp.EdPublicKey)
	require.NotEqual(kp.KEMPublicKey, kp.EdPublicKey)
	require.False(kp.Legacy)
}

func TestSerializeRoundTrip(t *testing.T) {
	require := require.New(t)

	kp, err := Generate()
	require.NoError(err)

	blob := kp.Serialize()
	out, err := Deserialize(blob)
	require.NoError(err)

	require.Equal(kp.KEMPublicKey, out.KEMPublicKey)
	require.Equal(kp.KEMPrivateKey, out.KEMPrivateKey)
	require.Equal(kp.DHPublicKey, out.DHPublicKey)
	require.Equal(kp.DHPrivateKey, out.DHPrivateKey)
	require.Equal(kp.EdPublicKey, out.EdPublicKey)
	require.Equal(kp.EdPrivateKey, out.EdPrivateKey)
	require.False(out.Legacy)
}

func TestDeserializeLegacyRequiresOptIn(t *testing.T) {
	require := require.New(t)

	kp, err := Generate()
	require.NoError(err)

	// Build a legacy-dialect blob by stripping the signing section.
	var legacy []byte
	legacy = appendSection(legacy, kp.KEMPublicKey)
	legacy = appendSection(legacy, kp.KEMPrivateKey)
	legacy = appendSection(legacy, append(append([]byte{}, kp.DHPublicKey...), kp.DHPrivateKey...))

	_, err = Deserialize(legacy)
	require.ErrorIs(err, vortex.ErrInvalidData)

	migrated, err := DeserializeAllowLegacy(legacy)
	require.NoError(err)
	require.True(migrated.Legacy)
	require.NotEqual(kp.EdPublicKey, migrated.EdPublicKey)
}

func TestEncryptAtRestRoundTrip(t *testing.T) {
	require := require.New(t)

	kp, err := Generate()
	require.NoError(err)

	blob, err := kp.EncryptAtRest("correct horse battery staple")
	require.NoError(err)

	out, err := DecryptAtRest(blob, "correct horse battery staple")
	require.NoError(err)
	require.Equal(kp.KEMPublicKey, out.KEMPublicKey)

	_, err = DecryptAtRest(blob, "wrong password")
	require.Error(err)

	truncated := blob[:len(blob)-1]
	_, err = DecryptAtRest(truncated, "correct horse battery staple")
	require.Error(err)

	badVersion := append([]byte{}, blob...)
	badVersion[0] = 0x02
	_, err = DecryptAtRest(badVersion, "correct horse battery staple")
	require.Error(err)
}

func TestKeyExchangeConverges(t *testing.T) {
	require := require.New(t)

	alice, err := Generate()
	require.NoError(err)
	bob, err := Generate()
	require.NoError(err)

	bobBundle, err := ParsePublicBundle(bob.PublicBundle())
	require.NoError(err)

	ciphertext, aliceSecret, err := Encapsulate(bobBundle)
	require.NoError(err)
	require.Len(aliceSecret, sharedSecretSize)

	bobSecret, err := bob.Decapsulate(ciphertext)
	require.NoError(err)

	require.Equal(aliceSecret, bobSecret)
}

func TestKeyExchangeFailsWithWrongPrivateKey(t *testing.T) {
	require := require.New(t)

	bob, err := Generate()
	require.NoError(err)
	impostor, err := Generate()
	require.NoError(err)

	bobBundle, err := ParsePublicBundle(bob.PublicBundle())
	require.NoError(err)

	ciphertext, aliceSecret, err := Encapsulate(bobBundle)
	require.NoError(err)

	impostorSecret, err := impostor.Decapsulate(ciphertext)
	if err == nil {
		require.NotEqual(aliceSecret, impostorSecret)
	}
}

func TestEncryptForRecipientRoundTrip(t *testing.T) {
	require := require.New(t)

	recipient, err := Generate()
	require.NoError(err)
	bundle, err := ParsePublicBundle(recipient.PublicBundle())
	require.NoError(err)

	plaintext := []byte("Post-quantum secure message!")
	payload, err := EncryptForRecipient(plaintext, bundle)
	require.NoError(err)

	out, err := recipient.DecryptFromSender(payload)
	require.NoError(err)
	require.Equal(plaintext, out)

	tampered := append([]byte{}, payload...)
	tampered[len(tampered)-1] ^= 0x01
	_, err = recipient.DecryptFromSender(tampered)
	require.ErrorIs(err, vortex.ErrDecrypt)

	other, err := Generate()
	require.NoError(err)
	_, err = other.DecryptFromSender(payload)
	require.Error(err)
}

func TestEncryptForRecipientBindsAAD(t *testing.T) {
	require := require.New(t)

	recipient, err := Generate()
	require.NoError(err)
	bundle, err := ParsePublicBundle(recipient.PublicBundle())
	require.NoError(err)

	plaintext := []byte("bound payload")
	aad := []byte("conversation:7")
	payload, err := EncryptForRecipientWithAAD(plaintext, bundle, aad)
	require.NoError(err)

	out, err := recipient.DecryptFromSenderWithAAD(payload, aad)
	require.NoError(err)
	require.Equal(plaintext, out)

	_, err = recipient.DecryptFromSenderWithAAD(payload, []byte("conversation:8"))
	require.ErrorIs(err, vortex.ErrDecrypt)
}

func TestSigRoundTrip(t *testing.T) {
	require := require.New(t)

	sk, err := GenerateSigKeypair()
	require.NoError(err)

	msg := []byte("credential payload")
	sig, err := sk.Sign(msg)
	require.NoError(err)

	require.NoError(Verify(sk.PublicKey, msg, sig))
	require.Error(Verify(sk.PublicKey, []byte("tampered"), sig))
}
