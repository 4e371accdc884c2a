// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package cycler

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	vortex "github.com/vortexmesh/vortex"
)

func seed(t *testing.T) []byte {
	t.Helper()
	buf := make([]byte, 32)
	_, err := rand.Read(buf)
	require.NoError(t, err)
	return buf
}

func TestShouldRotateOnMessageCount(t *testing.T) {
	require := require.New(t)

	c := New(seed(t), WithMaxMessages(3))
	require.False(c.ShouldRotate())

	for i := 0; i < 3; i++ {
		_, err := c.Encrypt([]byte("msg"))
		require.NoError(err)
	}
	require.True(c.ShouldRotate())
}

func TestCyclerDeterminism(t *testing.T) {
	require := require.New(t)

	s := seed(t)
	a := New(append([]byte{}, s...))
	b := New(append([]byte{}, s...))

	for i := 0; i < 5; i++ {
		a.Cycle()
		b.Cycle()
		require.Equal(a.CurrentKey(), b.CurrentKey())
	}
}

func TestCyclerHistoryBound(t *testing.T) {
	require := require.New(t)

	c := New(seed(t), WithHistoryCapacity(3))

	ciphertext, err := c.Encrypt([]byte("secret at cycle n"))
	require.NoError(err)

	for i := 0; i < 3; i++ {
		c.Cycle()
	}
	plaintext, err := c.DecryptWithHistory(ciphertext)
	require.NoError(err)
	require.Equal([]byte("secret at cycle n"), plaintext)

	c.Cycle()
	_, err = c.DecryptWithHistory(ciphertext)
	require.ErrorIs(err, vortex.ErrKeyNotInHistory)
}
