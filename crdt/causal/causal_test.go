// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package causal

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	vortex "github.com/vortexmesh/vortex"
)

func TestCausalOrder(t *testing.T) {
	require := require.New(t)

	alice := NewBuffer(vortex.PeerID("alice"))
	bob := NewBuffer(vortex.PeerID("bob"))

	m1 := alice.Send("hello")
	delivered, err := bob.Receive(m1)
	require.NoError(err)
	require.Len(delivered, 1)

	m2 := bob.Send("world")
	delivered, err = alice.Receive(m2)
	require.NoError(err)
	require.Len(delivered, 1)
}

func TestOutOfOrder(t *testing.T) {
	require := require.New(t)

	alice := NewBuffer(vortex.PeerID("alice"))
	bob := NewBuffer(vortex.PeerID("bob"))

	m1 := alice.Send("first")
	m2 := alice.Send("second")

	delivered, err := bob.Receive(m2)
	require.NoError(err)
	require.Empty(delivered)
	require.Equal(1, bob.PendingCount())

	delivered, err = bob.Receive(m1)
	require.NoError(err)
	require.Len(delivered, 2)
	require.Equal("first", delivered[0].Payload)
	require.Equal("second", delivered[1].Payload)
	require.Zero(bob.PendingCount())
}

func TestReceiveDuplicateSendIsCausalViolation(t *testing.T) {
	require := require.New(t)

	alice := NewBuffer(vortex.PeerID("alice"))
	bob := NewBuffer(vortex.PeerID("bob"))

	m1 := alice.Send("first")
	_, err := bob.Receive(m1)
	require.NoError(err)

	// Replaying the same message again can never become deliverable:
	// bob's delivered clock for alice is already at m1's value.
	_, err = bob.Receive(m1)
	require.ErrorIs(err, vortex.ErrCausalViolation)
}

// TestPermutationDeliversLinearExtension: for any permutation of a
// message set presented to a buffer, the delivered prefix order is a
// linear extension of happens-before.
func TestPermutationDeliversLinearExtension(t *testing.T) {
	require := require.New(t)

	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		alice := NewBuffer(vortex.PeerID("alice"))
		var msgs []Message
		for i := 0; i < 6; i++ {
			msgs = append(msgs, alice.Send(i))
		}

		perm := rng.Perm(len(msgs))
		bob := NewBuffer(vortex.PeerID("bob"))
		var deliveredOrder []int
		for _, idx := range perm {
			delivered, err := bob.Receive(msgs[idx])
			require.NoError(err)
			for _, m := range delivered {
				deliveredOrder = append(deliveredOrder, m.Payload.(int))
			}
		}
		require.Len(deliveredOrder, len(msgs))
		for i, v := range deliveredOrder {
			require.Equal(i, v)
		}
	}
}
