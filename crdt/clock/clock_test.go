// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package clock

import (
	"testing"

	"github.com/stretchr/testify/require"

	vortex "github.com/vortexmesh/vortex"
)

func TestHappensBefore(t *testing.T) {
	require := require.New(t)

	a := Init(vortex.PeerID("alice"))
	b := a.Clone()
	b.Tick(vortex.PeerID("bob"))

	require.True(a.HappensBefore(b))
	require.False(b.HappensBefore(a))
	require.False(a.IsConcurrent(b))
}

func TestConcurrent(t *testing.T) {
	require := require.New(t)

	a := Init(vortex.PeerID("alice"))
	b := Init(vortex.PeerID("bob"))

	require.True(a.IsConcurrent(b))
	require.False(a.HappensBefore(b))
	require.False(b.HappensBefore(a))
}

func TestMerge(t *testing.T) {
	require := require.New(t)

	a := Init(vortex.PeerID("alice"))
	a.Tick(vortex.PeerID("alice"))

	b := Init(vortex.PeerID("bob"))
	b.Tick(vortex.PeerID("bob"))

	a.Merge(b)
	require.Equal(uint64(2), a.Get(vortex.PeerID("alice")))
	require.Equal(uint64(2), a.Get(vortex.PeerID("bob")))
}

func TestEqualIgnoresImplicitZero(t *testing.T) {
	require := require.New(t)

	a := New()
	b := Init(vortex.PeerID("alice"))
	b.counts[vortex.PeerID("alice")] = 0

	require.True(a.Equal(b))
}

func TestSnapshotRoundTrip(t *testing.T) {
	require := require.New(t)

	a := Init(vortex.PeerID("alice"))
	a.Tick(vortex.PeerID("bob"))

	b := FromSnapshot(a.Snapshot())
	require.True(a.Equal(b))
}

// TestOrderProperty: happens_before(a, b) implies not
// happens_before(b, a) and not is_concurrent(a, b), across a range of
// generated clock pairs.
func TestOrderProperty(t *testing.T) {
	require := require.New(t)

	peers := []vortex.PeerID{"p0", "p1", "p2", "p3"}
	for i := 0; i < 200; i++ {
		a := New()
		b := New()
		for j, p := range peers {
			a.counts[p] = uint64((i + j) % 5)
			b.counts[p] = uint64((i + 2*j) % 5)
		}
		if a.HappensBefore(b) {
			require.False(b.HappensBefore(a))
			require.False(a.IsConcurrent(b))
		}
	}
}
