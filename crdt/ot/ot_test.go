// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package ot

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	vortex "github.com/vortexmesh/vortex"
)

func TestInsertShiftsPositionAndSelection(t *testing.T) {
	require := require.New(t)

	c := Cursor{Peer: vortex.PeerID("alice"), Position: 10, Selection: &Selection{Start: 10, End: 15}}
	out := c.InsertAt(5, 3)
	require.Equal(13, out.Position)
	require.Equal(13, out.Selection.Start)
	require.Equal(18, out.Selection.End)
}

func TestInsertAtSelectionTrailingEdgeDoesNotStretchEnd(t *testing.T) {
	require := require.New(t)

	c := Cursor{Peer: vortex.PeerID("alice"), Selection: &Selection{Start: 0, End: 5}}
	out := c.InsertAt(5, 2)
	require.Equal(0, out.Selection.Start)
	require.Equal(5, out.Selection.End, "insert exactly at selection end must not grow it")
}

func TestInsertAtCollapsedSelectionKeepsItEmpty(t *testing.T) {
	require := require.New(t)

	// A collapsed selection (as left behind by a delete that swallowed
	// it) must move as one point, never invert into start > end.
	c := Cursor{Peer: vortex.PeerID("alice"), Position: 3, Selection: &Selection{Start: 3, End: 3}}
	out := c.InsertAt(3, 5)
	require.Equal(8, out.Position)
	require.Equal(8, out.Selection.Start)
	require.Equal(8, out.Selection.End)
	require.True(out.Selection.Empty())
}

func TestDeleteCollapsesInsideSelection(t *testing.T) {
	require := require.New(t)

	c := Cursor{Peer: vortex.PeerID("alice"), Position: 7, Selection: &Selection{Start: 5, End: 10}}
	out := c.DeleteAt(3, 10) // deletes [3,13), fully swallowing position and selection
	require.Equal(3, out.Position)
	require.True(out.Selection.Empty())
	require.Equal(3, out.Selection.Start)
	require.Equal(3, out.Selection.End)
}

func TestDeleteBeforePositionShiftsBack(t *testing.T) {
	require := require.New(t)

	c := Cursor{Peer: vortex.PeerID("alice"), Position: 20}
	out := c.DeleteAt(5, 5)
	require.Equal(15, out.Position)
}

// TestCursorInvariantsUnderRandomEdits: after any sequence of applies,
// every cursor satisfies 0 <= pos <= len(content) and start <= end for
// any selection.
func TestCursorInvariantsUnderRandomEdits(t *testing.T) {
	require := require.New(t)

	rng := rand.New(rand.NewSource(11))
	set := NewSet()
	content := 50
	set.Upsert(Cursor{Peer: "alice", Position: 10, Selection: &Selection{Start: 5, End: 20}})
	set.Upsert(Cursor{Peer: "bob", Position: 40})

	for i := 0; i < 200; i++ {
		pos := rng.Intn(content + 1)
		if rng.Intn(2) == 0 {
			length := 1 + rng.Intn(5)
			set.ApplyInsert(pos, length)
			content += length
		} else {
			length := 1 + rng.Intn(minInt(5, content-pos+1))
			if pos >= content {
				continue
			}
			if pos+length > content {
				length = content - pos
			}
			set.ApplyDelete(pos, length)
			content -= length
		}
		for _, c := range set.All() {
			clamped := c.Clamp(content)
			require.True(clamped.Position >= 0 && clamped.Position <= content)
			if clamped.Selection != nil {
				require.True(clamped.Selection.Start <= clamped.Selection.End)
			}
		}
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
