// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAtomic(t *testing.T) {
	require := require.New(t)

	a := NewAtomic(42)
	require.Equal(42, a.Get())

	a.Set(7)
	require.Equal(7, a.Get())

	var zero Atomic[string]
	require.Equal("", zero.Get())
}

func TestAtomicInt64(t *testing.T) {
	require := require.New(t)

	c := NewAtomicInt64(0)
	require.Equal(int64(1), c.Inc())
	require.Equal(int64(4), c.Add(3))
	c.Reset()
	require.Equal(int64(0), c.Get())
}

func TestErrsEmpty(t *testing.T) {
	require := require.New(t)

	var e Errs
	require.False(e.Errored())
	require.NoError(e.Err())
}

func TestErrsSingle(t *testing.T) {
	require := require.New(t)

	var e Errs
	sentinel := errors.New("boom")
	e.Add(sentinel)
	require.True(e.Errored())
	require.Equal(1, e.Len())
	require.Same(sentinel, e.Err())
}

func TestErrsMultiple(t *testing.T) {
	require := require.New(t)

	var e Errs
	e.Add(errors.New("first"))
	e.Add(nil)
	e.Add(errors.New("second"))

	require.Equal(2, e.Len())
	err := e.Err()
	require.Error(err)
	require.Contains(err.Error(), "2 errors occurred")
	require.Contains(err.Error(), "first")
	require.Contains(err.Error(), "second")
}

func TestSaturatingArithmetic(t *testing.T) {
	require := require.New(t)

	require.Equal(uint32(0xFFFFFFFF), SaturatingAddU32(0xFFFFFFF0, 0x100))
	require.Equal(uint32(15), SaturatingAddU32(10, 5))

	require.Equal(uint32(0), SaturatingSubU32(3, 10))
	require.Equal(uint32(5), SaturatingSubU32(10, 5))
}

func TestMinMax(t *testing.T) {
	require := require.New(t)

	require.Equal(1, Min(1, 2))
	require.Equal(2, Max(1, 2))
}
