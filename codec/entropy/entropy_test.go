// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package entropy

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEntropyCalculation(t *testing.T) {
	require := require.New(t)

	uniform := bytes.Repeat([]byte{42}, 1000)
	require.Less(Calculate(uniform), 0.1)

	varied := make([]byte, 1000)
	for i := range varied {
		varied[i] = byte(i % 256)
	}
	require.Greater(Calculate(varied), 7.0)
}

func TestEntropyClassification(t *testing.T) {
	require := require.New(t)

	uniform := bytes.Repeat([]byte{42}, 1000)
	require.Equal(VeryLow, Classify(uniform))

	random := make([]byte, 1000)
	for i := range random {
		random[i] = byte((i * 7919) % 256)
	}
	class := Classify(random)
	require.True(class == High || class == Random)
}

func TestRLERoundTrip(t *testing.T) {
	require := require.New(t)

	data := []byte("aaaaaabbbbccccccccdddddddddddd")
	encoded := RLEEncode(data)
	decoded, err := RLEDecode(encoded)
	require.NoError(err)
	require.Equal(data, decoded)
}

func TestRLEWithMarkerByte(t *testing.T) {
	require := require.New(t)

	data := bytes.Repeat([]byte{0xFF}, 100)
	encoded := RLEEncode(data)
	decoded, err := RLEDecode(encoded)
	require.NoError(err)
	require.Equal(data, decoded)
}

func TestAdaptiveCompressLowEntropy(t *testing.T) {
	require := require.New(t)

	data := bytes.Repeat([]byte{42}, 10000)
	compressed := AdaptiveCompress(data)
	decompressed, err := AdaptiveDecompress(compressed)
	require.NoError(err)
	require.Equal(data, decompressed)
	require.Less(len(compressed), len(data)/50)
}

func TestAdaptiveCompressMediumEntropy(t *testing.T) {
	require := require.New(t)

	data := make([]byte, 10000)
	for i := range data {
		data[i] = byte(i % 64)
	}
	compressed := AdaptiveCompress(data)
	decompressed, err := AdaptiveDecompress(compressed)
	require.NoError(err)
	require.Equal(data, decompressed)
}

func TestAdaptiveCompressHighEntropy(t *testing.T) {
	require := require.New(t)

	data := make([]byte, 10000)
	for i := range data {
		data[i] = byte((i * 7919) % 256)
	}
	compressed := AdaptiveCompress(data)
	decompressed, err := AdaptiveDecompress(compressed)
	require.NoError(err)
	require.Equal(data, decompressed)
}

func TestAdaptiveDecompressRejectsEmpty(t *testing.T) {
	require := require.New(t)

	_, err := AdaptiveDecompress(nil)
	require.Error(err)
}
