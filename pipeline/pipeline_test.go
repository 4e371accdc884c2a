// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	vortex "github.com/vortexmesh/vortex"
	"github.com/vortexmesh/vortex/crypto/hybrid"
)

func TestProcessReverseCompressOnly(t *testing.T) {
	require := require.New(t)

	data := []byte("the quick brown fox jumps over the lazy dog, repeatedly, many times over")
	config := Config{
		Layers: []Layer{
			{ID: "c", Kind: KindCompress, Enabled: true, Order: 0, Algorithm: AlgorithmZstd, Level: 5},
		},
	}
	ctx := &Context{Passwords: map[string]string{}}

	result, err := Process(data, config, ctx)
	require.NoError(err)
	require.True(result.LayersApplied[0].Success)

	reversed, err := Reverse(result.Data, ctx)
	require.NoError(err)
	require.Equal(data, reversed.Data)
}

func TestProcessReversePasswordLayer(t *testing.T) {
	require := require.New(t)

	data := []byte("secret payload")
	config := Config{
		Layers: []Layer{
			{ID: "pw", Kind: KindEncryptPass, Enabled: true, Order: 0},
		},
	}
	ctx := &Context{Passwords: map[string]string{"pw": "hunter2"}}

	result, err := Process(data, config, ctx)
	require.NoError(err)

	reversed, err := Reverse(result.Data, ctx)
	require.NoError(err)
	require.Equal(data, reversed.Data)
}

func TestReversePasswordLayerFailsWithoutMatchingID(t *testing.T) {
	require := require.New(t)

	data := []byte("secret payload")
	config := Config{
		Layers: []Layer{
			{ID: "pw", Kind: KindEncryptPass, Enabled: true, Order: 0},
		},
	}
	result, err := Process(data, config, &Context{Passwords: map[string]string{"pw": "hunter2"}})
	require.NoError(err)

	_, err = Reverse(result.Data, &Context{Passwords: map[string]string{"other-layer": "hunter2"}})
	require.ErrorIs(err, vortex.ErrMissingPassword)
}

func TestProcessReverseHybridPQLayer(t *testing.T) {
	require := require.New(t)

	recipient, err := hybrid.Generate()
	require.NoError(err)
	bundle, err := hybrid.ParsePublicBundle(recipient.PublicBundle())
	require.NoError(err)

	data := []byte("post-quantum secret")
	config := Config{
		Layers: []Layer{
			{ID: "pq", Kind: KindEncryptHybrid, Enabled: true, Order: 0, RecipientBundle: bundle},
		},
	}
	ctx := &Context{Keypair: recipient}

	result, err := Process(data, config, ctx)
	require.NoError(err)

	reversed, err := Reverse(result.Data, ctx)
	require.NoError(err)
	require.Equal(data, reversed.Data)
}

func TestProcessReverseMultiLayerMaxSecurity(t *testing.T) {
	require := require.New(t)

	recipient, err := hybrid.Generate()
	require.NoError(err)
	bundle, err := hybrid.ParsePublicBundle(recipient.PublicBundle())
	require.NoError(err)

	config := Presets()[4] // preset-max-security
	config.Layers[2].RecipientBundle = bundle

	ctx := &Context{
		Passwords: map[string]string{"password-layer": "correct horse battery staple"},
		Keypair:   recipient,
	}

	data := []byte("vortex mesh collaboration toolbox payload, replicated across peers")
	result, err := Process(data, config, ctx)
	require.NoError(err)
	require.Len(result.LayersApplied, 4)

	reversed, err := Reverse(result.Data, ctx)
	require.NoError(err)
	require.Equal(data, reversed.Data)
}

func TestReverseDetectsTamperedChecksum(t *testing.T) {
	require := require.New(t)

	data := []byte("integrity matters")
	config := Config{
		Layers: []Layer{
			{ID: "c", Kind: KindCompress, Enabled: true, Order: 0, Algorithm: AlgorithmGzip, Level: 6},
		},
	}
	ctx := &Context{}

	result, err := Process(data, config, ctx)
	require.NoError(err)

	tampered := append([]byte{}, result.Data...)
	tampered[len(tampered)-1] ^= 0xFF

	_, err = Reverse(tampered, ctx)
	require.Error(err)
}

func TestProcessContextHonorsCancellation(t *testing.T) {
	require := require.New(t)

	cctx, cancel := context.WithCancel(context.Background())
	cancel()

	config := Config{
		Layers: []Layer{
			{ID: "c", Kind: KindCompress, Enabled: true, Order: 0, Algorithm: AlgorithmSnap},
		},
	}
	_, err := ProcessContext(cctx, []byte("payload"), config, &Context{})
	require.ErrorIs(err, context.Canceled)
}

func TestValidateRejectsDuplicateLayerIDs(t *testing.T) {
	require := require.New(t)

	config := Config{Layers: []Layer{
		{ID: "dup", Kind: KindHash, Enabled: true, Order: 0},
		{ID: "dup", Kind: KindHash, Enabled: true, Order: 1},
	}}
	require.ErrorIs(Validate(config), vortex.ErrInvalidData)
}

func TestValidateRejectsOutOfRangeLevel(t *testing.T) {
	require := require.New(t)

	config := Config{Layers: []Layer{
		{ID: "c", Kind: KindCompress, Enabled: true, Order: 0, Algorithm: AlgorithmZstd, Level: 23},
	}}
	require.ErrorIs(Validate(config), vortex.ErrInvalidData)
}

func TestEstimateAppliesPerAlgorithmRatios(t *testing.T) {
	require := require.New(t)

	config := Config{Layers: []Layer{
		{ID: "c", Kind: KindCompress, Enabled: true, Order: 0, Algorithm: AlgorithmZstd, Level: 3},
	}}
	final, ops := Estimate(1000, config)
	require.Equal(400, final)
	require.Len(ops, 1)
}

func TestPresetsAreAllValid(t *testing.T) {
	require := require.New(t)

	for _, preset := range Presets() {
		require.NoError(Validate(preset))
	}
}
