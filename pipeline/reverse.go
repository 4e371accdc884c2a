// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package pipeline

import (
	"bytes"
	"context"
	"fmt"

	vortex "github.com/vortexmesh/vortex"
)

// Reverse undoes everything Process did, using only the envelope Process
// embedded in data plus whatever secrets ctx supplies. It fails with
// ErrChecksumMismatch if the recovered plaintext doesn't hash to the
// checksum Process recorded.
func Reverse(data []byte, ctx *Context) (*Result, error) {
	return ReverseContext(context.Background(), data, ctx)
}

// ReverseContext is Reverse with cancellation at layer boundaries,
// mirroring ProcessContext.
func ReverseContext(cctx context.Context, data []byte, ctx *Context) (*Result, error) {
	env, payload, err := unwrapEnvelope(data)
	if err != nil {
		return nil, err
	}

	current := payload
	applied := make([]LayerResult, 0, len(env.Layers))

	for i := len(env.Layers) - 1; i >= 0; i-- {
		if err := cctx.Err(); err != nil {
			return nil, err
		}
		meta := env.Layers[i]
		inputSize := len(current)
		out, err := reverseLayer(current, meta, ctx)
		if err != nil {
			applied = append(applied, LayerResult{
				LayerID:       meta.LayerID,
				OperationType: "reverse_" + meta.OperationType,
				InputSize:     inputSize,
				Success:       false,
				Err:           err,
			})
			return nil, err
		}
		applied = append(applied, LayerResult{
			LayerID:       meta.LayerID,
			OperationType: "reverse_" + meta.OperationType,
			InputSize:     inputSize,
			OutputSize:    len(out),
			Success:       true,
		})
		current = out
	}

	finalChecksum := hashData(current)
	if !bytes.Equal(finalChecksum, env.OriginalChecksum) {
		return nil, fmt.Errorf("%w", vortex.ErrChecksumMismatch)
	}

	return &Result{
		Data:          current,
		OriginalSize:  env.OriginalSize,
		FinalSize:     env.OriginalSize,
		LayersApplied: applied,
		Checksum:      finalChecksum,
	}, nil
}
