// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package pipeline

import (
	"context"
	"sort"
)

// Process runs data through every enabled layer of config, in Order,
// then wraps the result in an envelope recording enough about each layer
// to reverse it later without the caller keeping config around.
func Process(data []byte, config Config, ctx *Context) (*Result, error) {
	return ProcessContext(context.Background(), data, config, ctx)
}

// ProcessContext is Process with cancellation at layer boundaries: a
// cancelled cctx stops before the next layer runs and the call returns
// cctx.Err() with no partial output.
func ProcessContext(cctx context.Context, data []byte, config Config, ctx *Context) (*Result, error) {
	originalSize := len(data)
	originalChecksum := hashData(data)

	layers := make([]Layer, 0, len(config.Layers))
	for _, l := range config.Layers {
		if l.Enabled {
			layers = append(layers, l)
		}
	}
	sort.Slice(layers, func(i, j int) bool { return layers[i].Order < layers[j].Order })

	current := data
	applied := make([]LayerResult, 0, len(layers))
	metas := make([]layerMetadata, 0, len(layers))

	for _, layer := range layers {
		if err := cctx.Err(); err != nil {
			return nil, err
		}
		inputSize := len(current)
		out, meta, err := applyLayer(current, layer, ctx)
		if err != nil {
			applied = append(applied, LayerResult{
				LayerID:       layer.ID,
				OperationType: string(layer.Kind),
				InputSize:     inputSize,
				Success:       false,
				Err:           err,
			})
			return nil, err
		}
		applied = append(applied, LayerResult{
			LayerID:       layer.ID,
			OperationType: string(layer.Kind),
			InputSize:     inputSize,
			OutputSize:    len(out),
			Success:       true,
		})
		metas = append(metas, meta)
		current = out
	}

	env := envelope{
		Version:          envelopeVersion,
		Layers:           metas,
		OriginalChecksum: originalChecksum,
		OriginalSize:     originalSize,
	}
	finalData, err := wrapEnvelope(env, current)
	if err != nil {
		return nil, err
	}

	return &Result{
		Data:          finalData,
		OriginalSize:  originalSize,
		FinalSize:     len(finalData),
		LayersApplied: applied,
		Checksum:      hashData(finalData),
	}, nil
}
