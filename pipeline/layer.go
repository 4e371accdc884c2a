// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package pipeline

import (
	"encoding/base64"
	"fmt"

	vortex "github.com/vortexmesh/vortex"
	"github.com/vortexmesh/vortex/crypto/hybrid"
)

// applyLayer runs one forward layer, returning the transformed data and
// the metadata Reverse will need to undo it.
func applyLayer(data []byte, layer Layer, ctx *Context) ([]byte, layerMetadata, error) {
	switch layer.Kind {
	case KindCompress:
		out, err := compressWith(layer.Algorithm, layer.Level, data)
		if err != nil {
			return nil, layerMetadata{}, err
		}
		return out, layerMetadata{
			LayerID:       layer.ID,
			OperationType: string(KindCompress),
			Algorithm:     string(layer.Algorithm),
			Level:         layer.Level,
		}, nil

	case KindEncryptPass:
		password, ok := ctx.Passwords[layer.ID]
		if !ok {
			return nil, layerMetadata{}, fmt.Errorf("%w: layer %q", vortex.ErrMissingPassword, layer.ID)
		}
		out, err := hybrid.EncryptWithPassword(data, password)
		if err != nil {
			return nil, layerMetadata{}, err
		}
		return out, layerMetadata{LayerID: layer.ID, OperationType: string(KindEncryptPass)}, nil

	case KindEncryptHybrid:
		if layer.RecipientBundle == nil {
			return nil, layerMetadata{}, fmt.Errorf("%w: layer %q has no recipient bundle", vortex.ErrMissingKeypair, layer.ID)
		}
		out, err := hybrid.EncryptForRecipient(data, layer.RecipientBundle)
		if err != nil {
			return nil, layerMetadata{}, err
		}
		return out, layerMetadata{LayerID: layer.ID, OperationType: string(KindEncryptHybrid)}, nil

	case KindHash:
		// The layer passes data through unchanged and records only its id
		// and kind; no digest of its input is stored. The envelope's
		// checksum covers the original input, not this layer's input.
		return data, layerMetadata{LayerID: layer.ID, OperationType: string(KindHash)}, nil

	case KindBase64Encode:
		encoded := base64.StdEncoding.EncodeToString(data)
		return []byte(encoded), layerMetadata{LayerID: layer.ID, OperationType: string(KindBase64Encode)}, nil

	default:
		return nil, layerMetadata{}, fmt.Errorf("%w: %q", vortex.ErrUnknownOperation, layer.Kind)
	}
}

// reverseLayer undoes one layer using the metadata Process recorded for
// it and the current Context's secrets.
func reverseLayer(data []byte, meta layerMetadata, ctx *Context) ([]byte, error) {
	switch Kind(meta.OperationType) {
	case KindCompress:
		return decompressWith(Algorithm(meta.Algorithm), data)

	case KindEncryptPass:
		password, ok := ctx.Passwords[meta.LayerID]
		if !ok {
			return nil, fmt.Errorf("%w: layer %q", vortex.ErrMissingPassword, meta.LayerID)
		}
		return hybrid.DecryptWithPassword(data, password)

	case KindEncryptHybrid:
		if ctx.Keypair == nil {
			return nil, fmt.Errorf("%w: context has no keypair", vortex.ErrMissingKeypair)
		}
		return ctx.Keypair.DecryptFromSender(data)

	case KindHash:
		return data, nil

	case KindBase64Encode:
		return base64.StdEncoding.DecodeString(string(data))

	default:
		return nil, fmt.Errorf("%w: %q", vortex.ErrUnknownOperation, meta.OperationType)
	}
}
