// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package pipeline

import (
	"encoding/binary"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	vortex "github.com/vortexmesh/vortex"
)

const envelopeVersion uint8 = 1

// layerMetadata records what one layer did, enough to reverse it without
// re-consulting the original Config.
type layerMetadata struct {
	LayerID       string `cbor:"layer_id"`
	OperationType string `cbor:"operation_type"`
	Algorithm     string `cbor:"algorithm,omitempty"`
	Level         int    `cbor:"level,omitempty"`
}

// envelope is the CBOR-encoded header Process prepends to its output so
// Reverse can replay every layer without the caller keeping the original
// Config around.
type envelope struct {
	Version          uint8           `cbor:"version"`
	Layers           []layerMetadata `cbor:"layers"`
	OriginalChecksum []byte          `cbor:"original_checksum"`
	OriginalSize     int             `cbor:"original_size"`
}

// wrapEnvelope prepends a u32-LE length and the CBOR-encoded envelope to
// payload.
func wrapEnvelope(env envelope, payload []byte) ([]byte, error) {
	encoded, err := cbor.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", vortex.ErrInvalidData, err)
	}

	out := make([]byte, 0, 4+len(encoded)+len(payload))
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(encoded)))
	out = append(out, lenBuf[:]...)
	out = append(out, encoded...)
	out = append(out, payload...)
	return out, nil
}

// unwrapEnvelope splits data back into its envelope and payload.
func unwrapEnvelope(data []byte) (envelope, []byte, error) {
	var env envelope
	if len(data) < 4 {
		return env, nil, fmt.Errorf("%w: envelope too short", vortex.ErrInvalidData)
	}
	metaLen := int(binary.LittleEndian.Uint32(data[:4]))
	if len(data) < 4+metaLen {
		return env, nil, fmt.Errorf("%w: envelope length exceeds data", vortex.ErrInvalidData)
	}
	if err := cbor.Unmarshal(data[4:4+metaLen], &env); err != nil {
		return env, nil, fmt.Errorf("%w: %w", vortex.ErrInvalidData, err)
	}
	return env, data[4+metaLen:], nil
}
