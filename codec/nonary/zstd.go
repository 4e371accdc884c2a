// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package nonary

import (
	"fmt"

	"github.com/klauspost/compress/zstd"

	vortex "github.com/vortexmesh/vortex"
)

var zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
var zstdDecoder, _ = zstd.NewReader(nil)

func zstdCompress(data []byte) []byte {
	return zstdEncoder.EncodeAll(data, nil)
}

// ZstdCompress exposes the package's zstd encoder for callers outside the
// hybrid dispatcher, such as the entropy-directed adaptive compressor.
func ZstdCompress(data []byte) []byte { return zstdCompress(data) }

// ZstdDecompress exposes the package's zstd decoder for callers outside
// the hybrid dispatcher.
func ZstdDecompress(data []byte) ([]byte, error) { return zstdDecompress(data) }

func zstdDecompress(data []byte) ([]byte, error) {
	out, err := zstdDecoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", vortex.ErrInvalidData, err)
	}
	return out, nil
}
