// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package pipeline

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/DataDog/zstd"
	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"

	vortex "github.com/vortexmesh/vortex"
)

// Algorithm names a compress layer's codec. Unlike the nonary hybrid
// dispatcher, these are general-purpose streaming formats chosen
// explicitly by the caller rather than picked adaptively.
type Algorithm string

const (
	AlgorithmZstd   Algorithm = "zstd"
	AlgorithmLZ4    Algorithm = "lz4"
	AlgorithmSnap   Algorithm = "snap"
	AlgorithmBrotli Algorithm = "brotli"
	AlgorithmGzip   Algorithm = "gzip"
)

// compressWith runs data through the named algorithm at the given level.
func compressWith(algorithm Algorithm, level int, data []byte) ([]byte, error) {
	switch algorithm {
	case AlgorithmZstd:
		l := level
		if l <= 0 {
			l = 3
		}
		return zstd.CompressLevel(nil, data, l)

	case AlgorithmLZ4:
		var buf bytes.Buffer
		w := lz4.NewWriter(&buf)
		if err := w.Apply(lz4.CompressionLevelOption(lz4.CompressionLevel(clamp(level, 0, 9)))); err != nil {
			return nil, err
		}
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil

	case AlgorithmSnap:
		return snappy.Encode(nil, data), nil

	case AlgorithmBrotli:
		var buf bytes.Buffer
		w := brotli.NewWriterLevel(&buf, clamp(level, 0, 11))
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil

	case AlgorithmGzip:
		var buf bytes.Buffer
		w, err := gzip.NewWriterLevel(&buf, clamp(level, gzip.NoCompression, gzip.BestCompression))
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil

	default:
		return nil, fmt.Errorf("%w: unknown compression algorithm %q", vortex.ErrInvalidData, algorithm)
	}
}

// decompressWith reverses compressWith.
func decompressWith(algorithm Algorithm, data []byte) ([]byte, error) {
	switch algorithm {
	case AlgorithmZstd:
		return zstd.Decompress(nil, data)

	case AlgorithmLZ4:
		r := lz4.NewReader(bytes.NewReader(data))
		return io.ReadAll(r)

	case AlgorithmSnap:
		return snappy.Decode(nil, data)

	case AlgorithmBrotli:
		r := brotli.NewReader(bytes.NewReader(data))
		return io.ReadAll(r)

	case AlgorithmGzip:
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)

	default:
		return nil, fmt.Errorf("%w: unknown compression algorithm %q", vortex.ErrInvalidData, algorithm)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
