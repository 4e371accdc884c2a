// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package nonary

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"

	vortex "github.com/vortexmesh/vortex"
)

// VortexCompress picks the best available transform for data: anything
// under hybridMinSize goes out raw; anything over SegmentSize is split
// into independently compressed segments; otherwise zstd is tried first
// and kept if it beats the input by at least 10%, falling back to the
// nonary codec (which itself falls back to raw if it can't shrink the
// input either).
func VortexCompress(data []byte) []byte {
	out, _ := VortexCompressContext(context.Background(), data)
	return out
}

// VortexCompressContext is VortexCompress with cancellation at segment
// boundaries: segments of an over-threshold payload are compressed as
// independent concurrent tasks, a cancelled ctx stops further segments
// from starting, and a cancelled call returns ctx.Err() with no partial
// output. Sub-segment inputs are never interrupted mid-transform.
func VortexCompressContext(ctx context.Context, data []byte) ([]byte, error) {
	if len(data) < hybridMinSize {
		out := make([]byte, 0, len(data)+1)
		out = append(out, MarkerRaw)
		return append(out, data...), nil
	}
	if len(data) > SegmentSize {
		return compressSegmented(ctx, data)
	}

	zstdOut := zstdCompress(data)
	if len(zstdOut)+1 <= int(float64(len(data))*zstdWinMargin) {
		out := make([]byte, 0, len(zstdOut)+1)
		out = append(out, MarkerZstd)
		return append(out, zstdOut...), nil
	}
	return Encode(data), nil
}

// VortexDecompress reverses VortexCompress.
func VortexDecompress(data []byte) ([]byte, error) {
	return VortexDecompressContext(context.Background(), data)
}

// VortexDecompressContext is VortexDecompress with cancellation at
// segment boundaries for the segmented form.
func VortexDecompressContext(ctx context.Context, data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", vortex.ErrInvalidData)
	}
	switch data[0] {
	case MarkerRaw, MarkerNonary:
		return Decode(data)
	case MarkerZstd:
		return zstdDecompress(data[1:])
	case MarkerSegmented:
		return decompressSegmented(ctx, data[1:])
	default:
		return nil, fmt.Errorf("%w: unknown dispatcher marker %d", vortex.ErrInvalidData, data[0])
	}
}

// compressSegmented splits data into SegmentSize chunks and compresses
// each on its own task; segments share no state, so the only
// synchronization is waiting for them all.
func compressSegmented(ctx context.Context, data []byte) ([]byte, error) {
	count := (len(data) + SegmentSize - 1) / SegmentSize
	segments := make([][]byte, count)

	var wg sync.WaitGroup
	for i := 0; i < count; i++ {
		start := i * SegmentSize
		end := start + SegmentSize
		if end > len(data) {
			end = len(data)
		}
		wg.Add(1)
		go func(i int, chunk []byte) {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			segments[i] = VortexCompress(chunk)
		}(i, data[start:end])
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := []byte{MarkerSegmented}
	var countBuf [4]byte
	binary.LittleEndian.PutUint32(countBuf[:], uint32(count))
	out = append(out, countBuf[:]...)
	for _, seg := range segments {
		var lenBuf [4]byte
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(seg)))
		out = append(out, lenBuf[:]...)
		out = append(out, seg...)
	}
	return out, nil
}

func decompressSegmented(ctx context.Context, body []byte) ([]byte, error) {
	if len(body) < 4 {
		return nil, fmt.Errorf("%w: segmented header truncated", vortex.ErrInvalidData)
	}
	count := binary.LittleEndian.Uint32(body[:4])
	offset := 4

	var out []byte
	for i := 0; i < int(count); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if offset+4 > len(body) {
			return nil, fmt.Errorf("%w: segment length truncated", vortex.ErrInvalidData)
		}
		segLen := int(binary.LittleEndian.Uint32(body[offset : offset+4]))
		offset += 4
		if segLen < 0 || offset+segLen > len(body) {
			return nil, fmt.Errorf("%w: segment body truncated", vortex.ErrInvalidData)
		}
		decoded, err := VortexDecompress(body[offset : offset+segLen])
		if err != nil {
			return nil, err
		}
		out = append(out, decoded...)
		offset += segLen
	}
	return out, nil
}
