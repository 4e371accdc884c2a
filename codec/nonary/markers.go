// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package nonary implements the base-9 rank encoding codec and the hybrid
// compression dispatcher built on top of it.
package nonary

const (
	// MarkerRaw prefixes a block stored verbatim, with no transform.
	MarkerRaw byte = 0
	// MarkerNonary prefixes a block encoded with the symbol-table/base-9
	// codec in this package.
	MarkerNonary byte = 1
	// MarkerZstd prefixes a block compressed with zstd.
	MarkerZstd byte = 2
	// MarkerSegmented prefixes a block split into independently
	// compressed segments.
	MarkerSegmented byte = 3
)

// hybridMinSize is the smallest input VortexCompress will bother trying to
// shrink; anything under it goes out raw, since the per-block overhead of
// either transform outweighs any possible saving.
const hybridMinSize = 64

// SegmentSize is both the threshold above which VortexCompress switches to
// the segmented form and the size of each resulting segment.
const SegmentSize = 64 * 1024

// zstdWinMargin is how much smaller than the input a zstd attempt must be,
// expressed as a fraction retained (0.9 means zstd must beat the input by
// at least 10%), before it's preferred over the nonary codec.
const zstdWinMargin = 0.9
