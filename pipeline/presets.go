// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package pipeline

// Presets returns the library's five built-in configurations, covering
// the common points on the speed/size/security tradeoff curve.
func Presets() []Config {
	return []Config{
		{
			ID:          "preset-fast-compress",
			Name:        "Fast Compression",
			Description: "LZ4 compression for speed",
			Layers: []Layer{
				{ID: "lz4-compress", Kind: KindCompress, Enabled: true, Order: 0, Algorithm: AlgorithmLZ4, Level: 1},
			},
		},
		{
			ID:          "preset-max-compress",
			Name:        "Maximum Compression",
			Description: "Zstd level 19 for best ratio",
			Layers: []Layer{
				{ID: "zstd-max", Kind: KindCompress, Enabled: true, Order: 0, Algorithm: AlgorithmZstd, Level: 19},
			},
		},
		{
			ID:          "preset-password-encrypt",
			Name:        "Password Protected",
			Description: "Compress + password encryption",
			Layers: []Layer{
				{ID: "zstd-compress", Kind: KindCompress, Enabled: true, Order: 0, Algorithm: AlgorithmZstd, Level: 3},
				{ID: "password-encrypt", Kind: KindEncryptPass, Enabled: true, Order: 1},
			},
		},
		{
			ID:          "preset-pq-secure",
			Name:        "Post-Quantum Secure",
			Description: "ML-KEM-1024 + X25519 hybrid encryption",
			Layers: []Layer{
				{ID: "zstd-compress", Kind: KindCompress, Enabled: true, Order: 0, Algorithm: AlgorithmZstd, Level: 3},
				{ID: "pq-encrypt", Kind: KindEncryptHybrid, Enabled: true, Order: 1},
			},
		},
		{
			ID:          "preset-max-security",
			Name:        "Maximum Security",
			Description: "Triple layer: compress + password + PQ encryption",
			Layers: []Layer{
				{ID: "zstd-compress", Kind: KindCompress, Enabled: true, Order: 0, Algorithm: AlgorithmZstd, Level: 6},
				{ID: "password-layer", Kind: KindEncryptPass, Enabled: true, Order: 1},
				{ID: "pq-layer", Kind: KindEncryptHybrid, Enabled: true, Order: 2},
				{ID: "base64-layer", Kind: KindBase64Encode, Enabled: true, Order: 3},
			},
		},
	}
}
