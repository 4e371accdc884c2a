// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package pipeline

// EstimatedOperation is one layer's contribution to Estimate's
// projection.
type EstimatedOperation struct {
	Operation          string
	Ratio              float64
	EstimatedSizeAfter int
}

// Estimate projects config's effect on a payload of originalSize bytes,
// using fixed per-algorithm ratios rather than actually running the
// layers. It's a planning aid, not a guarantee.
func Estimate(originalSize int, config Config) (estimatedFinalSize int, operations []EstimatedOperation) {
	size := float64(originalSize)

	for _, layer := range config.Layers {
		if !layer.Enabled {
			continue
		}
		ratio, name := estimateLayer(layer)
		size *= ratio
		operations = append(operations, EstimatedOperation{
			Operation:          name,
			Ratio:              ratio,
			EstimatedSizeAfter: int(size),
		})
	}

	return int(size), operations
}

func estimateLayer(layer Layer) (ratio float64, name string) {
	switch layer.Kind {
	case KindCompress:
		switch layer.Algorithm {
		case AlgorithmZstd:
			ratio = 0.4
		case AlgorithmLZ4:
			ratio = 0.6
		case AlgorithmSnap:
			ratio = 0.65
		case AlgorithmBrotli:
			ratio = 0.35
		case AlgorithmGzip:
			ratio = 0.45
		default:
			ratio = 1.0
		}
		return ratio, "Compress (" + string(layer.Algorithm) + ")"
	case KindEncryptPass:
		return 1.05, "Password Encryption"
	case KindEncryptHybrid:
		return 1.1, "PQ Encryption"
	case KindHash:
		return 1.0, "Hash"
	case KindBase64Encode:
		return 1.33, "Base64 Encode"
	default:
		return 1.0, string(layer.Kind)
	}
}
