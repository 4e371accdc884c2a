// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package pipeline

import (
	"fmt"

	vortex "github.com/vortexmesh/vortex"
	"github.com/vortexmesh/vortex/utils"
)

// Validate checks config for duplicate layer ids and out-of-range
// compression levels, collecting every violation rather than stopping at
// the first.
func Validate(config Config) error {
	var errs utils.Errs

	seen := make(map[string]struct{}, len(config.Layers))
	for _, layer := range config.Layers {
		if _, ok := seen[layer.ID]; ok {
			errs.Add(fmt.Errorf("%w: duplicate layer id %q", vortex.ErrInvalidData, layer.ID))
			continue
		}
		seen[layer.ID] = struct{}{}
	}

	for _, layer := range config.Layers {
		if layer.Kind != KindCompress {
			continue
		}
		if layer.Level < 0 || layer.Level > 22 {
			errs.Add(fmt.Errorf("%w: invalid compression level %d (must be 0-22)", vortex.ErrInvalidData, layer.Level))
		}
	}
	return errs.Err()
}
