// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package channel

import "errors"

// ErrVaultMiss is returned by a Vault implementation's Get when id is
// absent.
var ErrVaultMiss = errors.New("vortex: vault has no entry for id")
