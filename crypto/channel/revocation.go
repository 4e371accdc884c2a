// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package channel

import (
	"encoding/hex"
	"sync"
	"time"
)

// RevocationStaleness is the default window after which a revocation
// list is considered due for refresh. Staleness is observable but never
// fatal: IsStale only tells the caller a refresh is due.
const RevocationStaleness = 5 * time.Minute

// RevocationList is an additive-only set of revoked credential ids. Its
// entries are never removed.
type RevocationList struct {
	mu            sync.RWMutex
	revoked       map[string]struct{}
	lastRefreshed time.Time
}

// NewRevocationList creates an empty revocation list, considered fresh
// as of now.
func NewRevocationList() *RevocationList {
	return &RevocationList{
		revoked:       make(map[string]struct{}),
		lastRefreshed: time.Now(),
	}
}

// Revoke adds credentialID to the list. Revoking an already-revoked id is
// a no-op.
func (r *RevocationList) Revoke(credentialID []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[hex.EncodeToString(credentialID)] = struct{}{}
}

// IsRevoked reports whether credentialID has been revoked.
func (r *RevocationList) IsRevoked(credentialID []byte) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.revoked[hex.EncodeToString(credentialID)]
	return ok
}

// Refresh marks the list as freshly synchronized with the network as of
// now, typically called by the host after pulling an updated list.
func (r *RevocationList) Refresh() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastRefreshed = time.Now()
}

// IsStale reports whether more than RevocationStaleness has elapsed
// since the last Refresh.
func (r *RevocationList) IsStale() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return time.Since(r.lastRefreshed) >= RevocationStaleness
}
