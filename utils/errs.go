// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Errs collects zero or more errors observed while validating a
// multi-part configuration (for example, every layer of a pipeline) so
// that a caller sees all violations at once instead of only the first.
type Errs struct {
	mu   sync.Mutex
	errs []error
}

// Add appends err to the collection. A nil err is ignored.
func (e *Errs) Add(err error) {
	if err == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.errs = append(e.errs, err)
}

// Errored reports whether any error has been added.
func (e *Errs) Errored() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.errs) > 0
}

// Len returns the number of errors added.
func (e *Errs) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.errs)
}

// Err returns nil if nothing was added, the single error unchanged if
// exactly one was added, or a combined error describing all of them.
func (e *Errs) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch len(e.errs) {
	case 0:
		return nil
	case 1:
		return e.errs[0]
	default:
		return errors.New(e.string())
	}
}

// String renders every collected error, one per line.
func (e *Errs) String() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.string()
}

func (e *Errs) string() string {
	if len(e.errs) == 0 {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d error", len(e.errs))
	if len(e.errs) != 1 {
		sb.WriteString("s")
	}
	sb.WriteString(" occurred:")
	for _, err := range e.errs {
		sb.WriteString("\n\t* ")
		sb.WriteString(err.Error())
	}
	return sb.String()
}
