// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package hybrid

import (
	"encoding/binary"
	"fmt"

	vortex "github.com/vortexmesh/vortex"
)

// appendSection appends a u32-little-endian length prefix followed by
// section to dst.
func appendSection(dst []byte, section []byte) []byte {
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(section)))
	dst = append(dst, lenBuf[:]...)
	dst = append(dst, section...)
	return dst
}

// readSection reads one length-prefixed section from buf starting at
// offset, returning the section bytes and the offset just past it.
func readSection(buf []byte, offset int) (section []byte, next int, err error) {
	if offset+4 > len(buf) {
		return nil, 0, fmt.Errorf("%w: truncated section length", vortex.ErrInvalidData)
	}
	n := int(binary.LittleEndian.Uint32(buf[offset : offset+4]))
	offset += 4
	if n < 0 || offset+n > len(buf) {
		return nil, 0, fmt.Errorf("%w: truncated section body", vortex.ErrInvalidData)
	}
	return buf[offset : offset+n], offset + n, nil
}
