// Copyright (C) 2025, Vortexmesh Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package nonary

import "sort"

// SymbolTable maps every byte value to a rank, 0 being the most frequent
// byte observed in the data the table was built from. Table[rank] is the
// byte value holding that rank; rank is the inverse lookup.
type SymbolTable struct {
	Table [256]byte
	rank  [256]byte
}

// BuildSymbolTable counts the frequency of every byte in data and assigns
// ranks by descending frequency, breaking ties by ascending byte value so
// the table is deterministic for identical input.
func BuildSymbolTable(data []byte) *SymbolTable {
	var counts [256]int
	for _, b := range data {
		counts[b]++
	}

	order := make([]byte, 256)
	for i := range order {
		order[i] = byte(i)
	}
	sort.Slice(order, func(i, j int) bool {
		ci, cj := counts[order[i]], counts[order[j]]
		if ci != cj {
			return ci > cj
		}
		return order[i] < order[j]
	})

	st := &SymbolTable{}
	for rank, b := range order {
		st.Table[rank] = b
		st.rank[b] = byte(rank)
	}
	return st
}

// symbolTableFromBytes reconstructs a SymbolTable from its serialized
// Table, rebuilding the inverse rank lookup.
func symbolTableFromBytes(raw []byte) *SymbolTable {
	st := &SymbolTable{}
	copy(st.Table[:], raw)
	for rank, b := range st.Table {
		st.rank[b] = byte(rank)
	}
	return st
}

// Rank returns the rank assigned to byte b.
func (s *SymbolTable) Rank(b byte) byte { return s.rank[b] }

// Byte returns the byte value holding rank.
func (s *SymbolTable) Byte(rank byte) byte { return s.Table[rank] }
