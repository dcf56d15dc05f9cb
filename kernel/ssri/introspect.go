package ssri

import (
	"bytes"

	"github.com/xuperchain/xssri/kernel/def"
)

func (r *Registry) version() []byte {
	return []byte{Version}
}

// getMethods slices the table by entry units:
// [min(4+offset*8, len), min(4+(offset+limit)*8, len)), a zero limit reads to the end.
func (r *Registry) getMethods(offset, limit uint64) []byte {
	start := clampEntry(offset, len(r.table))
	end := len(r.table)
	if limit != 0 {
		if sum := offset + limit; sum >= offset {
			end = clampEntry(sum, len(r.table))
		}
	}
	return append([]byte{}, r.table[start:end]...)
}

// clampEntry is min(4+units*8, tableLen) without overflowing
func clampEntry(units uint64, tableLen int) int {
	entries := uint64(tableLen-def.VectorHeaderSize) / def.MethodPathSize
	if units >= entries {
		return tableLen
	}
	return def.VectorHeaderSize + int(units)*def.MethodPathSize
}

// hasMethods answers one byte per queried fingerprint. The query count
// prefix is skipped, not checked.
func (r *Registry) hasMethods(query []byte) ([]byte, error) {
	if len(query) < def.VectorHeaderSize {
		return nil, def.ErrInvalidMethodArgs.More("has_methods query of %d bytes", len(query))
	}
	body := query[def.VectorHeaderSize:]
	if len(body)%def.MethodPathSize != 0 {
		return nil, def.ErrInvalidMethodArgs.More("has_methods query body of %d bytes", len(body))
	}

	entries := r.table[def.VectorHeaderSize:]
	out := make([]byte, 0, len(body)/def.MethodPathSize)
	for q := 0; q < len(body); q += def.MethodPathSize {
		path := body[q : q+def.MethodPathSize]
		var found byte
		for e := 0; e < len(entries); e += def.MethodPathSize {
			if bytes.Equal(entries[e:e+def.MethodPathSize], path) {
				found = 1
				break
			}
		}
		out = append(out, found)
	}
	return out, nil
}
