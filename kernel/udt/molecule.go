package udt

import (
	"encoding/binary"

	"github.com/xuperchain/xssri/kernel/def"
)

const (
	moleculeNumberSize = 4
	// total size + one offset per field
	pausableHeaderSize = moleculeNumberSize * 3
)

// EncodeByte32Vec encodes hashes as a molecule fixvec: [u32 LE count][32 x count]
func EncodeByte32Vec(hashes []Byte32) []byte {
	out := make([]byte, moleculeNumberSize, moleculeNumberSize+len(hashes)*def.Byte32Size)
	binary.LittleEndian.PutUint32(out, uint32(len(hashes)))
	for _, h := range hashes {
		out = append(out, h[:]...)
	}
	return out
}

// DecodeByte32Vec is the inverse of EncodeByte32Vec
func DecodeByte32Vec(raw []byte) ([]Byte32, error) {
	if len(raw) < moleculeNumberSize {
		return nil, def.ErrLengthNotEnough.More("byte32 vector header")
	}
	count := binary.LittleEndian.Uint32(raw)
	body := raw[moleculeNumberSize:]
	if uint64(len(body)) != uint64(count)*def.Byte32Size {
		return nil, def.ErrEncoding.More("byte32 vector count %d with %d bytes", count, len(body))
	}

	hashes := make([]Byte32, count)
	for i := range hashes {
		copy(hashes[i][:], body[i*def.Byte32Size:])
	}
	return hashes, nil
}

// Encode serializes p as the molecule table
// { pause_list: Byte32Vec, next_type_hash: Byte32Opt }
func (p *PausableData) Encode() []byte {
	list := EncodeByte32Vec(p.PauseList)
	var next []byte
	if p.NextTypeHash != nil {
		next = p.NextTypeHash[:]
	}

	total := pausableHeaderSize + len(list) + len(next)
	out := make([]byte, pausableHeaderSize, total)
	binary.LittleEndian.PutUint32(out[0:], uint32(total))
	binary.LittleEndian.PutUint32(out[4:], uint32(pausableHeaderSize))
	binary.LittleEndian.PutUint32(out[8:], uint32(pausableHeaderSize+len(list)))
	out = append(out, list...)
	return append(out, next...)
}

// DecodePausableData parses the molecule table written by Encode. Fields
// appended by newer writers are ignored.
func DecodePausableData(raw []byte) (*PausableData, error) {
	if len(raw) < moleculeNumberSize {
		return nil, def.ErrLengthNotEnough.More("pausable data header")
	}
	total := binary.LittleEndian.Uint32(raw)
	if uint64(total) != uint64(len(raw)) {
		return nil, def.ErrEncoding.More("pausable data total size %d with %d bytes", total, len(raw))
	}
	if len(raw) < pausableHeaderSize {
		return nil, def.ErrEncoding.More("pausable data of %d bytes", len(raw))
	}

	first := binary.LittleEndian.Uint32(raw[4:])
	if first%moleculeNumberSize != 0 || first < pausableHeaderSize || first > total {
		return nil, def.ErrEncoding.More("pausable data first offset %d", first)
	}
	fieldCount := int(first/moleculeNumberSize) - 1
	offsets := make([]uint32, fieldCount+1)
	for i := 0; i < fieldCount; i++ {
		offsets[i] = binary.LittleEndian.Uint32(raw[moleculeNumberSize*(i+1):])
	}
	offsets[fieldCount] = total
	for i := 0; i < fieldCount; i++ {
		if offsets[i] > offsets[i+1] {
			return nil, def.ErrEncoding.More("pausable data offset %d out of order", i)
		}
	}

	list, err := DecodeByte32Vec(raw[offsets[0]:offsets[1]])
	if err != nil {
		return nil, err
	}
	data := &PausableData{PauseList: list}

	next := raw[offsets[1]:offsets[2]]
	switch len(next) {
	case 0:
	case def.Byte32Size:
		h := Byte32{}
		copy(h[:], next)
		data.NextTypeHash = &h
	default:
		return nil, def.ErrEncoding.More("next type hash of %d bytes", len(next))
	}
	return data, nil
}
