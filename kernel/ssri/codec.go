package ssri

import (
	"encoding/binary"

	hex "github.com/tmthrgd/go-hex"

	"github.com/xuperchain/xssri/kernel/def"
)

// EncodeU64Vector encodes vals as [u32 LE count][count x u64 LE]
func EncodeU64Vector(vals []uint64) []byte {
	out := make([]byte, def.VectorHeaderSize+len(vals)*def.MethodPathSize)
	binary.LittleEndian.PutUint32(out, uint32(len(vals)))
	for i, v := range vals {
		binary.LittleEndian.PutUint64(out[def.VectorHeaderSize+i*def.MethodPathSize:], v)
	}
	return out
}

// DecodeU64Vector is the inverse of EncodeU64Vector. The count prefix must
// match the payload length.
func DecodeU64Vector(raw []byte) ([]uint64, error) {
	if len(raw) < def.VectorHeaderSize {
		return nil, def.ErrLengthNotEnough.More("u64 vector header")
	}
	count := binary.LittleEndian.Uint32(raw)
	body := raw[def.VectorHeaderSize:]
	if uint64(len(body)) != uint64(count)*def.MethodPathSize {
		return nil, def.ErrEncoding.More("u64 vector count %d with %d bytes", count, len(body))
	}

	vals := make([]uint64, count)
	for i := range vals {
		vals[i] = binary.LittleEndian.Uint64(body[i*def.MethodPathSize:])
	}
	return vals, nil
}

// DecodeHexArg decodes one wire argument
func DecodeHexArg(arg []byte) ([]byte, error) {
	out := make([]byte, hex.DecodedLen(len(arg)))
	if _, err := hex.Decode(out, arg); err != nil {
		return nil, err
	}
	return out, nil
}

// EncodeHexArg encodes raw bytes as a wire argument
func EncodeHexArg(raw []byte) []byte {
	out := make([]byte, hex.EncodedLen(len(raw)))
	hex.Encode(out, raw)
	return out
}

// decodeU64Arg decodes a hex argument holding exactly one u64 LE
func decodeU64Arg(arg []byte) (uint64, error) {
	raw, err := DecodeHexArg(arg)
	if err != nil {
		return 0, def.ErrInvalidMethodArgs.More("hex:%v", err)
	}
	if len(raw) != 8 {
		return 0, def.ErrInvalidMethodArgs.More("u64 argument of %d bytes", len(raw))
	}
	return binary.LittleEndian.Uint64(raw), nil
}

// NewCall builds the wire form of a call to name
func NewCall(name string, args ...[]byte) [][]byte {
	return NewCallByPath(MethodPath(name), args...)
}

// NewCallByPath builds the wire form of a call to a fingerprint
func NewCallByPath(path uint64, args ...[]byte) [][]byte {
	raw := make([]byte, def.MethodPathSize)
	binary.LittleEndian.PutUint64(raw, path)

	argv := make([][]byte, 0, len(args)+1)
	argv = append(argv, EncodeHexArg(raw))
	for _, arg := range args {
		argv = append(argv, EncodeHexArg(arg))
	}
	return argv
}

// U64Arg is the raw little-endian form of v, to be passed to NewCall
func U64Arg(v uint64) []byte {
	raw := make([]byte, 8)
	binary.LittleEndian.PutUint64(raw, v)
	return raw
}
