package udt

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xuperchain/xssri/kernel/def"
)

func hash32(b byte) Byte32 {
	h := Byte32{}
	for i := range h {
		h[i] = b
	}
	return h
}

func TestByte32Vec(t *testing.T) {
	raw := EncodeByte32Vec(nil)
	require.Equal(t, []byte{0, 0, 0, 0}, raw)

	hashes := []Byte32{hash32(1), hash32(2)}
	raw = EncodeByte32Vec(hashes)
	require.Len(t, raw, 4+64)
	require.Equal(t, byte(2), raw[0])

	got, err := DecodeByte32Vec(raw)
	require.NoError(t, err)
	require.Equal(t, hashes, got)

	_, err = DecodeByte32Vec(raw[:3])
	require.True(t, errors.Is(err, def.ErrLengthNotEnough))
	_, err = DecodeByte32Vec(raw[:len(raw)-1])
	require.True(t, errors.Is(err, def.ErrEncoding))
}

func TestPausableDataLayout(t *testing.T) {
	paused := hash32(0xaa)
	data := &PausableData{PauseList: []Byte32{paused}}
	raw := data.Encode()
	// total, two offsets, fixvec of one hash, no next hash
	want := "30000000" + "0c000000" + "30000000" + "01000000" + hex.EncodeToString(paused[:])
	require.Equal(t, want, hex.EncodeToString(raw))

	next := hash32(0xbb)
	data.NextTypeHash = &next
	raw = data.Encode()
	require.Len(t, raw, 12+4+32+32)

	got, err := DecodePausableData(raw)
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestDecodePausableDataEmpty(t *testing.T) {
	got, err := DecodePausableData((&PausableData{}).Encode())
	require.NoError(t, err)
	require.Empty(t, got.PauseList)
	require.Nil(t, got.NextTypeHash)
}

func TestDecodePausableDataExtraField(t *testing.T) {
	next := hash32(3)
	data := &PausableData{PauseList: []Byte32{hash32(1)}, NextTypeHash: &next}
	raw := data.Encode()

	// rebuild with a third field appended
	body := raw[12:]
	ext := make([]byte, 16)
	total := 16 + len(body) + 2
	putU32(ext[0:], uint32(total))
	putU32(ext[4:], 16)
	putU32(ext[8:], uint32(16+4+32))
	putU32(ext[12:], uint32(16+len(body)))
	ext = append(ext, body...)
	ext = append(ext, 0xee, 0xff)

	got, err := DecodePausableData(ext)
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestDecodePausableDataInvalid(t *testing.T) {
	next := hash32(3)
	raw := (&PausableData{PauseList: []Byte32{hash32(1)}, NextTypeHash: &next}).Encode()

	cases := map[string][]byte{
		"short header": raw[:2],
		"total size":   raw[:len(raw)-1],
		"only total":   {4, 0, 0, 0},
	}
	for name, c := range cases {
		_, err := DecodePausableData(c)
		require.Error(t, err, name)
	}

	bad := append([]byte{}, raw...)
	putU32(bad[4:], 13)
	_, err := DecodePausableData(bad)
	require.True(t, errors.Is(err, def.ErrEncoding))

	bad = append([]byte{}, raw...)
	putU32(bad[8:], 2)
	_, err = DecodePausableData(bad)
	require.True(t, errors.Is(err, def.ErrEncoding))

	// next type hash of 31 bytes
	bad = append([]byte{}, raw[:len(raw)-1]...)
	putU32(bad[0:], uint32(len(bad)))
	_, err = DecodePausableData(bad)
	require.True(t, errors.Is(err, def.ErrEncoding))
}

func putU32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}
