package cell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xuperchain/xssri/kernel/def"
	"github.com/xuperchain/xssri/lib/storage/kvdb"
)

func newTestKVLoader(t *testing.T) *KVLoader {
	db, err := kvdb.CreateKVInstance(&kvdb.KVParameter{
		KVEngineType: kvdb.KVEngineTypeLDB,
		StorageType:  kvdb.StorageTypeMemory,
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	l, err := NewKVLoader(db, 4)
	require.NoError(t, err)
	return l
}

func TestKVLoaderAppendAndLoad(t *testing.T) {
	l := newTestKVLoader(t)

	idx, err := l.AppendCell(SourceCellDep, &Cell{Data: []byte("no type")})
	require.NoError(t, err)
	require.Equal(t, uint32(0), idx)
	idx, err = l.AppendCell(SourceCellDep, &Cell{TypeHash: typeHash(7), Data: []byte("typed")})
	require.NoError(t, err)
	require.Equal(t, uint32(1), idx)

	c, err := l.LoadCell(0, SourceCellDep)
	require.NoError(t, err)
	require.False(t, c.HasType())
	require.Equal(t, []byte("no type"), c.Data)

	c, err = l.LoadCell(1, SourceCellDep)
	require.NoError(t, err)
	require.Equal(t, typeHash(7), c.TypeHash)

	_, err = l.LoadCell(2, SourceCellDep)
	require.True(t, errors.Is(err, def.ErrIndexOutOfBound))
	_, err = l.LoadCell(0, SourceInput)
	require.True(t, errors.Is(err, def.ErrIndexOutOfBound))

	index, found, err := FindByTypeHash(l, SourceCellDep, typeHash(7), 0)
	require.NoError(t, err)
	require.Equal(t, uint32(1), index)
	require.Equal(t, []byte("typed"), found.Data)
}

func TestKVLoaderPutCell(t *testing.T) {
	l := newTestKVLoader(t)

	require.NoError(t, l.PutCell(0, SourceCellDep, &Cell{Data: []byte("v1")}))
	// warm the cache before overwrite
	_, err := l.LoadCell(0, SourceCellDep)
	require.NoError(t, err)
	require.NoError(t, l.PutCell(0, SourceCellDep, &Cell{Data: []byte("v2")}))

	c, err := l.LoadCell(0, SourceCellDep)
	require.NoError(t, err)
	require.Equal(t, []byte("v2"), c.Data)

	count, err := l.Count(SourceCellDep)
	require.NoError(t, err)
	require.Equal(t, uint32(1), count)

	err = l.PutCell(5, SourceCellDep, &Cell{})
	require.True(t, errors.Is(err, def.ErrIndexOutOfBound))

	err = l.PutCell(1, SourceCellDep, &Cell{TypeHash: []byte{1, 2}})
	require.True(t, errors.Is(err, def.ErrLengthNotEnough))
}

func TestDecodeCell(t *testing.T) {
	_, err := decodeCell(nil)
	require.True(t, errors.Is(err, def.ErrEncoding))
	_, err = decodeCell([]byte{1, 2, 3})
	require.True(t, errors.Is(err, def.ErrLengthNotEnough))
	_, err = decodeCell([]byte{9})
	require.True(t, errors.Is(err, def.ErrEncoding))
}

func TestKVLoaderRange(t *testing.T) {
	l := newTestKVLoader(t)
	for i := 0; i < 3; i++ {
		_, err := l.AppendCell(SourceCellDep, &Cell{Data: []byte{byte(i)}})
		require.NoError(t, err)
	}
	_, err := l.AppendCell(SourceInput, &Cell{Data: []byte("input")})
	require.NoError(t, err)

	var indexes []uint32
	err = l.Range(SourceCellDep, func(index uint32, c *Cell) bool {
		require.Equal(t, []byte{byte(index)}, c.Data)
		indexes = append(indexes, index)
		return true
	})
	require.NoError(t, err)
	require.Equal(t, []uint32{0, 1, 2}, indexes)

	visited := 0
	err = l.Range(SourceCellDep, func(index uint32, c *Cell) bool {
		visited++
		return false
	})
	require.NoError(t, err)
	require.Equal(t, 1, visited)
}
