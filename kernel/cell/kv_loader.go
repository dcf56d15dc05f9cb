package cell

import (
	"encoding/binary"
	"fmt"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/xuperchain/xssri/kernel/def"
	"github.com/xuperchain/xssri/lib/storage/kvdb"
	"github.com/xuperchain/xssri/lib/storage/kvdb/leveldb"
)

const (
	cellKeyPrefix  = "cell/"
	countKeyPrefix = "cnt/"

	// DefaultCacheSize is the number of decoded cells kept by a KVLoader
	DefaultCacheSize = 1024
)

// KVLoader reads cells persisted in a kvdb.Database.
// Cells of one source are stored contiguously from index 0.
type KVLoader struct {
	db    kvdb.Database
	cache *lru.Cache
}

func NewKVLoader(db kvdb.Database, cacheSize int) (*KVLoader, error) {
	if db == nil {
		return nil, fmt.Errorf("new kv loader failed because db is nil")
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "new cell cache failed")
	}

	return &KVLoader{db: db, cache: cache}, nil
}

func (l *KVLoader) LoadCell(index uint32, source Source) (*Cell, error) {
	key := cellKey(source, index)
	if c, ok := l.cache.Get(string(key)); ok {
		return c.(*Cell), nil
	}

	raw, err := l.db.Get(key)
	if leveldb.IsNotFound(err) {
		return nil, def.ErrIndexOutOfBound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load cell %d of %s", index, source)
	}
	c, err := decodeCell(raw)
	if err != nil {
		return nil, err
	}

	l.cache.Add(string(key), c)
	return c, nil
}

// Count returns the number of cells stored for source
func (l *KVLoader) Count(source Source) (uint32, error) {
	raw, err := l.db.Get(countKey(source))
	if leveldb.IsNotFound(err) {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrapf(err, "load cell count of %s", source)
	}
	if len(raw) != 4 {
		return 0, def.ErrEncoding.More("cell count of %s", source)
	}
	return binary.BigEndian.Uint32(raw), nil
}

// PutCell overwrites the cell at index, or appends it when index equals Count
func (l *KVLoader) PutCell(index uint32, source Source, c *Cell) error {
	if c == nil {
		return fmt.Errorf("put cell failed because cell is nil")
	}
	if len(c.TypeHash) != 0 && !c.HasType() {
		return def.ErrLengthNotEnough.More("type hash size %d", len(c.TypeHash))
	}

	count, err := l.Count(source)
	if err != nil {
		return err
	}
	if index > count {
		return def.ErrIndexOutOfBound.More("put index %d beyond count %d", index, count)
	}

	batch := l.db.NewBatch()
	batch.Put(cellKey(source, index), encodeCell(c))
	if index == count {
		cnt := make([]byte, 4)
		binary.BigEndian.PutUint32(cnt, count+1)
		batch.Put(countKey(source), cnt)
	}
	if err := batch.Write(); err != nil {
		return errors.Wrapf(err, "put cell %d of %s", index, source)
	}

	l.cache.Remove(string(cellKey(source, index)))
	return nil
}

// AppendCell stores c after the last cell of source and returns its index
func (l *KVLoader) AppendCell(source Source, c *Cell) (uint32, error) {
	count, err := l.Count(source)
	if err != nil {
		return 0, err
	}
	return count, l.PutCell(count, source, c)
}

// Range calls fn with the cells of source in index order until fn returns false
func (l *KVLoader) Range(source Source, fn func(index uint32, c *Cell) bool) error {
	prefix := cellKey(source, 0)[:len(cellKeyPrefix)+8]
	iter := l.db.NewIteratorWithPrefix(prefix)
	defer iter.Release()

	for iter.Next() {
		key := iter.Key()
		if len(key) != len(prefix)+4 {
			return def.ErrEncoding.More("cell key of %d bytes", len(key))
		}
		c, err := decodeCell(iter.Value())
		if err != nil {
			return err
		}
		if !fn(binary.BigEndian.Uint32(key[len(prefix):]), c) {
			break
		}
	}
	return errors.Wrapf(iter.Error(), "range cells of %s", source)
}

func cellKey(source Source, index uint32) []byte {
	key := make([]byte, len(cellKeyPrefix)+12)
	n := copy(key, cellKeyPrefix)
	binary.BigEndian.PutUint64(key[n:], uint64(source))
	binary.BigEndian.PutUint32(key[n+8:], index)
	return key
}

func countKey(source Source) []byte {
	key := make([]byte, len(countKeyPrefix)+8)
	n := copy(key, countKeyPrefix)
	binary.BigEndian.PutUint64(key[n:], uint64(source))
	return key
}

// stored as [has type flag][type hash if flagged][data]
func encodeCell(c *Cell) []byte {
	if !c.HasType() {
		return append([]byte{0}, c.Data...)
	}
	out := make([]byte, 0, 1+def.Byte32Size+len(c.Data))
	out = append(out, 1)
	out = append(out, c.TypeHash...)
	return append(out, c.Data...)
}

func decodeCell(raw []byte) (*Cell, error) {
	if len(raw) == 0 {
		return nil, def.ErrEncoding.More("empty cell value")
	}
	switch raw[0] {
	case 0:
		return &Cell{Data: append([]byte{}, raw[1:]...)}, nil
	case 1:
		if len(raw) < 1+def.Byte32Size {
			return nil, def.ErrLengthNotEnough.More("cell type hash")
		}
		return &Cell{
			TypeHash: append([]byte{}, raw[1:1+def.Byte32Size]...),
			Data:     append([]byte{}, raw[1+def.Byte32Size:]...),
		}, nil
	default:
		return nil, def.ErrEncoding.More("cell flag %d", raw[0])
	}
}
