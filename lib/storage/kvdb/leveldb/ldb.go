package leveldb

import (
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/xuperchain/xssri/lib/storage/kvdb"
)

const (
	defaultCache = 16
	defaultFds   = 16
)

// LDBDatabase define data structure of storage
type LDBDatabase struct {
	fn string
	db *leveldb.DB
}

func init() {
	kvdb.Register(kvdb.KVEngineTypeLDB, NewKVDBInstance)
}

// NewKVDBInstance opens a leveldb backed kvdb.Database
func NewKVDBInstance(param *kvdb.KVParameter) (kvdb.Database, error) {
	baseDB := new(LDBDatabase)
	if err := baseDB.Open(param); err != nil {
		return nil, err
	}
	return baseDB, nil
}

// Open opens an instance of LDB with parameters (ldb path and other options)
func (ldb *LDBDatabase) Open(param *kvdb.KVParameter) error {
	cache := param.MemCacheSize
	if cache < defaultCache {
		cache = defaultCache
	}
	fds := param.FileHandlersCacheSize
	if fds < defaultFds {
		fds = defaultFds
	}
	options := &opt.Options{
		OpenFilesCacheCapacity: fds,
		BlockCacheCapacity:     cache / 2 * opt.MiB,
		WriteBuffer:            cache / 4 * opt.MiB, // Two of these are used internally
		Filter:                 filter.NewBloomFilter(10),
	}

	var (
		db  *leveldb.DB
		err error
	)
	if param.StorageType == kvdb.StorageTypeMemory {
		db, err = leveldb.Open(storage.NewMemStorage(), options)
	} else {
		db, err = leveldb.OpenFile(param.DBPath, options)
		if _, corrupted := err.(*errors.ErrCorrupted); corrupted {
			db, err = leveldb.RecoverFile(param.DBPath, nil)
		}
	}
	// (Re)check for errors and abort if opening of the db failed
	if err != nil {
		return err
	}

	ldb.fn = param.DBPath
	ldb.db = db
	return nil
}

// Path returns the path to the database directory.
func (ldb *LDBDatabase) Path() string {
	return ldb.fn
}

// Put puts the given key / value to the queue
func (ldb *LDBDatabase) Put(key []byte, value []byte) error {
	return ldb.db.Put(key, value, nil)
}

// Get returns the given key if it's present, a missing key is leveldb.ErrNotFound
func (ldb *LDBDatabase) Get(key []byte) ([]byte, error) {
	return ldb.db.Get(key, nil)
}

// Has returns whether the given key exists
func (ldb *LDBDatabase) Has(key []byte) (bool, error) {
	return ldb.db.Has(key, nil)
}

// Delete deletes the key from the queue and database
func (ldb *LDBDatabase) Delete(key []byte) error {
	return ldb.db.Delete(key, nil)
}

// NewIteratorWithPrefix returns an iterator over keys starting with prefix
func (ldb *LDBDatabase) NewIteratorWithPrefix(prefix []byte) kvdb.Iterator {
	return ldb.db.NewIterator(util.BytesPrefix(prefix), nil)
}

// Close closes the database
func (ldb *LDBDatabase) Close() error {
	return ldb.db.Close()
}

// NewBatch returns a batch writing into ldb
func (ldb *LDBDatabase) NewBatch() kvdb.Batch {
	return &LDBBatch{db: ldb.db, b: new(leveldb.Batch)}
}

// IsNotFound reports whether err is the missing key error of leveldb
func IsNotFound(err error) bool {
	return err == leveldb.ErrNotFound
}

// LDBBatch define batch data structure
type LDBBatch struct {
	db   *leveldb.DB
	b    *leveldb.Batch
	size int
}

// Put put a key/value into batch
func (b *LDBBatch) Put(key, value []byte) error {
	b.b.Put(key, value)
	b.size += len(value)
	return nil
}

// Delete delete a key from batch
func (b *LDBBatch) Delete(key []byte) error {
	b.b.Delete(key)
	b.size += len(key)
	return nil
}

// Write commits the batch
func (b *LDBBatch) Write() error {
	return b.db.Write(b.b, nil)
}

// ValueSize returns the size of queued data
func (b *LDBBatch) ValueSize() int {
	return b.size
}

// Reset reset the batch
func (b *LDBBatch) Reset() {
	b.b.Reset()
	b.size = 0
}
