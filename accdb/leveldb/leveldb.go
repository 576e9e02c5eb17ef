// Package leveldb implements accdb.KeyValueStore on top of goleveldb, the
// on-disk store cmd/mtt uses for anything beyond throwaway scratch tries.
package leveldb

import (
	"github.com/jaiminpan/mt-trie/accdb"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

// Store wraps a goleveldb database as an accdb.KeyValueStore.
type Store struct {
	db *leveldb.DB
}

// Open opens (creating if necessary) a leveldb database at path.
func Open(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, &opt.Options{})
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Has(key []byte) (bool, error) {
	return s.db.Has(key, nil)
}

func (s *Store) Get(key []byte) ([]byte, error) {
	v, err := s.db.Get(key, nil)
	if err == errors.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Store) Put(key, value []byte) error {
	return s.db.Put(key, value, nil)
}

func (s *Store) Delete(key []byte) error {
	err := s.db.Delete(key, nil)
	if err == errors.ErrNotFound {
		return nil
	}
	return err
}

func (s *Store) InsertBatch(keys, values [][]byte) error {
	batch := new(leveldb.Batch)
	for i, k := range keys {
		batch.Put(k, values[i])
	}
	return s.db.Write(batch, nil)
}

func (s *Store) RemoveBatch(keys [][]byte) error {
	batch := new(leveldb.Batch)
	for _, k := range keys {
		batch.Delete(k)
	}
	return s.db.Write(batch, nil)
}

func (s *Store) Flush() error {
	return nil
}

// NewBatch satisfies accdb.Batcher.
func (s *Store) NewBatch() accdb.Batch {
	return &ldbBatch{db: s.db, batch: new(leveldb.Batch)}
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

type ldbBatch struct {
	db    *leveldb.DB
	batch *leveldb.Batch
	size  int
}

func (b *ldbBatch) Put(key, value []byte) error {
	b.batch.Put(key, value)
	b.size += len(key) + len(value)
	return nil
}

func (b *ldbBatch) Delete(key []byte) error {
	b.batch.Delete(key)
	b.size += len(key)
	return nil
}

func (b *ldbBatch) ValueSize() int { return b.size }

func (b *ldbBatch) Submit() error {
	return b.db.Write(b.batch, nil)
}

func (b *ldbBatch) Write(w accdb.KeyValueWriter) error {
	return b.batch.Replay(batchReplayer{w})
}

func (b *ldbBatch) Reset() {
	b.batch.Reset()
	b.size = 0
}

// batchReplayer adapts accdb.KeyValueWriter to goleveldb's internal replay
// visitor interface.
type batchReplayer struct {
	w accdb.KeyValueWriter
}

func (r batchReplayer) Put(key, value []byte) { r.w.Put(key, value) }
func (r batchReplayer) Delete(key []byte)     { r.w.Delete(key) }
