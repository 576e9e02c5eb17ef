// Package memorydb implements an ephemeral accdb.KeyValueStore backed by a
// plain Go map, for tests and for the CLI's --memory mode.
package memorydb

import (
	"errors"
	"sync"

	"github.com/jaiminpan/mt-trie/accdb"
)

var errMemDBClosed = errors.New("memorydb: database closed")

// MemDB is an ephemeral key-value store. Apart from basic data storage
// functionality it also supports batch writes.
type MemDB struct {
	db   map[string][]byte
	lock sync.RWMutex
}

// New returns a wrapped map with all the required database interface methods
// implemented.
func New() *MemDB {
	return &MemDB{
		db: make(map[string][]byte),
	}
}

func (d *MemDB) Has(key []byte) (bool, error) {
	d.lock.RLock()
	defer d.lock.RUnlock()

	if d.db == nil {
		return false, errMemDBClosed
	}
	_, ok := d.db[string(key)]
	return ok, nil
}

func (d *MemDB) Get(key []byte) ([]byte, error) {
	d.lock.RLock()
	defer d.lock.RUnlock()

	if d.db == nil {
		return nil, errMemDBClosed
	}
	v, ok := d.db[string(key)]
	if !ok {
		return nil, nil
	}
	return append([]byte{}, v...), nil
}

func (d *MemDB) Put(key, value []byte) error {
	d.lock.Lock()
	defer d.lock.Unlock()

	if d.db == nil {
		return errMemDBClosed
	}
	d.db[string(key)] = append([]byte{}, value...)
	return nil
}

func (d *MemDB) Delete(key []byte) error {
	d.lock.Lock()
	defer d.lock.Unlock()

	if d.db == nil {
		return errMemDBClosed
	}
	delete(d.db, string(key))
	return nil
}

func (d *MemDB) InsertBatch(keys, values [][]byte) error {
	if len(keys) != len(values) {
		return errors.New("memorydb: InsertBatch: mismatched keys/values length")
	}
	d.lock.Lock()
	defer d.lock.Unlock()

	if d.db == nil {
		return errMemDBClosed
	}
	for i, k := range keys {
		d.db[string(k)] = append([]byte{}, values[i]...)
	}
	return nil
}

func (d *MemDB) RemoveBatch(keys [][]byte) error {
	d.lock.Lock()
	defer d.lock.Unlock()

	if d.db == nil {
		return errMemDBClosed
	}
	for _, k := range keys {
		delete(d.db, string(k))
	}
	return nil
}

// Flush is a no-op: nothing sits between this map and "durable".
func (d *MemDB) Flush() error { return nil }

// NewBatch satisfies accdb.Batcher for callers that prefer the buffered
// Put/Delete-then-Write style over the direct batch methods above.
func (d *MemDB) NewBatch() accdb.Batch {
	return &memBatch{db: d}
}

type keyValue struct {
	key    []byte
	value  []byte
	delete bool
}

type memBatch struct {
	db   *MemDB
	ops  []keyValue
	size int
}

func (b *memBatch) Put(key, value []byte) error {
	b.ops = append(b.ops, keyValue{append([]byte{}, key...), append([]byte{}, value...), false})
	b.size += len(key) + len(value)
	return nil
}

func (b *memBatch) Delete(key []byte) error {
	b.ops = append(b.ops, keyValue{append([]byte{}, key...), nil, true})
	b.size += len(key)
	return nil
}

func (b *memBatch) ValueSize() int { return b.size }

func (b *memBatch) Submit() error { return b.Write(b.db) }

func (b *memBatch) Write(w accdb.KeyValueWriter) error {
	for _, op := range b.ops {
		if op.delete {
			if err := w.Delete(op.key); err != nil {
				return err
			}
			continue
		}
		if err := w.Put(op.key, op.value); err != nil {
			return err
		}
	}
	return nil
}

func (b *memBatch) Reset() {
	b.ops = b.ops[:0]
	b.size = 0
}
