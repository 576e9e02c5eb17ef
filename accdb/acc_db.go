package accdb

// KeyValueReader wraps the Has and Get method of a backing data store.
type KeyValueReader interface {
	// Has retrieves if a key is present in the key-value data store.
	Has(key []byte) (bool, error)

	// Get retrieves the given key if it's present in the key-value data store.
	// A nil slice with a nil error means "not present" -- the trie engine
	// treats that as a structural error (MissingTrieNodeError), never as a
	// valid empty-byte-string value, since no node ever encodes to zero
	// bytes.
	Get(key []byte) ([]byte, error)
}

// KeyValueWriter wraps the Put and Delete methods of a backing data store.
type KeyValueWriter interface {
	// Put inserts the given value into the key-value data store.
	Put(key []byte, value []byte) error

	// Delete removes the key from the key-value data store. Deleting a
	// missing key is a no-op, not an error.
	Delete(key []byte) error
}

// BatchWriter wraps the batch insert/remove operations the commit pipeline
// (part of the trie engine, component E) issues: last-writer-wins by key within a single batch.
type BatchWriter interface {
	// InsertBatch writes len(keys)==len(values) pairs in one call.
	InsertBatch(keys, values [][]byte) error

	// RemoveBatch removes every key in one call; removing a missing key is
	// a no-op.
	RemoveBatch(keys [][]byte) error
}

// KeyValueStore is the full store adapter contract the trie engine
// consumes (component D, spec section 6.2): get/put/delete, their batch
// counterparts, and a durability checkpoint hint.
type KeyValueStore interface {
	KeyValueReader
	KeyValueWriter
	BatchWriter
	Batcher

	// Flush is a durability checkpoint hint. Implementations with nothing
	// to flush (e.g. a plain in-memory map) may no-op.
	Flush() error
}

// Database contains the methods required by the high level database to
// access the key-value data store, kept distinct from KeyValueStore for
// components that only ever read/write single keys and don't need the
// batch/flush surface. Nothing in this module currently uses it.
type Database interface {
	KeyValueReader
	KeyValueWriter
}
