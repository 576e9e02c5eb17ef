package trie

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jaiminpan/mt-trie/accdb"
)

// nodeDB is a thin read-through decode cache in front of the backing
// store: get decodes a node blob once and remembers the result, since the
// same hash is often walked repeatedly within one batch of reads. It
// replaces the teacher's TrieDB (trie_db.go), which carried go-ethereum's
// full reference-counted dirty-node/flush-list machinery -- built for
// incremental partial commits, which this trie's whole-cache commit model
// (committer.go, mirroring original_source/src/trie.rs's commit) has no
// use for.
type nodeDB struct {
	diskdb accdb.KeyValueStore

	mu    sync.RWMutex
	nodes map[common.Hash]node
}

func newNodeDB(diskdb accdb.KeyValueStore) *nodeDB {
	return &nodeDB{diskdb: diskdb, nodes: make(map[common.Hash]node)}
}

// get resolves hash to a decoded node, or (nil, nil) if the store doesn't
// have it -- callers turn a miss into a MissingTrieNodeError carrying the
// traversal context the nodeDB itself doesn't have.
func (db *nodeDB) get(hash common.Hash) (node, error) {
	db.mu.RLock()
	n, ok := db.nodes[hash]
	db.mu.RUnlock()
	if ok {
		return n, nil
	}

	blob, err := db.diskdb.Get(hash[:])
	if err != nil {
		return nil, &storageError{err}
	}
	if blob == nil {
		return nil, nil
	}
	n, err = decodeNode(blob)
	if err != nil {
		return nil, wrapError(err, hash.Hex())
	}

	db.mu.Lock()
	db.nodes[hash] = n
	db.mu.Unlock()
	return n, nil
}

// InsertBatch and RemoveBatch pass straight through to the backing store:
// the decode cache only remembers what get has resolved so far, it has
// nothing useful to do on a write other than get out of the way. A
// committed node lands in the cache lazily, the next time something reads
// it back by hash.
func (db *nodeDB) InsertBatch(keys, values [][]byte) error {
	return db.diskdb.InsertBatch(keys, values)
}

func (db *nodeDB) RemoveBatch(keys [][]byte) error {
	return db.diskdb.RemoveBatch(keys)
}
