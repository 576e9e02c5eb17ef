package trie

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rlp"
)

// encodedNode is the result of writeNode: either a HashRef to a node that
// got its own store entry, or the node's own raw RLP bytes, small enough
// (< hashLen) to embed directly in its parent -- the hash-or-inline rule of
// spec section 4.2/4.6.
type encodedNode struct {
	hash   common.Hash
	inline []byte // non-nil iff this node is embedded rather than hashed
}

func (e encodedNode) isHash() bool { return e.inline == nil }

// committer drives both Commit (component E) and Prove (components E/F): the
// same hash-or-inline walk produces the live root hash and, separately
// with record=false, the raw bytes Prove needs without touching the trie's
// pending cache. This mirrors the teacher's committer type in name and
// role, replacing go-ethereum's dirty-flag/NodeSet machinery (trie_committer.go)
// with the simpler recursive encode_raw/write_node pipeline
// original_source/src/trie.rs actually implements.
type committer struct {
	trie   *Trie
	record bool
}

// writeNode is EthTrie::write_node: a HashRef passes through untouched: a
// concrete node gets encoded, and if its encoding is hashLen bytes or more
// it's hashed, (optionally) cached and tracked as generated; otherwise it's
// embedded inline in the caller.
func (c *committer) writeNode(n node) (encodedNode, error) {
	if hn, ok := n.(hashNode); ok {
		return encodedNode{hash: common.BytesToHash(hn)}, nil
	}
	data, err := c.encodeRaw(n)
	if err != nil {
		return encodedNode{}, err
	}
	if len(data) < hashLen {
		return encodedNode{inline: data}, nil
	}
	hash := crypto.Keccak256Hash(data)
	if c.record {
		c.trie.cache[hash] = data
		c.trie.tracer.onGenerate(hash)
	}
	return encodedNode{hash: hash}, nil
}

// encodeRaw is EthTrie::encode_raw: build the RLP bytes for n, recursively
// resolving each child through writeNode first.
func (c *committer) encodeRaw(n node) ([]byte, error) {
	switch n := n.(type) {
	case nil:
		return rlp.EmptyString, nil
	case *shortNode:
		w := rlp.NewEncoderBuffer(nil)
		offset := w.List()
		w.WriteBytes(n.Key.Compact())
		if err := c.encodeChild(w, n.Val); err != nil {
			return nil, err
		}
		w.ListEnd(offset)
		return w.AppendToBytes(nil), nil
	case *fullNode:
		w := rlp.NewEncoderBuffer(nil)
		offset := w.List()
		for i := 0; i < 16; i++ {
			if err := c.encodeChild(w, n.Children[i]); err != nil {
				return nil, err
			}
		}
		if v, ok := n.Children[16].(valueNode); ok {
			w.WriteBytes(v)
		} else {
			w.Write(rlp.EmptyString)
		}
		w.ListEnd(offset)
		return w.AppendToBytes(nil), nil
	case hashNode:
		panic("trie: encodeRaw called directly on a HashRef; writeNode must intercept it")
	default:
		panic(fmt.Sprintf("trie: encodeRaw: unexpected node type %T", n))
	}
}

// encodeChild writes a single branch/extension child slot: Empty as the
// RLP empty string, a leaf's own value verbatim, anything else through
// writeNode's hash-or-inline decision.
func (c *committer) encodeChild(w rlp.EncoderBuffer, child node) error {
	if child == nil {
		w.Write(rlp.EmptyString)
		return nil
	}
	if vn, ok := child.(valueNode); ok {
		w.WriteBytes(vn)
		return nil
	}
	enc, err := c.writeNode(child)
	if err != nil {
		return err
	}
	if enc.isHash() {
		w.WriteBytes(enc.hash[:])
	} else {
		w.Write(enc.inline)
	}
	return nil
}

// commit runs the full commit cycle of spec section 4.6: encode/hash the
// live tree, batch-write every freshly generated node, batch-remove
// whatever was only passed through, clear the per-cycle bookkeeping and
// re-decode the root from the very bytes just written, as the flush
// sanity check in that step calls for.
func (c *committer) commit() (common.Hash, error) {
	enc, err := c.writeNode(c.trie.root)
	if err != nil {
		return common.Hash{}, err
	}

	var rootHash common.Hash
	switch {
	case c.trie.root == nil:
		rootHash = emptyRoot
	case enc.isHash():
		rootHash = enc.hash
	default:
		// The root always gets an explicit identity, even if its
		// encoding would otherwise be small enough to inline.
		rootHash = crypto.Keccak256Hash(enc.inline)
		c.trie.cache[rootHash] = enc.inline
		c.trie.tracer.onGenerate(rootHash)
	}

	if len(c.trie.cache) > 0 {
		keys := make([][]byte, 0, len(c.trie.cache))
		values := make([][]byte, 0, len(c.trie.cache))
		for h, v := range c.trie.cache {
			keys = append(keys, h.Bytes())
			values = append(values, v)
		}
		if err := c.trie.db.InsertBatch(keys, values); err != nil {
			return common.Hash{}, &storageError{err}
		}
	}

	if removed := c.trie.tracer.removable(); len(removed) > 0 {
		keys := make([][]byte, len(removed))
		for i, h := range removed {
			keys[i] = h.Bytes()
		}
		if err := c.trie.db.RemoveBatch(keys); err != nil {
			return common.Hash{}, &storageError{err}
		}
		log.Debug("trie: pruned superseded nodes", "count", len(keys))
	}

	// Re-fetch the root through the nodeDB rather than trusting the
	// in-memory encoding: a root generated fresh this cycle is already in
	// the batch just written, and a root that was already a HashRef
	// (Commit called with nothing new under it) was never touched above
	// at all. Either way, this is the flush sanity check of spec section
	// 4.6 step 4 -- Commit reports success only once the root resolves by
	// hash. nodeDB.get answers from its decode memo when it already holds
	// the root, so the backing store is only read on a memo miss.
	var newRoot node
	if rootHash != emptyRoot {
		n, err := c.trie.db.get(rootHash)
		if err != nil {
			return common.Hash{}, err
		}
		if n == nil {
			return common.Hash{}, fmt.Errorf("trie: commit: root %x not found in store after flush", rootHash)
		}
		newRoot = n
	}

	c.trie.cache = make(map[common.Hash][]byte)
	c.trie.tracer.reset()
	c.trie.rootHash = rootHash
	c.trie.root = newRoot
	return rootHash, nil
}
