// Package trie implements the core of an Ethereum-style Modified Merkle
// Patricia Trie: the node algebra, the get/put/delete/commit/proof
// operations and a depth-first iterator, sitting on top of a
// content-addressed accdb.KeyValueStore.
package trie

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/jaiminpan/mt-trie/accdb"
)

// emptyRoot is the root hash of a trie with no entries: the Keccak-256 of
// the RLP encoding of the empty byte string.
var emptyRoot = crypto.Keccak256Hash([]byte{0x80})

// Trie is a Merkle Patricia Trie. It is not safe for concurrent mutation;
// a reader wanting a stable view while a writer mutates should open a
// second view with AtRoot instead of sharing a *Trie across goroutines.
type Trie struct {
	root     node
	rootHash common.Hash

	cache  map[common.Hash][]byte
	tracer *trieTracer

	db *nodeDB
}

// New returns a trie with no entries, backed by store.
func New(store accdb.KeyValueStore) *Trie {
	return &Trie{
		rootHash: emptyRoot,
		cache:    make(map[common.Hash][]byte),
		tracer:   newTracer(),
		db:       newNodeDB(store),
	}
}

// AtRoot returns a fresh, independent view onto root sharing the same
// backing store: its own cache and tracer, so a writer committing the
// original trie never touches or is touched by this view. Construction is
// infallible and lazy -- root's node isn't resolved until something asks
// for it, at which point a missing node surfaces as MissingTrieNodeError
// like any other read.
func (t *Trie) AtRoot(root common.Hash) *Trie {
	nt := &Trie{
		rootHash: emptyRoot,
		cache:    make(map[common.Hash][]byte),
		tracer:   newTracer(),
		db:       t.db,
	}
	if root != (common.Hash{}) && root != emptyRoot {
		nt.root = hashNode(root.Bytes())
		nt.rootHash = root
	}
	return nt
}

// Hash returns the trie's current root hash without committing it to the
// store -- it reflects every Put/Delete applied so far even if Commit was
// never called.
func (t *Trie) Hash() common.Hash {
	if t.root == nil {
		return emptyRoot
	}
	c := &committer{trie: t, record: false}
	enc, err := c.writeNode(t.root)
	if err != nil {
		// Hash never touches the store for anything beyond nodes
		// already resolved into memory, so a failure here means a
		// HashRef was left dangling -- a bug, not a runtime
		// condition worth a (common.Hash, error) signature.
		panic(fmt.Sprintf("trie: Hash: %v", err))
	}
	if enc.isHash() {
		return enc.hash
	}
	return crypto.Keccak256Hash(enc.inline)
}

// Get returns the value stored for key. A terminal Empty/Leaf mismatch
// while walking a structurally-complete trie is itself an error in this
// model (MissingTrieNodeError), not a plain not-found result -- see spec
// section 4.3.
func (t *Trie) Get(key []byte) ([]byte, error) {
	path := NibblesFromBytes(key)
	value, err := t.get(t.root, path, 0)
	if mn, ok := err.(*MissingTrieNodeError); ok {
		mn.Key = append([]byte{}, key...)
	}
	return value, err
}

func (t *Trie) get(n node, path Nibbles, pos int) ([]byte, error) {
	partial := path.Offset(pos)
	switch n := n.(type) {
	case nil:
		return nil, &MissingTrieNodeError{Traversed: append(Nibbles{}, path.Slice(0, pos)...), RootHash: t.rootHash}
	case valueNode:
		return n, nil
	case *shortNode:
		matchLen := partial.CommonPrefix(n.Key)
		if matchLen < n.Key.Len() {
			return nil, &MissingTrieNodeError{Traversed: append(Nibbles{}, path.Slice(0, pos)...), RootHash: t.rootHash}
		}
		return t.get(n.Val, path, pos+matchLen)
	case *fullNode:
		if partial.Len() == 0 || partial.At(0) == 16 {
			if v, ok := n.Children[16].(valueNode); ok {
				return v, nil
			}
			return nil, nil
		}
		return t.get(n.Children[partial.At(0)], path, pos+1)
	case hashNode:
		child, err := t.resolveAt(common.BytesToHash(n), path.Slice(0, pos), false)
		if err != nil {
			return nil, err
		}
		return t.get(child, path, pos)
	default:
		panic(fmt.Sprintf("trie: get: invalid node: %T", n))
	}
}

// Put inserts or overwrites the value stored for key. Putting a zero-length
// value is equivalent to Delete, matching the convention go-ethereum's own
// trie uses.
func (t *Trie) Put(key, value []byte) error {
	if len(value) == 0 {
		return t.Delete(key)
	}
	path := NibblesFromBytes(key)
	n, err := t.insert(t.root, path, 0, value)
	if err != nil {
		return err
	}
	t.root = n
	return nil
}

func (t *Trie) insert(n node, path Nibbles, pos int, value []byte) (node, error) {
	partial := path.Offset(pos)
	switch n := n.(type) {
	case nil:
		return newLeaf(partial, valueNode(value)), nil

	case *shortNode:
		if n.Key.IsLeaf() {
			return t.insertLeaf(n, partial, value)
		}
		return t.insertExtension(n, path, pos, partial, value)

	case *fullNode:
		cp := n.copy()
		if partial.At(0) == 16 {
			cp.Children[16] = valueNode(value)
			return cp, nil
		}
		idx := partial.At(0)
		child, err := t.insert(n.Children[idx], path, pos+1, value)
		if err != nil {
			return nil, err
		}
		cp.Children[idx] = child
		return cp, nil

	case hashNode:
		child, err := t.resolveAt(common.BytesToHash(n), path.Slice(0, pos), true)
		if err != nil {
			return nil, err
		}
		return t.insert(child, path, pos, value)

	default:
		panic(fmt.Sprintf("trie: insert: invalid node: %T", n))
	}
}

// insertLeaf handles inserting into a Leaf: an exact key match overwrites
// the value in place; otherwise the two entries split into a Branch (with
// an Extension wrapper if they still share a prefix).
func (t *Trie) insertLeaf(n *shortNode, partial Nibbles, value []byte) (node, error) {
	oldKey := n.Key
	matchIdx := partial.CommonPrefix(oldKey)
	if matchIdx == oldKey.Len() {
		return newLeaf(oldKey, valueNode(value)), nil
	}

	var children [17]node
	placeBranchEntry(&children, oldKey, matchIdx, n.Val.(valueNode))
	placeBranchEntry(&children, partial, matchIdx, valueNode(value))
	branch := newBranch(children)

	if matchIdx == 0 {
		return branch, nil
	}
	return extension(partial.Slice(0, matchIdx), branch), nil
}

// placeBranchEntry drops the already-matched common prefix and files the
// remaining path into the branch at index key[matchIdx]: straight into the
// value slot if that index is the terminator (16), otherwise as a fresh
// Leaf child.
func placeBranchEntry(children *[17]node, key Nibbles, matchIdx int, value valueNode) {
	idx := key.At(matchIdx)
	if idx == 16 {
		children[16] = value
		return
	}
	children[idx] = newLeaf(key.Offset(matchIdx+1), value)
}

// insertExtension handles inserting into an Extension: depending on how
// much of the extension's prefix the new key shares, it either recurses
// into the child, splits off a branch at the divergence point, or both.
func (t *Trie) insertExtension(n *shortNode, path Nibbles, pos int, partial Nibbles, value []byte) (node, error) {
	prefix := n.Key
	matchIdx := partial.CommonPrefix(prefix)

	if matchIdx == 0 {
		var children [17]node
		if prefix.Len() == 1 {
			children[prefix.At(0)] = n.Val
		} else {
			children[prefix.At(0)] = extension(prefix.Offset(1), n.Val)
		}
		return t.insert(newBranch(children), path, pos, value)
	}

	if matchIdx == prefix.Len() {
		child, err := t.insert(n.Val, path, pos+matchIdx, value)
		if err != nil {
			return nil, err
		}
		return extension(prefix, child), nil
	}

	split, err := t.insert(extension(prefix.Offset(matchIdx), n.Val), path, pos+matchIdx, value)
	if err != nil {
		return nil, err
	}
	return extension(prefix.Slice(0, matchIdx), split), nil
}

// Delete removes the value stored for key, if any. Deleting a key absent
// from a structurally-complete trie is a no-op; walking into an
// incomplete one still surfaces MissingTrieNodeError.
func (t *Trie) Delete(key []byte) error {
	path := NibblesFromBytes(key)
	n, _, err := t.delete(t.root, path, 0)
	if mn, ok := err.(*MissingTrieNodeError); ok {
		mn.Key = append([]byte{}, key...)
	}
	if err != nil {
		return err
	}
	t.root = n
	return nil
}

func (t *Trie) delete(n node, path Nibbles, pos int) (node, bool, error) {
	partial := path.Offset(pos)
	switch n := n.(type) {
	case nil:
		return nil, false, nil

	case *shortNode:
		if n.Key.IsLeaf() {
			if bytes.Equal(n.Key, partial) {
				return nil, true, nil
			}
			return n, false, nil
		}
		matchLen := partial.CommonPrefix(n.Key)
		if matchLen < n.Key.Len() {
			return n, false, nil
		}
		child, deleted, err := t.delete(n.Val, path, pos+matchLen)
		if err != nil || !deleted {
			return n, deleted, err
		}
		return t.deleteDegenerate(extension(n.Key, child))

	case *fullNode:
		if partial.At(0) == 16 {
			if n.Children[16] == nil {
				return n, false, nil
			}
			cp := n.copy()
			cp.Children[16] = nil
			return t.deleteDegenerate(cp)
		}
		idx := partial.At(0)
		child, deleted, err := t.delete(n.Children[idx], path, pos+1)
		if err != nil || !deleted {
			return n, deleted, err
		}
		cp := n.copy()
		cp.Children[idx] = child
		return t.deleteDegenerate(cp)

	case hashNode:
		// Only record the HashRef as passed-through once something beneath
		// it was actually removed: an unchanged subtree stays referenced by
		// hash and is never regenerated, so pruning it would lose a live node.
		hash := common.BytesToHash(n)
		child, err := t.resolveAt(hash, path.Slice(0, pos), false)
		if err != nil {
			return nil, false, err
		}
		nn, deleted, err := t.delete(child, path, pos)
		if err == nil && deleted {
			t.tracer.onPassing(hash)
		}
		return nn, deleted, err

	default:
		panic(fmt.Sprintf("trie: delete: invalid node: %T", n))
	}
}

func (t *Trie) deleteDegenerate(n node) (node, bool, error) {
	nn, err := t.degenerate(n)
	return nn, true, err
}

// degenerate restores the structural invariants of section 3.2 after a
// deletion: a Branch with one remaining child and no value collapses to an
// Extension (or, with zero children and a value, a Leaf); an Extension whose
// (possibly HashRef) child is itself an Extension or a Leaf merges with
// it. Mirrors original_source/src/trie.rs's degenerate exactly.
func (t *Trie) degenerate(n node) (node, error) {
	switch n := n.(type) {
	case *fullNode:
		used := -1
		multiple := false
		for i := 0; i < 16; i++ {
			if n.Children[i] != nil {
				if used == -1 {
					used = i
				} else {
					multiple = true
					break
				}
			}
		}
		switch {
		case used == -1 && n.Children[16] == nil:
			return nil, nil
		case used == -1:
			return newLeaf(Nibbles{16}, n.Children[16].(valueNode)), nil
		case !multiple && n.Children[16] == nil:
			return t.degenerate(extension(Nibbles{byte(used)}, n.Children[used]))
		default:
			return n, nil
		}

	case *shortNode:
		if n.Key.IsLeaf() {
			return n, nil
		}
		child := n.Val
		if hn, ok := child.(hashNode); ok {
			resolved, err := t.resolveAt(common.BytesToHash(hn), nil, true)
			if err != nil {
				return nil, err
			}
			child = resolved
		}
		switch child := child.(type) {
		case *shortNode:
			if child.Key.IsLeaf() {
				return newLeaf(n.Key.Concat(child.Key), child.Val.(valueNode)), nil
			}
			return t.degenerate(extension(n.Key.Concat(child.Key), child.Val))
		default:
			if child == n.Val {
				return n, nil
			}
			return extension(n.Key, child), nil
		}

	default:
		return n, nil
	}
}

// Commit encodes every dirty node, hashing or inlining per the size rule
// of section 4.2, writes freshly generated nodes to the store, removes
// anything superseded, and returns the new root hash.
func (t *Trie) Commit() (common.Hash, error) {
	c := &committer{trie: t, record: true}
	return c.commit()
}
