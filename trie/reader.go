package trie

import "github.com/ethereum/go-ethereum/common"

// resolveAt fetches and decodes the node stored under hash, tripping a
// MissingTrieNodeError (carrying path as the traversed-so-far context) if
// the store doesn't have it. track selects whether hash is recorded as
// passed-through for this commit cycle: only a mutating walk (insert,
// degenerate) passes track=true, since committer.go's prune
// step removes whatever is passing but not regenerated. A read-only walk
// (Get, getPath/Prove, the iterator) must pass track=false -- marking a
// node passed-through on a plain read would make the next Commit delete it
// if nothing happened to regenerate it, destroying a live, untouched
// subtree. delete resolves with track=false and records the hash itself
// only once a key beneath it was actually removed, so deleting an absent
// key prunes nothing. This mirrors original_source/src/trie.rs: get_at and
// get_path_at resolve via recover_from_db without touching passing_keys;
// only insert_at/delete/degenerate do.
//
// This replaces the teacher's trie_reader.go, which wrapped TrieDB.Node/
// NodeBlob under an "owner" concept this single-tree model (no separate
// account vs. storage tries) has no use for.
func (t *Trie) resolveAt(hash common.Hash, path Nibbles, track bool) (node, error) {
	if track {
		t.tracer.onPassing(hash)
	}
	n, err := t.db.get(hash)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, &MissingTrieNodeError{
			NodeHash:  hash,
			Traversed: append(Nibbles{}, path...),
			RootHash:  t.rootHash,
		}
	}
	return n, nil
}
