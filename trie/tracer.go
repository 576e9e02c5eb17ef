package trie

import "github.com/ethereum/go-ethereum/common"

// trieTracer accumulates the node hashes touched during a single batch of
// put/delete/commit calls: gen tracks hashes this trie produced fresh while
// re-encoding, passing tracks HashRefs it merely walked through (resolved
// from the store, not (re)written). commit reconciles the two, deleting
// whatever was passed through but never regenerated -- the nodes whose
// last reference in this tree just disappeared.
//
// This replaces the teacher's path-keyed trie_capture.go, which tracked
// inserted/deleted *paths* for go-ethereum's incremental dirty-node
// commits. The hash-set model here matches the simpler cache/gen_keys/
// passing_keys bookkeeping this trie's commit pipeline actually needs.
type trieTracer struct {
	gen     map[common.Hash]struct{}
	passing map[common.Hash]struct{}
}

func newTracer() *trieTracer {
	return &trieTracer{
		gen:     make(map[common.Hash]struct{}),
		passing: make(map[common.Hash]struct{}),
	}
}

func (t *trieTracer) onGenerate(hash common.Hash) {
	if t == nil {
		return
	}
	t.gen[hash] = struct{}{}
}

func (t *trieTracer) onPassing(hash common.Hash) {
	if t == nil {
		return
	}
	t.passing[hash] = struct{}{}
}

// removable returns the hashes that were passed through but never
// regenerated in this cycle -- candidates for removal from the store.
func (t *trieTracer) removable() []common.Hash {
	if t == nil {
		return nil
	}
	out := make([]common.Hash, 0, len(t.passing))
	for h := range t.passing {
		if _, ok := t.gen[h]; !ok {
			out = append(out, h)
		}
	}
	return out
}

func (t *trieTracer) reset() {
	if t == nil {
		return
	}
	t.gen = make(map[common.Hash]struct{})
	t.passing = make(map[common.Hash]struct{})
}
