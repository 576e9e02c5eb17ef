package trie

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
)

// traceStatus tracks how far a traceNode's own exploration has progressed.
// Mirrors original_source/src/trie.rs's TraceStatus/TraceNode state
// machine: a depth-first walk expressed as an explicit stack instead of
// recursion, so Next can return after each key/value pair instead of
// visiting the whole tree eagerly.
type traceStatus int

const (
	traceStart traceStatus = iota
	traceDoing
	traceEnd
)

type traceNode struct {
	node   node
	status traceStatus

	// fullNode bookkeeping: child is the next slot to try (0..15 for
	// children, 16 for the branch's own value, 17 meaning exhausted).
	// pushedNibble records whether a path nibble is currently pushed for
	// an in-flight child, so it can be popped before trying the next one.
	child        int
	pushedNibble bool
}

// Iterator performs a depth-first walk over every key/value pair in a
// trie, in nibble-path order. It is a snapshot of the trie as it was when
// the iterator was created: later Put/Delete calls on the same *Trie do
// not affect an iterator already in progress.
type Iterator struct {
	t     *Trie
	stack []*traceNode
	path  Nibbles

	key   []byte
	value []byte
	err   error
}

// Iterator returns a fresh depth-first iterator over t.
func (t *Trie) Iterator() *Iterator {
	it := &Iterator{t: t}
	if t.root != nil {
		it.stack = append(it.stack, &traceNode{node: t.root, status: traceStart})
	}
	return it
}

// Key returns the raw key of the pair Next most recently produced.
func (it *Iterator) Key() []byte { return it.key }

// Value returns the value of the pair Next most recently produced.
func (it *Iterator) Value() []byte { return it.value }

// Err returns the first error encountered, if iteration stopped early
// because of one instead of running out of keys.
func (it *Iterator) Err() error { return it.err }

// Next advances to the next key/value pair, returning false when the
// traversal is exhausted (or stopped on an error -- check Err).
func (it *Iterator) Next() bool {
	for len(it.stack) > 0 {
		top := it.stack[len(it.stack)-1]

		switch n := top.node.(type) {
		case nil:
			it.stack = it.stack[:len(it.stack)-1]

		case valueNode:
			if top.status == traceEnd {
				it.stack = it.stack[:len(it.stack)-1]
				continue
			}
			top.status = traceEnd
			it.key = it.path.ToKeyBytes()
			it.value = append([]byte{}, n...)
			return true

		case *shortNode:
			if top.status == traceEnd {
				it.stack = it.stack[:len(it.stack)-1]
				it.path = it.path.Truncate(it.path.Len() - n.Key.Len())
				continue
			}
			top.status = traceEnd
			it.path = it.path.Concat(n.Key)
			it.stack = append(it.stack, &traceNode{node: n.Val, status: traceStart})

		case *fullNode:
			if top.pushedNibble {
				it.path = it.path.Pop()
				top.pushedNibble = false
			}
			if top.status == traceEnd {
				it.stack = it.stack[:len(it.stack)-1]
				continue
			}
			dispatched := false
			for !dispatched && top.child <= 16 {
				idx := top.child
				top.child++
				if idx == 16 {
					if v, ok := n.Children[16].(valueNode); ok {
						it.key = it.path.Concat(Nibbles{16}).ToKeyBytes()
						it.value = append([]byte{}, v...)
						return true
					}
					continue
				}
				child := n.Children[idx]
				if child == nil {
					continue
				}
				it.path = it.path.Push(byte(idx))
				top.pushedNibble = true
				it.stack = append(it.stack, &traceNode{node: child, status: traceStart})
				dispatched = true
			}
			if !dispatched {
				top.status = traceEnd
			}

		case hashNode:
			resolved, err := it.t.resolveAt(common.BytesToHash(n), it.path, false)
			if err != nil {
				if _, ok := err.(*MissingTrieNodeError); ok {
					log.Warn("trie: iterator skipping subtree with missing node", "hash", common.BytesToHash(n))
					it.stack = it.stack[:len(it.stack)-1]
					continue
				}
				it.err = err
				it.stack = nil
				return false
			}
			top.node = resolved

		default:
			it.stack = it.stack[:len(it.stack)-1]
		}
	}
	return false
}
