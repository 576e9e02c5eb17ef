package trie

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// ErrInvalidData is returned when a node's RLP shape doesn't match any of
// the five variants Empty/Leaf/Extension/Branch/HashRef decodeNode knows.
var ErrInvalidData = errors.New("trie: invalid node data")

// ErrInvalidProof is returned by VerifyProof for any proof that doesn't
// resolve to a consistent path from root to key, including an empty proof
// list and a proof containing garbage node bytes.
var ErrInvalidProof = errors.New("trie: invalid proof")

// storageError wraps a failure from the backing accdb.KeyValueStore. The
// teacher and the rest of this pack have no error-wrapping library wired
// in, so this stays bare fmt.Errorf/error, same as trie_node_dec.go's
// decodeError below.
type storageError struct {
	err error
}

func (e *storageError) Error() string { return fmt.Sprintf("trie: storage error: %v", e.err) }
func (e *storageError) Unwrap() error { return e.err }

// decodeError keeps the teacher's trie_node_dec.go shape: a wrapped cause
// plus a breadcrumb stack built up as decodeNode unwinds through nested
// short/full node RLP.
type decodeError struct {
	what  error
	stack []string
}

func wrapError(err error, ctx string) error {
	if err == nil {
		return nil
	}
	if decErr, ok := err.(*decodeError); ok {
		decErr.stack = append(decErr.stack, ctx)
		return decErr
	}
	return &decodeError{err, []string{ctx}}
}

func (err *decodeError) Error() string {
	return fmt.Sprintf("%v (decode path: %s)", err.what, err.stack)
}

func (err *decodeError) Unwrap() error { return err.what }

// MissingTrieNodeError is returned whenever a lookup reaches a point where
// the trie is structurally incomplete for the requested key: a HashRef the
// store doesn't have, or -- in this model -- an Empty/Leaf mismatch, since
// a fully-populated trie is expected to resolve every key it's asked about
// down to a definite Branch value slot. Key is filled in by the outermost
// Get/Delete/Prove call, the inner recursion only knows the traversed path.
type MissingTrieNodeError struct {
	NodeHash  common.Hash
	Traversed Nibbles
	RootHash  common.Hash
	Key       []byte
}

func (e *MissingTrieNodeError) Error() string {
	return fmt.Sprintf("trie: missing node %x (root %x, traversed %x, key %x)",
		e.NodeHash, e.RootHash, []byte(e.Traversed), e.Key)
}
