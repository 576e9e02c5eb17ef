package trie

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Prove returns the ordered list of RLP-encoded nodes from root to the
// deepest node touched while looking up key: an inclusion proof if key is
// present, an exclusion proof otherwise. Only nodes stored under their own
// hash are listed: the Leaf/Empty slot that proves key's absence is usually
// embedded inside the last listed node rather than listed itself. Mirrors original_source/src/trie.rs's
// get_path_at + proof.
func (t *Trie) Prove(key []byte) ([][]byte, error) {
	path := NibblesFromBytes(key)
	visited, err := t.getPath(t.root, path, 0)
	if mn, ok := err.(*MissingTrieNodeError); ok {
		mn.Key = append([]byte{}, key...)
	}
	if err != nil {
		return nil, err
	}
	// A HashRef root was already resolved and collected by getPath.
	if _, isRef := t.root.(hashNode); t.root != nil && !isRef {
		visited = append(visited, t.root)
	}

	c := &committer{trie: t, record: false}
	proof := make([][]byte, len(visited))
	for i, n := range visited {
		enc, err := c.encodeRaw(n)
		if err != nil {
			return nil, err
		}
		proof[len(visited)-1-i] = enc
	}
	return proof, nil
}

// getPath walks the same path Get would, collecting every node it had to
// resolve from a HashRef along the way (deepest first), without
// dereferencing into the terminal Leaf/Empty/value itself.
func (t *Trie) getPath(n node, path Nibbles, pos int) ([]node, error) {
	partial := path.Offset(pos)
	switch n := n.(type) {
	case nil, valueNode:
		return nil, nil
	case *shortNode:
		matchLen := partial.CommonPrefix(n.Key)
		if matchLen < n.Key.Len() {
			return nil, nil
		}
		return t.getPath(n.Val, path, pos+matchLen)
	case *fullNode:
		if partial.Len() == 0 || partial.At(0) == 16 {
			return nil, nil
		}
		return t.getPath(n.Children[partial.At(0)], path, pos+1)
	case hashNode:
		resolved, err := t.resolveAt(common.BytesToHash(n), path.Slice(0, pos), false)
		if err != nil {
			return nil, err
		}
		rest, err := t.getPath(resolved, path, pos)
		if err != nil {
			return nil, err
		}
		return append(rest, resolved), nil
	default:
		panic(fmt.Sprintf("trie: getPath: invalid node: %T", n))
	}
}

// VerifyProof checks that proof is a valid path from rootHash down to key,
// and returns the value found at key (nil if the proof demonstrates key's
// absence). An empty proof list, a proof whose nodes don't chain back to
// rootHash, garbage node bytes, or a path that doesn't reach a definite
// answer for key all yield ErrInvalidProof.
func VerifyProof(rootHash common.Hash, key []byte, proof [][]byte) ([]byte, error) {
	if len(proof) == 0 {
		return nil, ErrInvalidProof
	}

	byHash := make(map[common.Hash][]byte, len(proof))
	for _, blob := range proof {
		byHash[crypto.Keccak256Hash(blob)] = blob
	}

	path := NibblesFromBytes(key)
	pos := 0
	wantHash := rootHash

outer:
	for {
		blob, ok := byHash[wantHash]
		if !ok {
			return nil, ErrInvalidProof
		}
		cur, err := decodeNode(blob)
		if err != nil {
			return nil, ErrInvalidProof
		}

		for {
			partial := path.Offset(pos)
			switch nn := cur.(type) {
			case nil:
				return nil, nil
			case valueNode:
				return nn, nil
			case *shortNode:
				matchLen := partial.CommonPrefix(nn.Key)
				if matchLen < nn.Key.Len() {
					return nil, nil
				}
				pos += matchLen
				cur = nn.Val
			case *fullNode:
				if partial.Len() == 0 || partial.At(0) == 16 {
					if v, ok := nn.Children[16].(valueNode); ok {
						return v, nil
					}
					return nil, nil
				}
				cur = nn.Children[partial.At(0)]
				pos++
			case hashNode:
				wantHash = common.BytesToHash(nn)
				continue outer
			default:
				return nil, ErrInvalidProof
			}
		}
	}
}
