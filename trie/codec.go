package trie

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
)

// hashLen is the size of a HashRef / a Keccak-256 digest.
const hashLen = common.HashLength

// decodeNode decodes a node blob as read directly from the store: Leaf,
// Extension and Branch are the only shapes ever persisted under their own
// hash key, so this only needs to handle the 2- and 17-element list cases (component C,
// spec section 4.2). Embedded/HashRef children are handled by decodeRef.
func decodeNode(buf []byte) (node, error) {
	if len(buf) == 0 {
		return nil, io.ErrUnexpectedEOF
	}
	elems, _, err := rlp.SplitList(buf)
	if err != nil {
		return nil, wrapError(err, "node")
	}
	switch c, _ := rlp.CountValues(elems); c {
	case 2:
		n, err := decodeShort(elems)
		return n, wrapError(err, "short")
	case 17:
		n, err := decodeFull(elems)
		return n, wrapError(err, "full")
	default:
		return nil, fmt.Errorf("%w: invalid number of list elements: %d", ErrInvalidData, c)
	}
}

func decodeShort(elems []byte) (node, error) {
	kbuf, rest, err := rlp.SplitString(elems)
	if err != nil {
		return nil, err
	}
	key := NibblesFromCompact(kbuf)
	if key.IsLeaf() {
		val, _, err := rlp.SplitString(rest)
		if err != nil {
			return nil, fmt.Errorf("trie: invalid leaf value: %v", err)
		}
		return &shortNode{Key: key, Val: valueNode(common.CopyBytes(val))}, nil
	}
	child, _, err := decodeRef(rest)
	if err != nil {
		return nil, wrapError(err, "extension child")
	}
	return &shortNode{Key: key, Val: child}, nil
}

func decodeFull(elems []byte) (*fullNode, error) {
	n := &fullNode{}
	for i := 0; i < 16; i++ {
		cld, rest, err := decodeRef(elems)
		if err != nil {
			return n, wrapError(err, fmt.Sprintf("[%d]", i))
		}
		n.Children[i], elems = cld, rest
	}
	val, _, err := rlp.SplitString(elems)
	if err != nil {
		return n, err
	}
	if len(val) > 0 {
		n.Children[16] = valueNode(common.CopyBytes(val))
	}
	return n, nil
}

// decodeRef decodes a single child slot: empty string -> nil (Empty),
// 32-byte string -> hashNode (HashRef), nested list -> an embedded node
// decoded in place. Anything else is invalid data.
func decodeRef(buf []byte) (node, []byte, error) {
	kind, val, rest, err := rlp.Split(buf)
	if err != nil {
		return nil, buf, err
	}
	switch {
	case kind == rlp.List:
		size := len(buf) - len(rest)
		if size >= hashLen {
			return nil, buf, fmt.Errorf("trie: oversized embedded node (%d bytes, want < %d)", size, hashLen)
		}
		n, err := decodeNode(buf[:size])
		return n, rest, err
	case kind == rlp.String && len(val) == 0:
		return nil, rest, nil
	case kind == rlp.String && len(val) == hashLen:
		return hashNode(common.CopyBytes(val)), rest, nil
	default:
		return nil, nil, fmt.Errorf("%w: invalid reference string size %d (want 0 or %d)", ErrInvalidData, len(val), hashLen)
	}
}
