package trie

import "fmt"

// node is the union of the four node kinds from the data model: nil stands
// for Empty, valueNode for a terminal value, *shortNode for Leaf/Extension
// (discriminated by whether Key carries the terminator) and *fullNode for
// Branch. hashNode is the lazy HashRef pointer. This reuse of one struct
// for two spec variants mirrors go-ethereum's own trie package exactly.
type node interface {
	fstring(string) string
}

type (
	fullNode struct {
		Children [17]node
	}
	shortNode struct {
		Key Nibbles
		Val node
	}
	hashNode  []byte
	valueNode []byte
)

func (n *fullNode) copy() *fullNode {
	cp := *n
	return &cp
}

func (n *shortNode) copy() *shortNode {
	cp := *n
	return &cp
}

// newLeaf is the smart constructor for a Leaf: key must already carry the
// terminator.
func newLeaf(key Nibbles, value valueNode) *shortNode {
	if !key.IsLeaf() {
		panic("trie: newLeaf: key is missing its terminator")
	}
	return &shortNode{Key: append(Nibbles{}, key...), Val: append(valueNode{}, value...)}
}

// extension is the smart constructor for an Extension: prefix must be
// non-empty (invariant 2) and child must be non-nil (invariant 1).
func extension(prefix Nibbles, child node) node {
	if len(prefix) == 0 {
		panic("trie: extension: empty prefix")
	}
	if child == nil {
		panic("trie: extension: nil child")
	}
	return &shortNode{Key: append(Nibbles{}, prefix...), Val: child}
}

// newBranch is the smart constructor for a Branch.
func newBranch(children [17]node) *fullNode {
	return &fullNode{Children: children}
}

var indices = []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "a", "b", "c", "d", "e", "f", "[17]"}

func (n *fullNode) String() string  { return n.fstring("") }
func (n *shortNode) String() string { return n.fstring("") }
func (n hashNode) String() string   { return n.fstring("") }
func (n valueNode) String() string  { return n.fstring("") }

func (n *fullNode) fstring(ind string) string {
	resp := fmt.Sprintf("[\n%s  ", ind)
	for i, child := range &n.Children {
		if child == nil {
			resp += fmt.Sprintf("%s: <nil> ", indices[i])
		} else {
			resp += fmt.Sprintf("%s: %v", indices[i], child.fstring(ind+"  "))
		}
	}
	return resp + fmt.Sprintf("\n%s] ", ind)
}

func (n *shortNode) fstring(ind string) string {
	return fmt.Sprintf("{%x: %v} ", []byte(n.Key), n.Val.fstring(ind+"  "))
}

func (n hashNode) fstring(string) string { return fmt.Sprintf("<%x> ", []byte(n)) }

func (n valueNode) fstring(string) string { return fmt.Sprintf("%x ", []byte(n)) }
