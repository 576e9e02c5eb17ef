package trie

import (
	"bytes"
	"testing"
)

func TestNibblesFromBytesRoundTrip(t *testing.T) {
	cases := [][]byte{
		nil,
		{},
		{0x12},
		{0x12, 0x34, 0x56},
		[]byte("dogglesworth"),
	}
	for _, key := range cases {
		n := NibblesFromBytes(key)
		if !n.IsLeaf() {
			t.Errorf("NibblesFromBytes(%x): expected terminator", key)
		}
		back := n.ToKeyBytes()
		if !bytes.Equal(back, key) && !(len(back) == 0 && len(key) == 0) {
			t.Errorf("NibblesFromBytes(%x).ToKeyBytes() = %x", key, back)
		}
	}
}

func TestCompactRoundTrip(t *testing.T) {
	cases := []Nibbles{
		{16},                 // empty leaf
		{1, 2, 3, 4, 5, 16},  // even-length leaf
		{1, 2, 3, 4, 5, 6},   // even-length extension
		{1, 2, 3, 4, 5},      // odd-length extension
		{15, 1, 12, 11, 8, 16}, // odd-length leaf with wide nibbles
	}
	for _, n := range cases {
		compact := n.Compact()
		back := NibblesFromCompact(compact)
		if !bytes.Equal(back, n) {
			t.Errorf("Compact round trip for %v: got %v", []byte(n), []byte(back))
		}
	}
}

func TestCommonPrefix(t *testing.T) {
	tests := []struct {
		a, b Nibbles
		want int
	}{
		{Nibbles{1, 2, 3}, Nibbles{1, 2, 3}, 3},
		{Nibbles{1, 2, 3}, Nibbles{1, 2, 4}, 2},
		{Nibbles{1, 2}, Nibbles{1, 2, 3}, 2},
		{Nibbles{}, Nibbles{1}, 0},
		{Nibbles{5}, Nibbles{1}, 0},
	}
	for _, tc := range tests {
		if got := tc.a.CommonPrefix(tc.b); got != tc.want {
			t.Errorf("CommonPrefix(%v, %v) = %d, want %d", []byte(tc.a), []byte(tc.b), got, tc.want)
		}
	}
}

func TestIsLeaf(t *testing.T) {
	if (Nibbles{1, 2, 16}).IsLeaf() != true {
		t.Error("expected terminator-suffixed path to be a leaf path")
	}
	if (Nibbles{1, 2}).IsLeaf() != false {
		t.Error("expected path without terminator to not be a leaf path")
	}
	if (Nibbles{}).IsLeaf() != false {
		t.Error("expected empty path to not be a leaf path")
	}
}
