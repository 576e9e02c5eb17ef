package trie

import (
	"bytes"
	"testing"

	"github.com/jaiminpan/mt-trie/accdb"
	"github.com/jaiminpan/mt-trie/accdb/memorydb"
)

func newMemoryStore() accdb.KeyValueStore {
	return memorydb.New()
}

func TestEmptyTrie(t *testing.T) {
	tr := New(newMemoryStore())
	if res := tr.Hash(); res != emptyRoot {
		t.Errorf("expected %x got %x", emptyRoot, res)
	}
}

func TestGetOnEmpty(t *testing.T) {
	tr := New(newMemoryStore())
	if _, err := tr.Get([]byte("nope")); err == nil {
		t.Fatal("expected MissingTrieNodeError on an empty trie")
	}
}

func TestPutGetOverwrite(t *testing.T) {
	tr := New(newMemoryStore())

	if err := tr.Put([]byte("dog"), []byte("puppy")); err != nil {
		t.Fatal(err)
	}
	v, err := tr.Get([]byte("dog"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(v, []byte("puppy")) {
		t.Fatalf("got %q, want %q", v, "puppy")
	}

	if err := tr.Put([]byte("dog"), []byte("hound")); err != nil {
		t.Fatal(err)
	}
	v, err = tr.Get([]byte("dog"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(v, []byte("hound")) {
		t.Fatalf("got %q, want %q", v, "hound")
	}
}

// TestClassicVector is scenario S1: the canonical three-entry trie whose
// root hash and proof(b"doe") are known constants.
func TestClassicVector(t *testing.T) {
	tr := New(newMemoryStore())
	entries := map[string]string{
		"doe":          "reindeer",
		"dog":          "puppy",
		"dogglesworth": "cat",
	}
	for k, v := range entries {
		if err := tr.Put([]byte(k), []byte(v)); err != nil {
			t.Fatal(err)
		}
	}

	root, err := tr.Commit()
	if err != nil {
		t.Fatal(err)
	}
	want := "0x8aad789dff2f538bca5d8ea56e8abe10f4c7ba3a5dea95fea4cd6e7c3a1168d3"
	if root.Hex() != want {
		t.Fatalf("got root %s, want %s", root.Hex(), want)
	}

	for k, v := range entries {
		got, err := tr.Get([]byte(k))
		if err != nil {
			t.Fatalf("Get(%q): %v", k, err)
		}
		if !bytes.Equal(got, []byte(v)) {
			t.Fatalf("Get(%q) = %q, want %q", k, got, v)
		}
	}
}

// TestBranchFanOut is scenario S3: several keys sharing long common
// prefixes must still resolve correctly once they force branch nodes.
func TestBranchFanOut(t *testing.T) {
	tr := New(newMemoryStore())
	keys := []string{"test", "test1", "test2", "test23", "test33", "test44"}
	for _, k := range keys {
		if err := tr.Put([]byte(k), []byte("test")); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := tr.Commit(); err != nil {
		t.Fatal(err)
	}
	for _, k := range keys {
		v, err := tr.Get([]byte(k))
		if err != nil {
			t.Fatalf("Get(%q): %v", k, err)
		}
		if !bytes.Equal(v, []byte("test")) {
			t.Fatalf("Get(%q) = %q, want %q", k, v, "test")
		}
	}
}

// TestDeleteToEmpty is scenario S4: deleting the only entry must restore
// the canonical empty-trie root hash, not just an empty-looking tree.
func TestDeleteToEmpty(t *testing.T) {
	tr := New(newMemoryStore())
	if err := tr.Put([]byte("test"), []byte("test")); err != nil {
		t.Fatal(err)
	}
	if _, err := tr.Commit(); err != nil {
		t.Fatal(err)
	}
	if err := tr.Delete([]byte("test")); err != nil {
		t.Fatal(err)
	}
	root, err := tr.Commit()
	if err != nil {
		t.Fatal(err)
	}
	if root != emptyRoot {
		t.Fatalf("got root %x, want empty root %x", root, emptyRoot)
	}
}

func TestDeleteAbsentIsNoop(t *testing.T) {
	tr := New(newMemoryStore())
	if err := tr.Put([]byte("dog"), []byte("puppy")); err != nil {
		t.Fatal(err)
	}
	before, err := tr.Commit()
	if err != nil {
		t.Fatal(err)
	}
	if err := tr.Delete([]byte("cat")); err != nil {
		t.Fatal(err)
	}
	after, err := tr.Commit()
	if err != nil {
		t.Fatal(err)
	}
	if before != after {
		t.Fatalf("deleting an absent key changed the root: %x -> %x", before, after)
	}
}

// TestViewIsolation is scenario S5: AtRoot opens an independent view, and
// the empty trie never sees keys committed under another root.
func TestViewIsolation(t *testing.T) {
	store := newMemoryStore()
	tr := New(store)
	if err := tr.Put([]byte("dog"), []byte("puppy")); err != nil {
		t.Fatal(err)
	}
	root, err := tr.Commit()
	if err != nil {
		t.Fatal(err)
	}

	view := tr.AtRoot(root)
	v, err := view.Get([]byte("dog"))
	if err != nil {
		t.Fatalf("view at committed root: %v", err)
	}
	if !bytes.Equal(v, []byte("puppy")) {
		t.Fatalf("got %q, want %q", v, "puppy")
	}

	empty := tr.AtRoot(emptyRoot)
	if _, err := empty.Get([]byte("dog")); err == nil {
		t.Fatal("expected MissingTrieNodeError for a key on an unrelated empty view")
	}
}

func TestIteratorVisitsEverything(t *testing.T) {
	tr := New(newMemoryStore())
	want := map[string]string{
		"doe":          "reindeer",
		"dog":          "puppy",
		"dogglesworth": "cat",
	}
	for k, v := range want {
		if err := tr.Put([]byte(k), []byte(v)); err != nil {
			t.Fatal(err)
		}
	}

	got := map[string]string{}
	it := tr.Iterator()
	for it.Next() {
		got[string(it.Key())] = string(it.Value())
	}
	if err := it.Err(); err != nil {
		t.Fatal(err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d: %v", len(got), len(want), got)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("key %q: got %q, want %q", k, got[k], v)
		}
	}
}
