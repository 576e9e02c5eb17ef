package memorydb

import (
	"bytes"
	"testing"
)

func TestPutGetDelete(t *testing.T) {
	db := New()

	if ok, err := db.Has([]byte("k")); err != nil || ok {
		t.Fatalf("Has on empty db: ok=%v err=%v", ok, err)
	}

	if err := db.Put([]byte("k"), []byte("v")); err != nil {
		t.Fatal(err)
	}
	v, err := db.Get([]byte("k"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(v, []byte("v")) {
		t.Fatalf("got %q, want %q", v, "v")
	}

	if err := db.Delete([]byte("k")); err != nil {
		t.Fatal(err)
	}
	v, err = db.Get([]byte("k"))
	if err != nil {
		t.Fatal(err)
	}
	if v != nil {
		t.Fatalf("got %q after delete, want nil", v)
	}
}

func TestInsertBatchRemoveBatch(t *testing.T) {
	db := New()
	keys := [][]byte{[]byte("a"), []byte("b"), []byte("c")}
	values := [][]byte{[]byte("1"), []byte("2"), []byte("3")}

	if err := db.InsertBatch(keys, values); err != nil {
		t.Fatal(err)
	}
	for i, k := range keys {
		v, err := db.Get(k)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(v, values[i]) {
			t.Fatalf("Get(%q) = %q, want %q", k, v, values[i])
		}
	}

	if err := db.RemoveBatch(keys[:2]); err != nil {
		t.Fatal(err)
	}
	if ok, _ := db.Has(keys[0]); ok {
		t.Fatalf("key %q still present after RemoveBatch", keys[0])
	}
	if ok, _ := db.Has(keys[2]); !ok {
		t.Fatalf("key %q wrongly removed", keys[2])
	}
}

func TestBatchWrite(t *testing.T) {
	db := New()
	b := db.NewBatch()
	if err := b.Put([]byte("x"), []byte("1")); err != nil {
		t.Fatal(err)
	}
	if err := b.Put([]byte("y"), []byte("2")); err != nil {
		t.Fatal(err)
	}
	if b.ValueSize() == 0 {
		t.Fatal("expected nonzero ValueSize after Put")
	}
	if err := b.Submit(); err != nil {
		t.Fatal(err)
	}
	v, err := db.Get([]byte("x"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(v, []byte("1")) {
		t.Fatalf("got %q, want %q", v, "1")
	}
}
