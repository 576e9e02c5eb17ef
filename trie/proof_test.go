package trie

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func classicTrie(t *testing.T) (*Trie, common.Hash) {
	t.Helper()
	tr := New(newMemoryStore())
	for k, v := range map[string]string{
		"doe":          "reindeer",
		"dog":          "puppy",
		"dogglesworth": "cat",
	} {
		if err := tr.Put([]byte(k), []byte(v)); err != nil {
			t.Fatal(err)
		}
	}
	root, err := tr.Commit()
	if err != nil {
		t.Fatal(err)
	}
	return tr, root
}

// TestProveAndVerifyInclusion exercises Prove/VerifyProof as a round trip
// on the classic S1 trie, the way a caller actually uses them together.
func TestProveAndVerifyInclusion(t *testing.T) {
	tr, root := classicTrie(t)

	proof, err := tr.Prove([]byte("doe"))
	if err != nil {
		t.Fatal(err)
	}
	value, err := VerifyProof(root, []byte("doe"), proof)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(value, []byte("reindeer")) {
		t.Fatalf("got %q, want %q", value, "reindeer")
	}
}

// TestVerifyProofKnownVector checks the exact two-node proof for
// proof(b"doe") given as the classic test vector (scenario S1).
func TestVerifyProofKnownVector(t *testing.T) {
	root := common.HexToHash("0x8aad789dff2f538bca5d8ea56e8abe10f4c7ba3a5dea95fea4cd6e7c3a1168d3")
	proof := [][]byte{
		mustHex(t, "e5831646f6a0db6ae1fda66890f6693f36560d36b4dca68b4d838f17016b151efe1d4c95c453"),
		mustHex(t, "f83b8080808080ca20887265696e6465657280a037efd11993cb04a54048c25320e9f29c50a432d28afdf01598b2978ce1ca3068808080808080808080"),
	}
	value, err := VerifyProof(root, []byte("doe"), proof)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(value, []byte("reindeer")) {
		t.Fatalf("got %q, want %q", value, "reindeer")
	}
}

// TestProveAbsence is scenario S2: proving a key that was never inserted
// but shares a prefix with real entries yields a proof that verifies to
// absence, not an error.
func TestProveAbsence(t *testing.T) {
	_, root := classicTrie(t)
	tr2, _ := classicTrie(t)

	proof, err := tr2.Prove([]byte("dogg"))
	if err != nil {
		t.Fatal(err)
	}
	value, err := VerifyProof(root, []byte("dogg"), proof)
	if err != nil {
		t.Fatal(err)
	}
	if value != nil {
		t.Fatalf("got %q, want absence (nil)", value)
	}
}

func TestVerifyProofAbsenceKnownVector(t *testing.T) {
	root := common.HexToHash("0x8aad789dff2f538bca5d8ea56e8abe10f4c7ba3a5dea95fea4cd6e7c3a1168d3")
	proof := [][]byte{
		mustHex(t, "e5831646f6a0db6ae1fda66890f6693f36560d36b4dca68b4d838f17016b151efe1d4c95c453"),
		mustHex(t, "f83b8080808080ca20887265696e6465657280a037efd11993cb04a54048c25320e9f29c50a432d28afdf01598b2978ce1ca3068808080808080808080"),
		mustHex(t, "e4808080808080ce89376c6573776f72746883636174808080808080808080857075707079"),
	}
	value, err := VerifyProof(root, []byte("dogg"), proof)
	if err != nil {
		t.Fatal(err)
	}
	if value != nil {
		t.Fatalf("got %q, want absence (nil)", value)
	}
}

// TestVerifyProofRejectsBadProofs is scenario S6: an empty proof list and a
// proof of unrelated garbage bytes must both be rejected, not panic or
// silently report absence.
func TestVerifyProofRejectsBadProofs(t *testing.T) {
	_, root := classicTrie(t)

	if _, err := VerifyProof(root, []byte("doe"), nil); err != ErrInvalidProof {
		t.Fatalf("empty proof: got %v, want ErrInvalidProof", err)
	}
	if _, err := VerifyProof(root, []byte("doe"), [][]byte{[]byte("aaa"), []byte("ccc")}); err != ErrInvalidProof {
		t.Fatalf("garbage proof: got %v, want ErrInvalidProof", err)
	}
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad test vector hex %q: %v", s, err)
	}
	return b
}
