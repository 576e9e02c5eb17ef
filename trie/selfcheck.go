package trie

import "golang.org/x/crypto/sha3"

// keccak256 recomputes a Keccak-256 digest independently of
// github.com/ethereum/go-ethereum/crypto, using golang.org/x/crypto/sha3's
// legacy Keccak implementation directly. VerifyIntegrity uses it to cross-
// check every cached node against the hash it was stored under, so a bug in
// one of the two Keccak call paths can't silently pass the other's tests.
func keccak256(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}

// VerifyIntegrity recomputes the hash of every node currently cached for
// the next Commit and confirms it matches the key it's filed under,
// independent of the crypto.Keccak256Hash call committer.go itself uses.
// It is not part of the normal put/get/delete/commit path -- a diagnostic
// for callers who want to double-check the pending cache before trusting a
// commit, e.g. in tests or an offline consistency check.
func (t *Trie) VerifyIntegrity() error {
	for hash, data := range t.cache {
		sum := keccak256(data)
		if !hashEqual(hash[:], sum) {
			return &storageError{err: &MissingTrieNodeError{NodeHash: hash, RootHash: t.rootHash}}
		}
	}
	return nil
}

func hashEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
