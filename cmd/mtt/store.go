package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jaiminpan/mt-trie/accdb"
	"github.com/jaiminpan/mt-trie/accdb/leveldb"
	"github.com/jaiminpan/mt-trie/accdb/memorydb"
	"github.com/jaiminpan/mt-trie/trie"
	"github.com/urfave/cli/v2"
)

// openStore opens the backing accdb.KeyValueStore named by --db/--memory. The
// returned closer is a no-op for the in-memory store.
func openStore(ctx *cli.Context) (accdb.KeyValueStore, func() error, error) {
	if ctx.Bool(memoryFlag.Name) {
		return memorydb.New(), func() error { return nil }, nil
	}
	path := ctx.String(dbFlag.Name)
	if strings.TrimSpace(path) == "" {
		return nil, nil, fmt.Errorf("one of --db or --memory is required")
	}
	store, err := leveldb.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return store, store.Close, nil
}

// openTrie opens store and returns the trie view named by --root: the empty
// trie when --root is unset or 0x0, otherwise a lazy AtRoot view.
func openTrie(ctx *cli.Context, store accdb.KeyValueStore) (*trie.Trie, error) {
	t := trie.New(store)
	rootStr := strings.TrimSpace(ctx.String(rootFlag.Name))
	if rootStr == "" || rootStr == "0x0" {
		return t, nil
	}
	root, err := parseHash(rootStr)
	if err != nil {
		return nil, fmt.Errorf("--root: %w", err)
	}
	return t.AtRoot(root), nil
}

func parseHash(s string) (common.Hash, error) {
	s = strings.TrimPrefix(s, "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return common.Hash{}, err
	}
	if len(b) != common.HashLength {
		return common.Hash{}, fmt.Errorf("want %d bytes, got %d", common.HashLength, len(b))
	}
	return common.BytesToHash(b), nil
}

func parseBytes(s string) []byte {
	if strings.HasPrefix(s, "0x") {
		if b, err := hex.DecodeString(s[2:]); err == nil {
			return b
		}
	}
	return []byte(s)
}
