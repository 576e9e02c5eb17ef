package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var commitCmd = cli.Command{
	Action:    commit,
	Name:      "commit",
	Usage:     "commits the trie named by --root unchanged, re-confirming its root node can be read back by hash",
}

func commit(ctx *cli.Context) error {
	store, closeStore, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	t, err := openTrie(ctx, store)
	if err != nil {
		return err
	}
	root, err := t.Commit()
	if err != nil {
		return err
	}
	if err := store.Flush(); err != nil {
		return err
	}
	fmt.Println(root.Hex())
	return nil
}
