package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var putCmd = cli.Command{
	Action:    put,
	Name:      "put",
	Usage:     "inserts or overwrites a key/value pair and commits, printing the new root hash",
	ArgsUsage: "<key> <value>",
}

func put(ctx *cli.Context) error {
	if ctx.Args().Len() != 2 {
		return fmt.Errorf("want <key> <value>")
	}
	store, closeStore, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	t, err := openTrie(ctx, store)
	if err != nil {
		return err
	}
	if err := t.Put(parseBytes(ctx.Args().Get(0)), parseBytes(ctx.Args().Get(1))); err != nil {
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
