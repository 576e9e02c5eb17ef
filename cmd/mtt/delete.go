package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var deleteCmd = cli.Command{
	Action:    del,
	Name:      "delete",
	Usage:     "removes a key (a no-op if absent) and commits, printing the new root hash",
	ArgsUsage: "<key>",
}

func del(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		return fmt.Errorf("want <key>")
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
	if err := t.Delete(parseBytes(ctx.Args().Get(0))); err != nil {
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
