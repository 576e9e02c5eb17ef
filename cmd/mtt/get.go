package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var getCmd = cli.Command{
	Action:    get,
	Name:      "get",
	Usage:     "looks up a key and prints its value",
	ArgsUsage: "<key>",
}

func get(ctx *cli.Context) error {
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
	value, err := t.Get(parseBytes(ctx.Args().Get(0)))
	if err != nil {
		return err
	}
	fmt.Printf("%x\n", value)
	return nil
}
