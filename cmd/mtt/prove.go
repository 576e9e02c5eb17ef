package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var proveCmd = cli.Command{
	Action:    prove,
	Name:      "prove",
	Usage:     "prints the Merkle proof for a key as one hex-encoded RLP node per line, root first",
	ArgsUsage: "<key>",
}

func prove(ctx *cli.Context) error {
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
	proof, err := t.Prove(parseBytes(ctx.Args().Get(0)))
	if err != nil {
		return err
	}
	for _, node := range proof {
		fmt.Printf("%x\n", node)
	}
	return nil
}
