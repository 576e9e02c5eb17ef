// Command mtt is a small toolbox for poking at a trie store directly:
// put/get/delete a handful of keys, commit and print the root hash, or
// produce and check a Merkle proof, all against a single on-disk leveldb
// directory (or an ephemeral in-memory store for quick experiments).
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var dbFlag = cli.StringFlag{
	Name:  "db",
	Usage: "path to the leveldb directory backing the trie; use --memory instead for a throwaway store",
	Value: "",
}

var memoryFlag = cli.BoolFlag{
	Name:  "memory",
	Usage: "use an ephemeral in-memory store instead of --db",
}

var rootFlag = cli.StringFlag{
	Name:  "root",
	Usage: "hex root hash to open the trie at; omitted or 0x0 opens the empty trie",
	Value: "",
}

func main() {
	app := &cli.App{
		Name:  "mtt",
		Usage: "Merkle Patricia Trie toolbox",
		Flags: []cli.Flag{
			&dbFlag,
			&memoryFlag,
			&rootFlag,
		},
		Commands: []*cli.Command{
			&putCmd,
			&getCmd,
			&deleteCmd,
			&commitCmd,
			&proveCmd,
			&verifyCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
