package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/jaiminpan/mt-trie/trie"
	"github.com/urfave/cli/v2"
)

var verifyCmd = cli.Command{
	Action:    verify,
	Name:      "verify",
	Usage:     "checks a proof (one hex node per line, root first) against --root for <key>",
	ArgsUsage: "<key> <proof-file>",
}

func verify(ctx *cli.Context) error {
	if ctx.Args().Len() != 2 {
		return fmt.Errorf("want <key> <proof-file>")
	}
	rootStr := strings.TrimSpace(ctx.String(rootFlag.Name))
	if rootStr == "" {
		return fmt.Errorf("--root is required")
	}
	root, err := parseHash(rootStr)
	if err != nil {
		return fmt.Errorf("--root: %w", err)
	}

	proof, err := readProofFile(ctx.Args().Get(1))
	if err != nil {
		return err
	}

	value, err := trie.VerifyProof(root, parseBytes(ctx.Args().Get(0)), proof)
	if err != nil {
		return err
	}
	if value == nil {
		fmt.Println("proof confirms absence")
		return nil
	}
	fmt.Printf("%x\n", value)
	return nil
}

func readProofFile(path string) ([][]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var proof [][]byte
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		b, err := hex.DecodeString(strings.TrimPrefix(line, "0x"))
		if err != nil {
			return nil, fmt.Errorf("malformed proof line %q: %w", line, err)
		}
		proof = append(proof, b)
	}
	return proof, scanner.Err()
}
