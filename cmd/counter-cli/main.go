// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/akamensky/argparse"

	"github.com/ava-labs/countervm/utils"
)

const (
	defaultURI     = "http://127.0.0.1:9650/ext/bc/countervm"
	defaultKeyPath = "counter.pk"
)

// Cmd is a single counter-cli subcommand.
type Cmd interface {
	Happened() bool
	Run(ctx context.Context) error
}

type globalFlags struct {
	uri *string
	key *string
}

func main() {
	parser := argparse.NewParser("counter-cli", "Interacts with a counter contract node")
	flags := &globalFlags{
		uri: parser.String("u", "uri", &argparse.Options{
			Help:    "base URI of the node's routes",
			Default: defaultURI,
		}),
		key: parser.String("k", "key", &argparse.Options{
			Help:    "path of the private key file",
			Default: defaultKeyPath,
		}),
	}

	cmds := []Cmd{
		newKeyGenerateCmd(parser, flags),
		newKeyShowCmd(parser, flags),
		newInstantiateCmd(parser, flags),
		newIncrementCmd(parser, flags),
		newResetCmd(parser, flags),
		newCountCmd(parser, flags),
		newOwnerCmd(parser, flags),
		newWatchCmd(parser, flags),
	}
	if err := parser.Parse(os.Args); err != nil {
		fmt.Fprint(os.Stderr, parser.Usage(err))
		os.Exit(1)
	}

	ctx := context.Background()
	for _, cmd := range cmds {
		if !cmd.Happened() {
			continue
		}
		if err := cmd.Run(ctx); err != nil {
			utils.Outf("{{red}}error: {{/}}%+v\n", err)
			os.Exit(1)
		}
		return
	}
	fmt.Fprint(os.Stderr, parser.Usage(nil))
	os.Exit(1)
}
