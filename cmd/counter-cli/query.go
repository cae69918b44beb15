// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"

	"github.com/akamensky/argparse"

	"github.com/ava-labs/countervm/rpc"
	"github.com/ava-labs/countervm/utils"
)

var _ Cmd = (*countCmd)(nil)

type countCmd struct {
	cmd   *argparse.Command
	flags *globalFlags
}

func newCountCmd(parser *argparse.Parser, flags *globalFlags) *countCmd {
	return &countCmd{
		cmd:   parser.NewCommand("count", "Prints the current count"),
		flags: flags,
	}
}

func (c *countCmd) Happened() bool { return c.cmd.Happened() }

func (c *countCmd) Run(ctx context.Context) error {
	count, err := rpc.NewJSONRPCClient(*c.flags.uri).GetCount(ctx)
	if err != nil {
		return err
	}
	utils.Outf("{{yellow}}count:{{/}} %d\n", count)
	return nil
}

var _ Cmd = (*ownerCmd)(nil)

type ownerCmd struct {
	cmd   *argparse.Command
	flags *globalFlags
}

func newOwnerCmd(parser *argparse.Parser, flags *globalFlags) *ownerCmd {
	return &ownerCmd{
		cmd:   parser.NewCommand("owner", "Prints the owner of the counter"),
		flags: flags,
	}
}

func (c *ownerCmd) Happened() bool { return c.cmd.Happened() }

func (c *ownerCmd) Run(ctx context.Context) error {
	owner, err := rpc.NewJSONRPCClient(*c.flags.uri).GetOwner(ctx)
	if err != nil {
		return err
	}
	utils.Outf("{{yellow}}owner:{{/}} %s\n", owner)
	return nil
}

var _ Cmd = (*watchCmd)(nil)

type watchCmd struct {
	cmd   *argparse.Command
	flags *globalFlags
}

func newWatchCmd(parser *argparse.Parser, flags *globalFlags) *watchCmd {
	return &watchCmd{
		cmd:   parser.NewCommand("watch", "Streams the outcome of every executed transaction"),
		flags: flags,
	}
}

func (c *watchCmd) Happened() bool { return c.cmd.Happened() }

func (c *watchCmd) Run(context.Context) error {
	ws, err := rpc.NewWebSocketClient(*c.flags.uri)
	if err != nil {
		return err
	}
	defer ws.Close()

	for {
		msg, err := ws.ListenTx()
		if err != nil {
			return err
		}
		switch msg.Status {
		case rpc.TxAccepted:
			utils.Outf("{{green}}accepted{{/}} %s\n", msg.TxID)
		case rpc.TxFailed:
			utils.Outf("{{red}}failed{{/}} %s: %s\n", msg.TxID, msg.Error)
		}
	}
}
