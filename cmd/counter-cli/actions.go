// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/akamensky/argparse"
	"github.com/manifoldco/promptui"

	"github.com/ava-labs/countervm/actions"
	"github.com/ava-labs/countervm/auth"
	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/rpc"
	"github.com/ava-labs/countervm/utils"
)

// submit signs [action] with the key in [flags] and prints its outcome.
func submit(ctx context.Context, flags *globalFlags, action chain.Action) error {
	pk, err := loadKey(*flags.key)
	if err != nil {
		return err
	}
	factory, err := auth.GetFactory(pk)
	if err != nil {
		return err
	}
	cli := rpc.NewJSONRPCClient(*flags.uri)
	_, reply, err := cli.GenerateAndSubmit(ctx, action, factory)
	if err != nil {
		return err
	}
	if !reply.Success {
		utils.Outf("{{red}}transaction failed:{{/}} %s {{yellow}}txID:{{/}} %s\n", reply.Error, reply.TxID)
		return nil
	}
	utils.Outf("{{green}}transaction succeeded{{/}} {{yellow}}txID:{{/}} %s\n", reply.TxID)
	return nil
}

func parseCount(count int) (int32, error) {
	if count < math.MinInt32 || count > math.MaxInt32 {
		return 0, fmt.Errorf("count %d does not fit in 32 bits", count)
	}
	return int32(count), nil
}

var _ Cmd = (*instantiateCmd)(nil)

type instantiateCmd struct {
	cmd   *argparse.Command
	flags *globalFlags
	count *int
}

func newInstantiateCmd(parser *argparse.Parser, flags *globalFlags) *instantiateCmd {
	cmd := parser.NewCommand("instantiate", "Creates the counter, owned by the key")
	return &instantiateCmd{
		cmd:   cmd,
		flags: flags,
		count: cmd.Int("n", "count", &argparse.Options{Help: "initial count", Default: 0}),
	}
}

func (c *instantiateCmd) Happened() bool { return c.cmd.Happened() }

func (c *instantiateCmd) Run(ctx context.Context) error {
	count, err := parseCount(*c.count)
	if err != nil {
		return err
	}
	return submit(ctx, c.flags, &actions.Instantiate{Count: count})
}

var _ Cmd = (*incrementCmd)(nil)

type incrementCmd struct {
	cmd   *argparse.Command
	flags *globalFlags
}

func newIncrementCmd(parser *argparse.Parser, flags *globalFlags) *incrementCmd {
	return &incrementCmd{
		cmd:   parser.NewCommand("increment", "Adds one to the count"),
		flags: flags,
	}
}

func (c *incrementCmd) Happened() bool { return c.cmd.Happened() }

func (c *incrementCmd) Run(ctx context.Context) error {
	return submit(ctx, c.flags, &actions.Increment{})
}

var _ Cmd = (*resetCmd)(nil)

type resetCmd struct {
	cmd   *argparse.Command
	flags *globalFlags
	count *int
	yes   *bool
}

func newResetCmd(parser *argparse.Parser, flags *globalFlags) *resetCmd {
	cmd := parser.NewCommand("reset", "Sets the count (owner only)")
	return &resetCmd{
		cmd:   cmd,
		flags: flags,
		count: cmd.Int("n", "count", &argparse.Options{Help: "new count", Required: true}),
		yes:   cmd.Flag("y", "yes", &argparse.Options{Help: "skip the confirmation prompt"}),
	}
}

func (c *resetCmd) Happened() bool { return c.cmd.Happened() }

func (c *resetCmd) Run(ctx context.Context) error {
	count, err := parseCount(*c.count)
	if err != nil {
		return err
	}
	if !*c.yes {
		if err := confirm(fmt.Sprintf("reset the count to %d", count)); err != nil {
			return err
		}
	}
	return submit(ctx, c.flags, &actions.Reset{Count: count})
}

func confirm(label string) error {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	answer, err := prompt.Run()
	if err != nil {
		// promptui reports a declined confirmation as an error
		return ErrAborted
	}
	if !strings.EqualFold(answer, "y") {
		return ErrAborted
	}
	return nil
}
