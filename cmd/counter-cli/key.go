// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/akamensky/argparse"

	"github.com/ava-labs/countervm/auth"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/crypto/ed25519"
	"github.com/ava-labs/countervm/utils"
)

var _ Cmd = (*keyGenerateCmd)(nil)

type keyGenerateCmd struct {
	cmd   *argparse.Command
	flags *globalFlags
	force *bool
}

func newKeyGenerateCmd(parser *argparse.Parser, flags *globalFlags) *keyGenerateCmd {
	cmd := parser.NewCommand("key-generate", "Generates a new ed25519 private key")
	return &keyGenerateCmd{
		cmd:   cmd,
		flags: flags,
		force: cmd.Flag("f", "force", &argparse.Options{Help: "overwrite an existing key file"}),
	}
}

func (c *keyGenerateCmd) Happened() bool { return c.cmd.Happened() }

func (c *keyGenerateCmd) Run(context.Context) error {
	if _, err := os.Stat(*c.flags.key); err == nil && !*c.force {
		return fmt.Errorf("%w: %s", ErrKeyExists, *c.flags.key)
	}
	priv, err := ed25519.GeneratePrivateKey()
	if err != nil {
		return err
	}
	if err := utils.SaveBytes(*c.flags.key, priv[:]); err != nil {
		return err
	}
	pk := auth.NewED25519PrivateKey(priv)
	utils.Outf("{{green}}created key:{{/}} %s {{yellow}}address:{{/}} %s\n", *c.flags.key, codec.MustAddressBech32(consts.HRP, pk.Address))
	return nil
}

var _ Cmd = (*keyShowCmd)(nil)

type keyShowCmd struct {
	cmd   *argparse.Command
	flags *globalFlags
}

func newKeyShowCmd(parser *argparse.Parser, flags *globalFlags) *keyShowCmd {
	return &keyShowCmd{
		cmd:   parser.NewCommand("key-show", "Prints the address of the private key"),
		flags: flags,
	}
}

func (c *keyShowCmd) Happened() bool { return c.cmd.Happened() }

func (c *keyShowCmd) Run(context.Context) error {
	pk, err := loadKey(*c.flags.key)
	if err != nil {
		return err
	}
	utils.Outf("{{yellow}}address:{{/}} %s\n", codec.MustAddressBech32(consts.HRP, pk.Address))
	return nil
}

func loadKey(path string) (*auth.PrivateKey, error) {
	b, err := utils.LoadBytes(path, ed25519.PrivateKeyLen)
	if err != nil {
		return nil, err
	}
	return auth.NewED25519PrivateKey(ed25519.PrivateKey(b)), nil
}
