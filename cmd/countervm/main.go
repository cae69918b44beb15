// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/akamensky/argparse"

	"github.com/ava-labs/countervm/config"
	"github.com/ava-labs/countervm/consts"
)

func main() {
	parser := argparse.NewParser(consts.Name, "Runs a counter contract node")
	configPath := parser.String("c", "config", &argparse.Options{
		Help: "path to a YAML or JSON config file",
	})
	dataDir := parser.String("d", "data-dir", &argparse.Options{
		Help: "directory holding the database and logs (overrides the config)",
	})
	logLevel := parser.String("l", "log-level", &argparse.Options{
		Help: "log level (overrides the config)",
	})
	if err := parser.Parse(os.Args); err != nil {
		fmt.Fprint(os.Stderr, parser.Usage(err))
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if len(*dataDir) > 0 {
		cfg.DataDir = *dataDir
	}
	if len(*logLevel) > 0 {
		cfg.LogLevel = *logLevel
		if err := cfg.Verify(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
