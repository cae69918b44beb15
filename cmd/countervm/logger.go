// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"os"
	"path/filepath"

	"github.com/ava-labs/avalanchego/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ava-labs/countervm/config"
	"github.com/ava-labs/countervm/consts"
)

// newLogger writes colored logs to stderr and plain logs to a rotated file in
// [dir].
func newLogger(cfg *config.Config, dir string) logging.Logger {
	level := cfg.GetLogLevel()
	consoleCore := logging.NewWrappedCore(level, os.Stderr, logging.Colors.ConsoleEncoder())

	rw := &lumberjack.Logger{
		Filename:   filepath.Join(dir, consts.Name+".log"),
		MaxSize:    cfg.LogMaxSizeMB, // megabytes
		MaxBackups: cfg.LogMaxFiles,  // files
		Compress:   true,
	}
	fileCore := logging.NewWrappedCore(level, rw, logging.Plain.FileEncoder())
	return logging.NewLogger(logging.Plain.WrapPrefix(consts.Name), consoleCore, fileCore)
}
