// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/countervm/pebble"
	"github.com/ava-labs/countervm/utils"
)

// StateDB is the namespace of the database holding contract state.
const StateDB = "statedb"

// New opens the database [namespace] under [dataDir].
func New(cfg pebble.Config, dataDir string, namespace string, reg prometheus.Registerer) (*pebble.Database, error) {
	path, err := utils.InitSubDirectory(dataDir, namespace)
	if err != nil {
		return nil, err
	}
	return pebble.New(path, cfg, prometheus.WrapRegistererWithPrefix(namespace+"_", reg))
}
