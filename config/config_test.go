// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/pubsub"
	"github.com/ava-labs/countervm/utils"
)

func writeConfig(t *testing.T, name string, contents string) string {
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(contents), 0o600))
	return p
}

func TestDefaults(t *testing.T) {
	require := require.New(t)

	c, err := Load("")
	require.NoError(err)
	require.Equal(logging.Info, c.GetLogLevel())
	require.Equal("127.0.0.1:9650", c.GetHTTPAddress())
	require.Equal(utils.ToID([]byte("countervm")), c.GetChainID())
	require.False(c.GetTraceConfig().Enabled)
	require.Equal(pubsub.NewDefaultServerConfig(), c.WebSocket)
}

func TestLoadYAML(t *testing.T) {
	require := require.New(t)

	p := writeConfig(t, "config.yaml", `
logLevel: debug
httpPort: 9999
validityWindow: 30s
allowedHosts: ["*"]
http:
  readTimeout: 5s
pebble:
  sync: false
trace:
  enabled: true
`)
	c, err := Load(p)
	require.NoError(err)
	require.Equal(logging.Debug, c.GetLogLevel())
	require.Equal(uint16(9999), c.HTTPPort)
	require.Equal(30*time.Second, c.ValidityWindow)
	require.Equal([]string{"*"}, c.AllowedHosts)
	require.Equal(5*time.Second, c.HTTP.ReadTimeout)
	require.False(c.Pebble.Sync)
	require.True(c.Trace.Enabled)

	// Untouched fields keep their defaults.
	require.Equal(DefaultBasePath, c.BasePath)
	require.Equal(uint64(1), c.BaseComputeUnits)
}

func TestLoadJSON(t *testing.T) {
	require := require.New(t)

	p := writeConfig(t, "config.json", `{"chainIDSeed": "local", "httpHost": "0.0.0.0"}`)
	c, err := Load(p)
	require.NoError(err)
	require.Equal(utils.ToID([]byte("local")), c.GetChainID())
	require.Equal("0.0.0.0:9650", c.GetHTTPAddress())
}

func TestLoadInvalid(t *testing.T) {
	require := require.New(t)

	_, err := Load(writeConfig(t, "bad.yaml", "logLevel: loud\n"))
	require.ErrorIs(err, ErrInvalidConfig)

	_, err = Load(writeConfig(t, "bad.yaml", "validityWindow: 10ms\n"))
	require.ErrorIs(err, ErrInvalidConfig)

	_, err = Load(writeConfig(t, "bad.yaml", "httpPort: [1]\n"))
	require.ErrorIs(err, ErrInvalidConfig)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(err, os.ErrNotExist)
}
