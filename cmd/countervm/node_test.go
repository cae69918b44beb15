// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/actions"
	"github.com/ava-labs/countervm/auth"
	"github.com/ava-labs/countervm/config"
	"github.com/ava-labs/countervm/crypto/ed25519"
	"github.com/ava-labs/countervm/rpc"
)

func freePort(t *testing.T) uint16 {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return uint16(port)
}

// startNode runs a node until the returned function is called.
func startNode(t *testing.T, cfg *config.Config) (*rpc.JSONRPCClient, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- run(ctx, cfg)
	}()

	uri := fmt.Sprintf("http://%s%s/%s", cfg.GetHTTPAddress(), cfg.BasePath, rpc.Base)
	cli := rpc.NewJSONRPCClient(uri)
	require.Eventually(t, func() bool {
		ok, err := cli.Ping(context.Background())
		return err == nil && ok
	}, 10*time.Second, 50*time.Millisecond)

	return cli, func() {
		cancel()
		require.NoError(t, <-done)
	}
}

func newTestConfig(t *testing.T) *config.Config {
	cfg := config.New()
	cfg.DataDir = t.TempDir()
	cfg.HTTPPort = freePort(t)
	cfg.AllowedHosts = []string{"*"}
	cfg.LogLevel = "off"
	return cfg
}

func TestRunReturnsOnCancel(t *testing.T) {
	require := require.New(t)
	cfg := newTestConfig(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- run(ctx, cfg)
	}()

	cli := rpc.NewJSONRPCClient(fmt.Sprintf("http://%s%s/%s", cfg.GetHTTPAddress(), cfg.BasePath, rpc.Base))
	require.Eventually(func() bool {
		ok, err := cli.Ping(context.Background())
		return err == nil && ok
	}, 10*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(err)
	case <-time.After(10 * time.Second):
		require.FailNow("node did not stop after its context was canceled")
	}
}

func TestRunPersistsState(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	cfg := newTestConfig(t)

	priv, err := ed25519.GeneratePrivateKey()
	require.NoError(err)
	factory := auth.NewED25519Factory(priv)

	cli, stop := startNode(t, cfg)
	_, reply, err := cli.GenerateAndSubmit(ctx, &actions.Instantiate{Count: 41}, factory)
	require.NoError(err)
	require.True(reply.Success)
	_, reply, err = cli.GenerateAndSubmit(ctx, &actions.Increment{}, factory)
	require.NoError(err)
	require.True(reply.Success)
	stop()

	cli, stop = startNode(t, cfg)
	defer stop()
	count, err := cli.GetCount(ctx)
	require.NoError(err)
	require.Equal(int32(42), count)
}
