// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package integration

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/pubsub"
	"github.com/ava-labs/countervm/rpc"
	"github.com/ava-labs/countervm/server"
	"github.com/ava-labs/countervm/trace"
	"github.com/ava-labs/countervm/vm"
)

const (
	validityWindow  = time.Minute
	shutdownTimeout = 5 * time.Second
)

// Network is a single node serving its routes on a local port.
type Network struct {
	vm  *vm.VM
	srv server.Server
	uri string
}

// NewNetwork starts a node backed by an in-memory database.
func NewNetwork(log logging.Logger, chainID ids.ID) (*Network, error) {
	tracer, err := trace.New(&trace.Config{})
	if err != nil {
		return nil, err
	}
	node, err := vm.New(
		log,
		tracer,
		prometheus.NewRegistry(),
		memdb.New(),
		vm.NewRules(chainID, validityWindow, 1),
	)
	if err != nil {
		return nil, err
	}
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}
	srv := server.New("/ext", log, listener, server.NewDefaultHTTPConfig(), []string{"*"}, []string{"*"}, shutdownTimeout)
	if err := rpc.Register(srv, node, pubsub.NewDefaultServerConfig()); err != nil {
		return nil, err
	}
	go func() {
		_ = srv.Dispatch()
	}()
	return &Network{
		vm:  node,
		srv: srv,
		uri: fmt.Sprintf("http://%s/ext/%s", srv.Addr(), rpc.Base),
	}, nil
}

func (n *Network) URI() string { return n.uri }

// ConfirmTx signs and submits [action], returning the outcome once the node
// has executed it.
func (n *Network) ConfirmTx(ctx context.Context, action chain.Action, factory chain.AuthFactory) (*rpc.SubmitTxReply, error) {
	cli := rpc.NewJSONRPCClient(n.uri)
	_, reply, err := cli.GenerateAndSubmit(ctx, action, factory)
	return reply, err
}

func (n *Network) Shutdown(ctx context.Context) error {
	if err := n.srv.Shutdown(); err != nil {
		return err
	}
	return n.vm.Shutdown(ctx)
}
