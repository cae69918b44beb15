// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"github.com/ava-labs/countervm/pubsub"
	"github.com/ava-labs/countervm/server"
)

// Register adds the JSON-RPC, state and websocket services of [vm] to [s].
func Register(s server.PathAdder, vm VM, wsConfig pubsub.ServerConfig) error {
	jsonRPCHandler, err := server.NewHandler(NewJSONRPCServer(vm), Name)
	if err != nil {
		return err
	}
	if err := s.AddRoute(jsonRPCHandler, Base, JSONRPCEndpoint); err != nil {
		return err
	}

	stateHandler, err := server.NewHandler(NewJSONRPCStateServer(vm), Name)
	if err != nil {
		return err
	}
	if err := s.AddRoute(stateHandler, Base, JSONRPCStateEndpoint); err != nil {
		return err
	}

	_, wsHandler := NewWebSocketServer(vm, wsConfig)
	return s.AddRoute(wsHandler, Base, WebSocketEndpoint)
}
