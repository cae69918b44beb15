// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

const (
	Name = "countervm"

	// Base is the route prefix of every endpoint, relative to the HTTP
	// server base path.
	Base = "bc/" + Name

	JSONRPCEndpoint      = "/rpc"
	JSONRPCStateEndpoint = "/state"
	WebSocketEndpoint    = "/ws"
)
