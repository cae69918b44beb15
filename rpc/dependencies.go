// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"

	oteltrace "go.opentelemetry.io/otel/trace"
)

// VM is the node the RPC services expose.
type VM interface {
	Logger() logging.Logger
	Tracer() oteltrace.Tracer

	ChainID() ids.ID
	ValidityWindow() int64
	LastAccepted() (ids.ID, uint64)

	SubmitBytes(ctx context.Context, raw []byte) (*chain.Transaction, *chain.Result, error)
	Simulate(ctx context.Context, actor codec.Address, action chain.Action) (*chain.Result, error)
	AddResultListener(func(*chain.Transaction, *chain.Result))

	GetCount(ctx context.Context) (int32, error)
	GetOwner(ctx context.Context) (string, error)
	QueryJSON(ctx context.Context, raw []byte) ([]byte, error)
	ReadState(ctx context.Context, keys [][]byte) ([][]byte, []error)
}
