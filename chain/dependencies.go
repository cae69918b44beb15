// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/state"
)

type (
	ActionRegistry = *codec.TypeParser[Action]
	AuthRegistry   = *codec.TypeParser[Auth]
)

// Rules are the execution parameters of the chain.
type Rules interface {
	ChainID() ids.ID

	// GetValidityWindow is the maximum amount of time (in ms) a transaction
	// may be submitted before its expiry.
	GetValidityWindow() int64
	GetBaseComputeUnits() uint64
}

type Action interface {
	codec.Typed

	// ComputeUnits is the amount of compute required to call [Execute]. This is used to determine
	// whether the [Action] can be included in a given block and to compute the required fee to execute.
	ComputeUnits() uint64

	// StateKeys is a full enumeration of all database keys that could be touched during execution
	// of an [Action]. This is used to prefetch state before execution.
	//
	// All keys specified must be suffixed with the number of chunks that could ever be read from that
	// key (formatted as a big-endian uint16).
	StateKeys(actor codec.Address) state.Keys

	// Execute actually runs the [Action]. Any state changes that the [Action] performs should
	// be done here.
	//
	// If any keys are touched during [Execute] that are not specified in [StateKeys], or an error
	// is returned, the transaction reverts and the error is recorded in the [Result].
	Execute(ctx context.Context, mu state.Mutable, actor codec.Address) (output []byte, err error)

	// Size is the number of bytes it takes to represent this [Action]. This is used to preallocate
	// memory during encoding and to charge bandwidth fees.
	Size() int

	// Marshal encodes an [Action] as bytes.
	Marshal(p *codec.Packer)
}

type Auth interface {
	codec.Typed

	// ComputeUnits is the amount of compute required to call [Verify].
	ComputeUnits() uint64

	// Verify is run concurrently during transaction verification. It may not be run by the time
	// a transaction is executed but will be checked before a [Transaction] is considered successful.
	// Verify is typically used to perform cryptographic operations.
	Verify(ctx context.Context, msg []byte) error

	// Actor is the identity that performs every [Action] in the transaction.
	// It is derived from the verified credential and can not be spoofed by the
	// action's own fields.
	Actor() codec.Address

	// Size is the number of bytes it takes to represent this [Auth].
	Size() int

	// Marshal encodes an [Auth] as bytes.
	Marshal(p *codec.Packer)
}

type AuthFactory interface {
	// Sign is used by helpers, auth object should store internally to be ready for marshaling
	Sign(msg []byte) (Auth, error)

	// Address returns the identity that signatures from this factory resolve to.
	Address() codec.Address
}
