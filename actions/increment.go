// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/counter"
	"github.com/ava-labs/countervm/state"
	"github.com/ava-labs/countervm/storage"
)

var _ chain.Action = (*Increment)(nil)

// Increment adds one to the counter. Anyone may send it.
type Increment struct{}

func (*Increment) GetTypeID() uint8 {
	return IncrementID
}

func (*Increment) StateKeys(codec.Address) state.Keys {
	return storage.UpdateKeys()
}

func (*Increment) Execute(ctx context.Context, mu state.Mutable, actor codec.Address) ([]byte, error) {
	_, err := counter.Execute(ctx, storage.NewStore(mu), actor, counter.Increment{})
	return nil, err
}

func (*Increment) ComputeUnits() uint64 {
	return IncrementComputeUnits
}

func (*Increment) Size() int {
	return 0
}

func (*Increment) Marshal(*codec.Packer) {}

func UnmarshalIncrement(*codec.Packer) (chain.Action, error) {
	return &Increment{}, nil
}
