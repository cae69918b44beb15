// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/counter"
	"github.com/ava-labs/countervm/state"
	"github.com/ava-labs/countervm/storage"
)

var _ chain.Action = (*Instantiate)(nil)

// Instantiate creates the counter with the actor as its owner. It can only
// succeed once.
type Instantiate struct {
	// Count is the starting value.
	Count int32 `json:"count"`
}

func (*Instantiate) GetTypeID() uint8 {
	return InstantiateID
}

func (*Instantiate) StateKeys(codec.Address) state.Keys {
	return storage.AllocateKeys()
}

func (i *Instantiate) Execute(ctx context.Context, mu state.Mutable, actor codec.Address) ([]byte, error) {
	exists, err := storage.HasState(ctx, mu)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyInstantiated
	}
	return nil, counter.Instantiate(ctx, storage.NewStore(mu), actor, counter.InstantiateRequest{Count: i.Count})
}

func (*Instantiate) ComputeUnits() uint64 {
	return InstantiateComputeUnits
}

func (*Instantiate) Size() int {
	return consts.Int32Len
}

func (i *Instantiate) Marshal(p *codec.Packer) {
	p.PackInt32(i.Count)
}

func UnmarshalInstantiate(p *codec.Packer) (chain.Action, error) {
	var i Instantiate
	i.Count = p.UnpackInt32()
	return &i, p.Err()
}
