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

var _ chain.Action = (*Reset)(nil)

// Reset overwrites the counter. Only the owner may send it.
type Reset struct {
	Count int32 `json:"count"`
}

func (*Reset) GetTypeID() uint8 {
	return ResetID
}

func (*Reset) StateKeys(codec.Address) state.Keys {
	return storage.UpdateKeys()
}

func (r *Reset) Execute(ctx context.Context, mu state.Mutable, actor codec.Address) ([]byte, error) {
	_, err := counter.Execute(ctx, storage.NewStore(mu), actor, counter.Reset{Count: r.Count})
	return nil, err
}

func (*Reset) ComputeUnits() uint64 {
	return ResetComputeUnits
}

func (*Reset) Size() int {
	return consts.Int32Len
}

func (r *Reset) Marshal(p *codec.Packer) {
	p.PackInt32(r.Count)
}

func UnmarshalReset(p *codec.Packer) (chain.Action, error) {
	var r Reset
	r.Count = p.UnpackInt32()
	return &r, p.Err()
}
