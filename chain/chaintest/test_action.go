// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chaintest

import (
	"context"
	"errors"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/state"
)

const TestActionID uint8 = 255

var (
	_ chain.Action = (*TestAction)(nil)
	_ chain.Rules  = (*TestRules)(nil)

	ErrTestActionFailed = errors.New("test action failed")
)

// TestAction writes [WriteKeys] (with the matching [WriteValues]) and then
// fails if [Fail] is set, which lets callers observe rollback.
type TestAction struct {
	NumComputeUnits uint64   `json:"computeUnits"`
	WriteKeys       [][]byte `json:"writeKeys"`
	WriteValues     [][]byte `json:"writeValues"`
	Fail            bool     `json:"fail"`
}

func (*TestAction) GetTypeID() uint8 {
	return TestActionID
}

func (t *TestAction) ComputeUnits() uint64 {
	return t.NumComputeUnits
}

func (t *TestAction) StateKeys(codec.Address) state.Keys {
	stateKeys := make(state.Keys, len(t.WriteKeys))
	for _, k := range t.WriteKeys {
		stateKeys.Add(string(k), state.All)
	}
	return stateKeys
}

func (t *TestAction) Execute(ctx context.Context, mu state.Mutable, _ codec.Address) ([]byte, error) {
	for i, k := range t.WriteKeys {
		if err := mu.Insert(ctx, k, t.WriteValues[i]); err != nil {
			return nil, err
		}
	}
	if t.Fail {
		return nil, ErrTestActionFailed
	}
	return []byte{1}, nil
}

func (t *TestAction) Size() int {
	size := consts.Uint64Len + consts.BoolLen + 2*consts.Uint16Len
	for i := range t.WriteKeys {
		size += 2*consts.Uint32Len + len(t.WriteKeys[i]) + len(t.WriteValues[i])
	}
	return size
}

func (t *TestAction) Marshal(p *codec.Packer) {
	p.PackUint64(t.NumComputeUnits)
	p.PackBool(t.Fail)
	p.PackUint16(uint16(len(t.WriteKeys)))
	for _, k := range t.WriteKeys {
		p.PackBytes(k)
	}
	p.PackUint16(uint16(len(t.WriteValues)))
	for _, v := range t.WriteValues {
		p.PackBytes(v)
	}
}

func UnmarshalTestAction(p *codec.Packer) (chain.Action, error) {
	var t TestAction
	t.NumComputeUnits = p.UnpackUint64(false)
	t.Fail = p.UnpackBool()
	numKeys := p.UnpackUint16()
	t.WriteKeys = make([][]byte, numKeys)
	for i := range t.WriteKeys {
		p.UnpackBytes(-1, true, &t.WriteKeys[i])
	}
	numValues := p.UnpackUint16()
	t.WriteValues = make([][]byte, numValues)
	for i := range t.WriteValues {
		p.UnpackBytes(-1, true, &t.WriteValues[i])
	}
	return &t, p.Err()
}

// TestRules is a fixed set of [chain.Rules].
type TestRules struct {
	ID               ids.ID
	ValidityWindow   int64
	BaseComputeUnits uint64
}

func (r *TestRules) ChainID() ids.ID { return r.ID }

func (r *TestRules) GetValidityWindow() int64 { return r.ValidityWindow }

func (r *TestRules) GetBaseComputeUnits() uint64 { return r.BaseComputeUnits }
