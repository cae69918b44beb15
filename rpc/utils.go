// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/registry"
)

// PackAction encodes [action] with its type prefix, the same way it appears
// inside a transaction.
func PackAction(action chain.Action) ([]byte, error) {
	p := codec.NewWriter(consts.ByteLen+action.Size(), consts.NetworkSizeLimit)
	p.PackByte(action.GetTypeID())
	action.Marshal(p)
	return p.Bytes(), p.Err()
}

// UnpackAction decodes an action produced by [PackAction].
func UnpackAction(b []byte) (chain.Action, error) {
	p := codec.NewReader(b, consts.NetworkSizeLimit)
	action, err := registry.Action.Unmarshal(p)
	if err != nil {
		return nil, err
	}
	if !p.Empty() {
		return nil, ErrTxExtraBytes
	}
	return action, nil
}
