// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
)

const (
	TxAccepted uint8 = 0
	TxFailed   uint8 = 1
	TxRejected uint8 = 2
)

// TxMessage reports what happened to a transaction. Rejected transactions
// never executed; failed ones executed but kept none of their writes.
type TxMessage struct {
	TxID   ids.ID
	Status uint8
	Error  []byte
	Output []byte
	Units  uint64
}

func NewTxMessage(txID ids.ID, result *chain.Result) *TxMessage {
	status := TxAccepted
	if !result.Success {
		status = TxFailed
	}
	return &TxMessage{
		TxID:   txID,
		Status: status,
		Error:  result.Error,
		Output: result.Output,
		Units:  result.Units,
	}
}

func NewRejectedTxMessage(txID ids.ID, err error) *TxMessage {
	return &TxMessage{
		TxID:   txID,
		Status: TxRejected,
		Error:  []byte(err.Error()),
	}
}

func PackTxMessage(m *TxMessage) ([]byte, error) {
	size := consts.IDLen + consts.ByteLen + codec.BytesLen(m.Error) + codec.BytesLen(m.Output) + consts.Uint64Len
	p := codec.NewWriter(size, consts.MaxInt)
	p.PackID(m.TxID)
	p.PackByte(m.Status)
	p.PackBytes(m.Error)
	p.PackBytes(m.Output)
	p.PackUint64(m.Units)
	return p.Bytes(), p.Err()
}

func UnpackTxMessage(msg []byte) (*TxMessage, error) {
	p := codec.NewReader(msg, consts.MaxInt)
	var m TxMessage
	p.UnpackID(false, &m.TxID)
	m.Status = p.UnpackByte()
	p.UnpackBytes(-1, false, &m.Error)
	p.UnpackBytes(-1, false, &m.Output)
	m.Units = p.UnpackUint64(false)
	if err := p.Err(); err != nil {
		return nil, err
	}
	if !p.Empty() {
		return nil, chain.ErrInvalidObject
	}
	if m.Status > TxRejected {
		return nil, chain.ErrInvalidObject
	}
	return &m, nil
}
