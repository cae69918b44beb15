// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"fmt"

	"github.com/near/borsh-go"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/counter"
)

// RecordSize is the length of an encoded record.
const RecordSize = 4 + codec.AddressLen

type record struct {
	Count int32
	Owner [codec.AddressLen]byte
}

func encodeRecord(s *counter.State) ([]byte, error) {
	return borsh.Serialize(record{
		Count: s.Count,
		Owner: s.Owner,
	})
}

func decodeRecord(b []byte) (*counter.State, error) {
	if len(b) != RecordSize {
		return nil, fmt.Errorf("%w: expected %d bytes but got %d", ErrInvalidRecord, RecordSize, len(b))
	}
	var r record
	if err := borsh.Deserialize(&r, b); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	return &counter.State{
		Count: r.Count,
		Owner: r.Owner,
	}, nil
}
