// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"github.com/ava-labs/countervm/keys"
	"github.com/ava-labs/countervm/state"
)

// State
// 0x0/ (counter record)
const (
	recordPrefix = 0x0

	// RecordChunks covers the 37 byte encoded record.
	RecordChunks uint16 = 1
)

var recordName = []byte("counter")

// RecordKey is the single key the counter record lives under.
func RecordKey() []byte {
	k := make([]byte, 0, 1+len(recordName))
	k = append(k, recordPrefix)
	k = append(k, recordName...)
	return keys.EncodeChunks(k, RecordChunks)
}

// UpdateKeys is the scope of an action that reads and rewrites an existing
// record but never creates it.
func UpdateKeys() state.Keys {
	return state.Keys{string(RecordKey()): state.Read | state.Write}
}

// AllocateKeys is the scope of an action that may create the record.
func AllocateKeys() state.Keys {
	return state.Keys{string(RecordKey()): state.All}
}
