// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"math"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/consts"
)

func TestPackerInt32(t *testing.T) {
	for _, v := range []int32{0, 1, -1, math.MaxInt32, math.MinInt32} {
		require := require.New(t)
		wp := NewWriter(consts.Int32Len, consts.Int32Len)
		wp.PackInt32(v)
		require.NoError(wp.Err())
		require.Len(wp.Bytes(), consts.Int32Len)

		rp := NewReader(wp.Bytes(), consts.Int32Len)
		require.Equal(v, rp.UnpackInt32())
		require.NoError(rp.Err())
		require.True(rp.Empty())
	}
}

func TestPackerID(t *testing.T) {
	require := require.New(t)
	id := ids.GenerateTestID()
	wp := NewWriter(consts.IDLen, consts.IDLen)
	wp.PackID(id)
	require.NoError(wp.Err())

	var unpacked ids.ID
	rp := NewReader(wp.Bytes(), consts.IDLen)
	rp.UnpackID(true, &unpacked)
	require.NoError(rp.Err())
	require.Equal(id, unpacked)

	// Empty IDs are rejected when required
	rp = NewReader(make([]byte, consts.IDLen), consts.IDLen)
	rp.UnpackID(true, &unpacked)
	require.ErrorIs(rp.Err(), ErrFieldNotPopulated)
}

func TestPackerAddress(t *testing.T) {
	require := require.New(t)
	addr := CreateAddress(2, ids.GenerateTestID())
	wp := NewWriter(AddressLen, AddressLen)
	wp.PackAddress(addr)

	var unpacked Address
	rp := NewReader(wp.Bytes(), AddressLen)
	rp.UnpackAddress(&unpacked)
	require.NoError(rp.Err())
	require.Equal(addr, unpacked)
}

func TestPackerUnpackBytes(t *testing.T) {
	require := require.New(t)
	b := []byte{1, 2, 3, 4}
	wp := NewWriter(BytesLen(b), consts.NetworkSizeLimit)
	wp.PackBytes(b)
	require.NoError(wp.Err())
	require.Len(wp.Bytes(), BytesLen(b))

	var unpacked []byte
	rp := NewReader(wp.Bytes(), consts.NetworkSizeLimit)
	rp.UnpackBytes(len(b), true, &unpacked)
	require.NoError(rp.Err())
	require.Equal(b, unpacked)

	// Limit smaller than the packed length
	rp = NewReader(wp.Bytes(), consts.NetworkSizeLimit)
	rp.UnpackBytes(len(b)-1, true, &unpacked)
	require.Error(rp.Err())
	require.Nil(unpacked)
}

func TestPackerLimit(t *testing.T) {
	require := require.New(t)
	wp := NewWriter(0, consts.Int32Len)
	wp.PackInt32(1)
	require.NoError(wp.Err())
	wp.PackByte(1)
	require.Error(wp.Err())
}
