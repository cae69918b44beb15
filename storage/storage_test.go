// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/chain/chaintest"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/counter"
	"github.com/ava-labs/countervm/keys"
	"github.com/ava-labs/countervm/state"
	"github.com/ava-labs/countervm/tstate"
)

var owner = codec.CreateAddress(0, ids.ID{9, 9, 9})

func TestRecordKey(t *testing.T) {
	require := require.New(t)

	k := RecordKey()
	require.Equal(byte(recordPrefix), k[0])
	chunks, ok := keys.MaxChunks(k)
	require.True(ok)
	require.Equal(RecordChunks, chunks)
	require.Equal(k, RecordKey())
}

func TestRecordEncoding(t *testing.T) {
	require := require.New(t)

	for _, count := range []int32{0, 1, -1, math.MaxInt32, math.MinInt32} {
		s := &counter.State{Count: count, Owner: owner}
		b, err := encodeRecord(s)
		require.NoError(err)
		require.Len(b, RecordSize)
		require.True(keys.VerifyValue(RecordKey(), b))

		decoded, err := decodeRecord(b)
		require.NoError(err)
		require.Equal(s, decoded)
	}

	_, err := decodeRecord([]byte{1, 2, 3})
	require.ErrorIs(err, ErrInvalidRecord)
}

func TestStoreLoadSave(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mem := chaintest.NewInMemoryStore()
	store := NewStore(mem)

	_, err := store.Load(ctx)
	require.ErrorIs(err, counter.ErrNotFound)
	exists, err := HasState(ctx, mem)
	require.NoError(err)
	require.False(exists)

	require.NoError(store.Save(ctx, &counter.State{Count: 4, Owner: owner}))
	require.NoError(store.Save(ctx, &counter.State{Count: 5, Owner: owner}))
	s, err := store.Load(ctx)
	require.NoError(err)
	require.Equal(&counter.State{Count: 5, Owner: owner}, s)

	exists, err = HasState(ctx, mem)
	require.NoError(err)
	require.True(exists)

	s, err = NewReader(mem).Load(ctx)
	require.NoError(err)
	require.Equal(int32(5), s.Count)
}

func TestStoreRespectsScope(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	// A view that may only read the record can not create it.
	view := tstate.New(1).NewView(state.Keys{string(RecordKey()): state.Read}, map[string][]byte{})
	err := NewStore(view).Save(ctx, &counter.State{Count: 1, Owner: owner})
	require.ErrorIs(err, tstate.ErrInvalidKeyOrPermission)

	view = tstate.New(1).NewView(AllocateKeys(), map[string][]byte{})
	require.NoError(NewStore(view).Save(ctx, &counter.State{Count: 1, Owner: owner}))
}

func TestUpdateKeys(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	perms := UpdateKeys()[string(RecordKey())]
	require.True(perms.Has(state.Read | state.Write))
	require.False(perms.Has(state.Allocate))

	// The record must already exist.
	view := tstate.New(1).NewView(UpdateKeys(), map[string][]byte{})
	err := NewStore(view).Save(ctx, &counter.State{Count: 1, Owner: owner})
	require.ErrorIs(err, tstate.ErrInvalidKeyOrPermission)

	b, err := encodeRecord(&counter.State{Count: 1, Owner: owner})
	require.NoError(err)
	view = tstate.New(1).NewView(UpdateKeys(), map[string][]byte{string(RecordKey()): b})
	store := NewStore(view)
	require.NoError(store.Save(ctx, &counter.State{Count: 2, Owner: owner}))
	s, err := store.Load(ctx)
	require.NoError(err)
	require.Equal(int32(2), s.Count)
}

func TestGetStateFromState(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mem := chaintest.NewInMemoryStore()

	read := func(ctx context.Context, ks [][]byte) ([][]byte, []error) {
		values := make([][]byte, len(ks))
		errs := make([]error, len(ks))
		for i, k := range ks {
			values[i], errs[i] = mem.GetValue(ctx, k)
		}
		return values, errs
	}
	_, err := GetStateFromState(ctx, read)
	require.ErrorIs(err, counter.ErrNotFound)

	require.NoError(NewStore(mem).Save(ctx, &counter.State{Count: 7, Owner: owner}))
	s, err := GetStateFromState(ctx, read)
	require.NoError(err)
	require.Equal(int32(7), s.Count)
	require.Equal(owner, s.Owner)

	errRead := errors.New("read failed")
	_, err = GetStateFromState(ctx, func(context.Context, [][]byte) ([][]byte, []error) {
		return [][]byte{nil}, []error{errRead}
	})
	require.ErrorIs(err, errRead)
	require.NotErrorIs(err, database.ErrNotFound)
}
