// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"math"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/chain/chaintest"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/counter"
	"github.com/ava-labs/countervm/state"
	"github.com/ava-labs/countervm/storage"
	"github.com/ava-labs/countervm/tstate"
)

var (
	ownerA = codec.CreateAddress(0, ids.ID{0xa})
	userB  = codec.CreateAddress(0, ids.ID{0xb})
)

func storeWith(t *testing.T, s *counter.State) *chaintest.InMemoryStore {
	mem := chaintest.NewInMemoryStore()
	if s != nil {
		require.NoError(t, storage.NewStore(mem).Save(context.Background(), s))
	}
	return mem
}

func assertState(count int32, owner codec.Address) func(context.Context, *testing.T, state.Mutable) {
	return func(ctx context.Context, t *testing.T, mu state.Mutable) {
		s, err := storage.NewStore(mu).Load(ctx)
		require.NoError(t, err)
		require.Equal(t, count, s.Count)
		require.Equal(t, owner, s.Owner)
	}
}

func TestInstantiateAction(t *testing.T) {
	ts := tstate.New(1)

	tests := []chaintest.ActionTest{
		{
			Name:      "FirstInstantiate",
			Action:    &Instantiate{Count: 42},
			State:     storeWith(t, nil),
			Actor:     ownerA,
			Assertion: assertState(42, ownerA),
		},
		{
			Name:        "AlreadyInstantiated",
			Action:      &Instantiate{Count: 0},
			State:       storeWith(t, &counter.State{Count: 3, Owner: ownerA}),
			Actor:       userB,
			ExpectedErr: ErrAlreadyInstantiated,
			Assertion:   assertState(3, ownerA),
		},
		{
			Name:        "MissingAllocatePermission",
			Action:      &Instantiate{Count: 1},
			State:       ts.NewView(storage.UpdateKeys(), map[string][]byte{}),
			Actor:       ownerA,
			ExpectedErr: tstate.ErrInvalidKeyOrPermission,
		},
		{
			Name:      "DeclaredKeys",
			Action:    &Instantiate{Count: -1},
			State:     ts.NewView((&Instantiate{}).StateKeys(ownerA), map[string][]byte{}),
			Actor:     ownerA,
			Assertion: assertState(-1, ownerA),
		},
	}
	for _, tt := range tests {
		tt.Run(context.Background(), t)
	}
}

func TestIncrementAction(t *testing.T) {
	tests := []chaintest.ActionTest{
		{
			Name:        "NotInstantiated",
			Action:      &Increment{},
			State:       storeWith(t, nil),
			Actor:       userB,
			ExpectedErr: counter.ErrNotFound,
		},
		{
			Name:      "AnyCaller",
			Action:    &Increment{},
			State:     storeWith(t, &counter.State{Count: 0, Owner: ownerA}),
			Actor:     userB,
			Assertion: assertState(1, ownerA),
		},
		{
			Name:      "Wraps",
			Action:    &Increment{},
			State:     storeWith(t, &counter.State{Count: math.MaxInt32, Owner: ownerA}),
			Actor:     ownerA,
			Assertion: assertState(math.MinInt32, ownerA),
		},
	}
	for _, tt := range tests {
		tt.Run(context.Background(), t)
	}
}

func TestResetAction(t *testing.T) {
	tests := []chaintest.ActionTest{
		{
			Name:      "Owner",
			Action:    &Reset{Count: 100},
			State:     storeWith(t, &counter.State{Count: 1, Owner: ownerA}),
			Actor:     ownerA,
			Assertion: assertState(100, ownerA),
		},
		{
			Name:        "NotOwner",
			Action:      &Reset{Count: 100},
			State:       storeWith(t, &counter.State{Count: 1, Owner: ownerA}),
			Actor:       userB,
			ExpectedErr: counter.ErrUnauthorized,
			Assertion:   assertState(1, ownerA),
		},
		{
			Name:        "NotInstantiated",
			Action:      &Reset{Count: 100},
			State:       storeWith(t, nil),
			Actor:       ownerA,
			ExpectedErr: counter.ErrNotFound,
		},
	}
	for _, tt := range tests {
		tt.Run(context.Background(), t)
	}
}

func TestActionMarshal(t *testing.T) {
	require := require.New(t)

	for _, action := range []chain.Action{
		&Instantiate{Count: math.MinInt32},
		&Increment{},
		&Reset{Count: -7},
	} {
		p := codec.NewWriter(action.Size(), action.Size())
		action.Marshal(p)
		require.NoError(p.Err())
		require.Len(p.Bytes(), action.Size())

		var (
			parsed chain.Action
			err    error
		)
		r := codec.NewReader(p.Bytes(), action.Size())
		switch action.GetTypeID() {
		case InstantiateID:
			parsed, err = UnmarshalInstantiate(r)
		case IncrementID:
			parsed, err = UnmarshalIncrement(r)
		case ResetID:
			parsed, err = UnmarshalReset(r)
		}
		require.NoError(err)
		require.Equal(action, parsed)
		require.True(r.Empty())
	}
}

func TestParseMessages(t *testing.T) {
	require := require.New(t)

	action, err := ParseInstantiateMsg([]byte(`{"count":5}`))
	require.NoError(err)
	require.Equal(&Instantiate{Count: 5}, action)

	action, err = ParseExecuteMsg([]byte(`{"increment":{}}`))
	require.NoError(err)
	require.Equal(&Increment{}, action)

	action, err = ParseExecuteMsg([]byte(`{"reset":{"count":9}}`))
	require.NoError(err)
	require.Equal(&Reset{Count: 9}, action)

	_, err = ParseExecuteMsg([]byte(`{"reset":{"count":"nine"}}`))
	require.Error(err)
}
