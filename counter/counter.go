// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package counter

import (
	"context"
	"fmt"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
)

// Instantiate records [caller] as the owner with the requested starting count.
func Instantiate(ctx context.Context, store Store, caller codec.Address, req InstantiateRequest) error {
	return store.Save(ctx, &State{
		Count: req.Count,
		Owner: caller,
	})
}

// Execute applies [cmd] on behalf of [caller]. Nothing is saved unless the
// command succeeds.
func Execute(ctx context.Context, store Store, caller codec.Address, cmd Command) (Ack, error) {
	s, err := store.Load(ctx)
	if err != nil {
		return Ack{}, err
	}
	switch c := cmd.(type) {
	case Increment:
		// Wraps from MaxInt32 to MinInt32.
		s.Count++
	case Reset:
		if caller != s.Owner {
			return Ack{}, ErrUnauthorized
		}
		s.Count = c.Count
	default:
		return Ack{}, fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}
	if err := store.Save(ctx, s); err != nil {
		return Ack{}, err
	}
	return Ack{}, nil
}

// Query answers [req] without modifying state.
func Query(ctx context.Context, loader Loader, req QueryRequest) (QueryResponse, error) {
	s, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	switch req.(type) {
	case GetCount:
		return GetCountResponse{Count: s.Count}, nil
	case GetOwner:
		owner, err := codec.AddressBech32(consts.HRP, s.Owner)
		if err != nil {
			return nil, err
		}
		return GetOwnerResponse{Owner: owner}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownQuery, req)
	}
}
