// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"errors"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/countervm/counter"
	"github.com/ava-labs/countervm/state"
)

var (
	_ counter.Store  = (*Store)(nil)
	_ counter.Loader = (*Reader)(nil)
)

// ReadState reads raw values for [keys] from the committed database.
type ReadState func(context.Context, [][]byte) ([][]byte, []error)

func getState(ctx context.Context, im state.Immutable) (*counter.State, error) {
	v, err := im.GetValue(ctx, RecordKey())
	if errors.Is(err, database.ErrNotFound) {
		return nil, counter.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeRecord(v)
}

// HasState returns true if the record exists in [im].
func HasState(ctx context.Context, im state.Immutable) (bool, error) {
	_, err := im.GetValue(ctx, RecordKey())
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Store persists the counter record in a [state.Mutable].
type Store struct {
	mu state.Mutable
}

func NewStore(mu state.Mutable) *Store {
	return &Store{mu: mu}
}

func (s *Store) Load(ctx context.Context) (*counter.State, error) {
	return getState(ctx, s.mu)
}

func (s *Store) Save(ctx context.Context, cs *counter.State) error {
	v, err := encodeRecord(cs)
	if err != nil {
		return err
	}
	return s.mu.Insert(ctx, RecordKey(), v)
}

// Reader loads the counter record from a [state.Immutable].
type Reader struct {
	im state.Immutable
}

func NewReader(im state.Immutable) *Reader {
	return &Reader{im: im}
}

func (r *Reader) Load(ctx context.Context) (*counter.State, error) {
	return getState(ctx, r.im)
}

// GetStateFromState loads the counter record through [f], which is how
// queries read committed state outside of a transaction.
func GetStateFromState(ctx context.Context, f ReadState) (*counter.State, error) {
	values, errs := f(ctx, [][]byte{RecordKey()})
	if errors.Is(errs[0], database.ErrNotFound) {
		return nil, counter.ErrNotFound
	}
	if errs[0] != nil {
		return nil, errs[0]
	}
	return decodeRecord(values[0])
}

type stateReader struct {
	f ReadState
}

// NewStateReader returns a [counter.Loader] backed by [f].
func NewStateReader(f ReadState) counter.Loader {
	return &stateReader{f: f}
}

func (s *stateReader) Load(ctx context.Context) (*counter.State, error) {
	return GetStateFromState(ctx, s.f)
}
