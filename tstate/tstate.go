// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/maybe"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// TState accumulates the changes of every committed [TStateView] until they
// are written to the underlying database in a single batch.
//
// TState is not safe for concurrent use. The VM executes one invocation at a
// time and owns the only reference.
type TState struct {
	changedKeys map[string]maybe.Maybe[[]byte]
	ops         int
}

// New returns a new instance of TState.
//
// [changedSize] is an estimate of the number of keys that will be changed.
func New(changedSize int) *TState {
	return &TState{
		changedKeys: make(map[string]maybe.Maybe[[]byte], changedSize),
	}
}

func (ts *TState) getChangedValue(_ context.Context, key string) ([]byte, bool, bool) {
	if v, ok := ts.changedKeys[key]; ok {
		if v.IsNothing() {
			return nil, true, false
		}
		return v.Value(), true, true
	}
	return nil, false, false
}

// OpIndex returns the number of operations committed to ts.
func (ts *TState) OpIndex() int {
	return ts.ops
}

// PendingChanges returns the number of keys that will be written by
// [WriteChanges].
func (ts *TState) PendingChanges() int {
	return len(ts.changedKeys)
}

// WriteChanges applies every committed change to [w] in ascending key order.
// It is typically called with a [database.Batch] so that the changes reach
// disk atomically.
func (ts *TState) WriteChanges(_ context.Context, w database.KeyValueWriterDeleter) error {
	keys := maps.Keys(ts.changedKeys)
	slices.Sort(keys)
	for _, k := range keys {
		v := ts.changedKeys[k]
		if v.IsNothing() {
			if err := w.Delete([]byte(k)); err != nil {
				return err
			}
			continue
		}
		if err := w.Put([]byte(k), v.Value()); err != nil {
			return err
		}
	}
	return nil
}
