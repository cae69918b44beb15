// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package counter is a counter contract: a signed 32-bit value anyone may
// increment and only its owner may reset.
//
// Handlers take their storage explicitly and hold no state between calls.
// Atomicity is provided by the caller, which must discard every write made
// by a handler that returns an error.
package counter

import (
	"context"

	"github.com/ava-labs/countervm/codec"
)

// State is the persisted record of the contract.
//
// Owner is written once by [Instantiate] and never changes.
type State struct {
	Count int32         `json:"count"`
	Owner codec.Address `json:"owner"`
}

// Loader reads the persisted [State].
type Loader interface {
	// Load returns [ErrNotFound] if the contract was never instantiated.
	Load(ctx context.Context) (*State, error)
}

// Store reads and overwrites the persisted [State].
type Store interface {
	Loader

	// Save replaces the persisted record with [s].
	Save(ctx context.Context, s *State) error
}
