// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"time"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/countervm/chain"
)

var _ chain.Rules = (*Rules)(nil)

type Rules struct {
	chainID          ids.ID
	validityWindow   int64
	baseComputeUnits uint64
}

func NewRules(chainID ids.ID, validityWindow time.Duration, baseComputeUnits uint64) *Rules {
	return &Rules{
		chainID:          chainID,
		validityWindow:   validityWindow.Milliseconds(),
		baseComputeUnits: baseComputeUnits,
	}
}

func (r *Rules) ChainID() ids.ID { return r.chainID }

func (r *Rules) GetValidityWindow() int64 { return r.validityWindow }

func (r *Rules) GetBaseComputeUnits() uint64 { return r.baseComputeUnits }
