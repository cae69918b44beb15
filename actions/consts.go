// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

// Note: Registry will error during initialization if a duplicate ID is assigned. We explicitly assign IDs to avoid accidental remapping.
const (
	InstantiateID uint8 = 0
	IncrementID   uint8 = 1
	ResetID       uint8 = 2
)

const (
	InstantiateComputeUnits = 1
	IncrementComputeUnits   = 1
	ResetComputeUnits       = 1
)
