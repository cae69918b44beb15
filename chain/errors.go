// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "errors"

var (
	// Parsing
	ErrInvalidObject   = errors.New("invalid object")
	ErrTxExtraBytes    = errors.New("transaction has extra bytes")
	ErrInvalidKeyValue = errors.New("invalid key or value")

	// Verification
	ErrMisalignedTime    = errors.New("misaligned time")
	ErrTimestampTooLate  = errors.New("timestamp too late")
	ErrTimestampTooEarly = errors.New("timestamp too early")
	ErrInvalidChainID    = errors.New("invalid chain id")
	ErrDuplicateTx       = errors.New("duplicate transaction")
	ErrAuthFailed        = errors.New("auth failed")
)
