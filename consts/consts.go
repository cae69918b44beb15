// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

const (
	ByteLen   = 1
	BoolLen   = 1
	IDLen     = 32
	Int32Len  = 4
	Uint16Len = 2
	Uint32Len = 4
	Int64Len  = 8
	Uint64Len = 8

	MaxUint8  = ^uint8(0)
	MaxUint16 = ^uint16(0)
	MaxUint   = ^uint(0)
	MaxInt    = int(MaxUint >> 1)

	MillisecondsPerSecond = 1000

	// NetworkSizeLimit bounds any single transaction accepted over RPC.
	NetworkSizeLimit = 2_044_723 // 1.95 MiB
)
