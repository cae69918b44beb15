// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

// Result is the outcome of executing a [Transaction]. A failed result means
// none of the action's writes were kept.
type Result struct {
	Success bool
	Error   []byte

	Output []byte

	Units uint64
}
