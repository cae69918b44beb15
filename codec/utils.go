// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import "github.com/ava-labs/countervm/consts"

// BytesLen is the packed size of [msg] including its length prefix.
func BytesLen(msg []byte) int {
	return consts.Uint32Len + len(msg)
}
