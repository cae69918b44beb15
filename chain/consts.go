// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "github.com/ava-labs/countervm/consts"

// BaseSize is the packed size of [Base].
const BaseSize = consts.Int64Len + consts.IDLen
