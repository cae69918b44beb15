// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package msg

import "errors"

var (
	ErrInvalidMessage = errors.New("invalid message")
	ErrUnknownVariant = errors.New("unknown variant")
)
