// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

// Typed is implemented by every object that is registered in a
// [TypeParser] and prefixed on the wire by its type ID.
type Typed interface {
	GetTypeID() uint8
}
