// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/crypto/ed25519"
)

// PrivateKey is a key of any supported auth type together with the address
// it signs for.
type PrivateKey struct {
	Address codec.Address
	Bytes   []byte
}

// NewED25519PrivateKey wraps [priv] as a [PrivateKey].
func NewED25519PrivateKey(priv ed25519.PrivateKey) *PrivateKey {
	return &PrivateKey{
		Address: NewED25519Address(priv.PublicKey()),
		Bytes:   priv[:],
	}
}

// GetFactory returns the [chain.AuthFactory] for a given private key.
func GetFactory(pk *PrivateKey) (chain.AuthFactory, error) {
	switch pk.Address[0] {
	case ED25519ID:
		if len(pk.Bytes) != ed25519.PrivateKeyLen {
			return nil, ErrInvalidKeyType
		}
		return NewED25519Factory(ed25519.PrivateKey(pk.Bytes)), nil
	default:
		return nil, ErrInvalidKeyType
	}
}
