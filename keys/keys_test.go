// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package keys

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeChunks(t *testing.T) {
	require := require.New(t)
	base := []byte("counter")
	k := EncodeChunks(base, 3)
	require.True(Valid(k))
	require.Equal([]byte("counter"), base, "base key must not be modified")

	chunks, ok := MaxChunks(k)
	require.True(ok)
	require.Equal(uint16(3), chunks)

	_, ok = MaxChunks([]byte{1})
	require.False(ok)
}

func TestVerifyValue(t *testing.T) {
	tests := []struct {
		name      string
		maxChunks uint16
		valueLen  int
		valid     bool
	}{
		{"empty value", 0, 0, true},
		{"single chunk", 1, 63, true},
		{"exactly one chunk boundary", 1, 64, false},
		{"two chunks", 2, 64, true},
		{"too large", 1, 200, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			k := EncodeChunks([]byte("k"), tt.maxChunks)
			require.Equal(tt.valid, VerifyValue(k, bytes.Repeat([]byte{1}, tt.valueLen)))
		})
	}
}
