// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddPermissions(t *testing.T) {
	tests := []struct {
		name     string
		initial  Permissions
		added    Permissions
		canRead  bool
		canAlloc bool
		canWrite bool
	}{
		{
			name:     "read then write",
			initial:  Read,
			added:    Write,
			canRead:  true,
			canAlloc: false,
			canWrite: true,
		},
		{
			name:     "allocate only",
			initial:  None,
			added:    Allocate,
			canRead:  true,
			canAlloc: true,
			canWrite: false,
		},
		{
			name:     "adding none keeps existing",
			initial:  All,
			added:    None,
			canRead:  true,
			canAlloc: true,
			canWrite: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			keys := Keys{"key": tt.initial}
			keys.Add("key", tt.added)

			perm := keys["key"]
			require.Equal(tt.canRead, perm.Has(Read))
			require.Equal(tt.canAlloc, perm.Has(Allocate))
			require.Equal(tt.canWrite, perm.Has(Write))
		})
	}
}

func TestHasPermissions(t *testing.T) {
	require := require.New(t)
	require.True(All.Has(Write))
	require.True(Write.Has(Read))
	require.False(Read.Has(Write))
	require.False(Write.Has(Allocate))
	require.True(None.Has(None))
}
