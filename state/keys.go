// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

const (
	Read     Permissions = 1
	Allocate             = 1<<1 | Read
	Write                = 1<<2 | Read

	None Permissions = 0
	All              = Read | Allocate | Write
)

// Keys maps every state key an action may touch to the permissions it needs.
// Allocate is required to create a key that does not exist yet.
type Keys map[string]Permissions

// Permissions is a bitmask of Read, Allocate and Write.
type Permissions byte

// Add takes the union of [permission] and any permission already held for
// [name], so a later declaration never narrows an earlier one.
func (k Keys) Add(name string, permission Permissions) {
	k[name] |= permission
}

// Has returns true if [p] has all the permissions that are contained in require
func (p Permissions) Has(require Permissions) bool {
	return require&^p == 0
}

func (p Permissions) String() string {
	switch p {
	case None:
		return "none"
	case Read:
		return "read"
	case Allocate:
		return "allocate"
	case Write:
		return "write"
	case All:
		return "all"
	default:
		return "read|allocate|write subset"
	}
}
