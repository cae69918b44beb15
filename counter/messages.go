// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package counter

// InstantiateRequest carries the starting count.
type InstantiateRequest struct {
	Count int32
}

// Command is a state-changing request. The concrete types are [Increment]
// and [Reset].
type Command interface {
	isCommand()
}

// Increment adds one to the count. Any caller may send it.
type Increment struct{}

// Reset sets the count to [Count]. Only the owner may send it.
type Reset struct {
	Count int32
}

func (Increment) isCommand() {}
func (Reset) isCommand()     {}

// QueryRequest is a read-only request. The concrete types are [GetCount]
// and [GetOwner].
type QueryRequest interface {
	isQuery()
}

type (
	GetCount struct{}
	GetOwner struct{}
)

func (GetCount) isQuery() {}
func (GetOwner) isQuery() {}

// QueryResponse is the answer to a [QueryRequest].
type QueryResponse interface {
	isQueryResponse()
}

type GetCountResponse struct {
	Count int32
}

type GetOwnerResponse struct {
	// Owner is the bech32 form of the owner address.
	Owner string
}

func (GetCountResponse) isQueryResponse() {}
func (GetOwnerResponse) isQueryResponse() {}

// Ack is the empty success response of a [Command].
type Ack struct{}
