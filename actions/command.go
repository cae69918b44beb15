// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"fmt"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/counter"
	"github.com/ava-labs/countervm/msg"
)

// FromCommand returns the action that carries [cmd].
func FromCommand(cmd counter.Command) (chain.Action, error) {
	switch c := cmd.(type) {
	case counter.Increment:
		return &Increment{}, nil
	case counter.Reset:
		return &Reset{Count: c.Count}, nil
	default:
		return nil, fmt.Errorf("%w: %T", counter.ErrUnknownCommand, cmd)
	}
}

// ParseInstantiateMsg decodes a JSON instantiate message into an action.
func ParseInstantiateMsg(raw []byte) (chain.Action, error) {
	req, err := msg.ParseInstantiate(raw)
	if err != nil {
		return nil, err
	}
	return &Instantiate{Count: req.Count}, nil
}

// ParseExecuteMsg decodes a JSON execute message into an action.
func ParseExecuteMsg(raw []byte) (chain.Action, error) {
	cmd, err := msg.ParseExecute(raw)
	if err != nil {
		return nil, err
	}
	return FromCommand(cmd)
}
