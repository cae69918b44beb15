// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"errors"
	"strings"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/countervm/counter"
	"github.com/ava-labs/countervm/requester"
	"github.com/ava-labs/countervm/storage"
)

func NewJSONRPCStateClient(uri string) *JSONRPCStateClient {
	uri = strings.TrimSuffix(uri, "/")
	uri += JSONRPCStateEndpoint
	req := requester.New(uri, Name)
	return &JSONRPCStateClient{requester: req}
}

type JSONRPCStateClient struct {
	requester *requester.EndpointRequester
}

func (c *JSONRPCStateClient) ReadState(ctx context.Context, keys [][]byte) ([][]byte, []error, error) {
	res := new(StateResponse)
	err := c.requester.SendRequest(ctx, "readState", StateRequest{Keys: keys}, res)
	if err != nil {
		return nil, nil, err
	}
	errs := make([]error, len(res.Errors))
	for i, msg := range res.Errors {
		switch msg {
		case "":
		case database.ErrNotFound.Error():
			errs[i] = database.ErrNotFound
		default:
			errs[i] = errors.New(msg)
		}
	}
	return res.Values, errs, nil
}

// GetState decodes the raw counter record from remote state.
func (c *JSONRPCStateClient) GetState(ctx context.Context) (*counter.State, error) {
	var callErr error
	s, err := storage.GetStateFromState(ctx, func(ctx context.Context, keys [][]byte) ([][]byte, []error) {
		values, errs, err := c.ReadState(ctx, keys)
		if err != nil {
			callErr = err
			errs = make([]error, len(keys))
			for i := range errs {
				errs[i] = err
			}
			return make([][]byte, len(keys)), errs
		}
		return values, errs
	})
	if callErr != nil {
		return nil, callErr
	}
	return s, err
}
