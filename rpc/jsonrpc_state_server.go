// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"net/http"

	oteltrace "go.opentelemetry.io/otel/trace"
)

type stateReader interface {
	Tracer() oteltrace.Tracer
	ReadState(ctx context.Context, keys [][]byte) ([][]byte, []error)
}

type StateRequest struct {
	Keys [][]byte `json:"keys"`
}

// StateResponse carries one value and one error message per requested key.
// An empty error message means the value was found.
type StateResponse struct {
	Values [][]byte `json:"values"`
	Errors []string `json:"errors"`
}

func NewJSONRPCStateServer(stateReader stateReader) *JSONRPCStateServer {
	return &JSONRPCStateServer{
		stateReader: stateReader,
	}
}

// JSONRPCStateServer gives direct read access to the vm state
type JSONRPCStateServer struct {
	stateReader
}

func (s *JSONRPCStateServer) ReadState(req *http.Request, args *StateRequest, res *StateResponse) error {
	ctx, span := s.stateReader.Tracer().Start(req.Context(), "Server.ReadState")
	defer span.End()

	values, errs := s.stateReader.ReadState(ctx, args.Keys)
	res.Values = values
	res.Errors = make([]string, len(errs))
	for i, err := range errs {
		if err != nil {
			res.Errors[i] = err.Error()
		}
	}
	return nil
}
