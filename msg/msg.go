// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package msg is the JSON form of counter requests and responses.
//
// Commands and queries are externally tagged: a single-key object whose key
// names the variant, e.g. {"reset":{"count":5}}.
package msg

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ava-labs/countervm/counter"
)

const (
	IncrementKey = "increment"
	ResetKey     = "reset"
	GetCountKey  = "get_count"
	GetOwnerKey  = "get_owner"
)

type InstantiateMsg struct {
	Count *int32 `json:"count"`
}

type ResetMsg struct {
	Count *int32 `json:"count"`
}

type empty struct{}

type CountResponse struct {
	Count int32 `json:"count"`
}

type OwnerResponse struct {
	Owner string `json:"owner"`
}

func decodeStrict(b []byte, v any) error {
	d := json.NewDecoder(bytes.NewReader(b))
	d.DisallowUnknownFields()
	if err := d.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}
	if d.More() {
		return fmt.Errorf("%w: trailing data", ErrInvalidMessage)
	}
	return nil
}

// variant splits an externally tagged value into its tag and body.
func variant(b []byte) (string, json.RawMessage, error) {
	var m map[string]json.RawMessage
	if err := decodeStrict(b, &m); err != nil {
		return "", nil, err
	}
	if len(m) != 1 {
		return "", nil, fmt.Errorf("%w: expected exactly one variant but got %d", ErrInvalidMessage, len(m))
	}
	for k, v := range m {
		return k, v, nil
	}
	return "", nil, ErrInvalidMessage
}

func ParseInstantiate(b []byte) (counter.InstantiateRequest, error) {
	var m InstantiateMsg
	if err := decodeStrict(b, &m); err != nil {
		return counter.InstantiateRequest{}, err
	}
	if m.Count == nil {
		return counter.InstantiateRequest{}, fmt.Errorf("%w: missing count", ErrInvalidMessage)
	}
	return counter.InstantiateRequest{Count: *m.Count}, nil
}

func EncodeInstantiate(req counter.InstantiateRequest) ([]byte, error) {
	return json.Marshal(InstantiateMsg{Count: &req.Count})
}

func ParseExecute(b []byte) (counter.Command, error) {
	tag, body, err := variant(b)
	if err != nil {
		return nil, err
	}
	switch tag {
	case IncrementKey:
		if err := decodeStrict(body, &empty{}); err != nil {
			return nil, err
		}
		return counter.Increment{}, nil
	case ResetKey:
		var r ResetMsg
		if err := decodeStrict(body, &r); err != nil {
			return nil, err
		}
		if r.Count == nil {
			return nil, fmt.Errorf("%w: missing count", ErrInvalidMessage)
		}
		return counter.Reset{Count: *r.Count}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, tag)
	}
}

func EncodeExecute(cmd counter.Command) ([]byte, error) {
	switch c := cmd.(type) {
	case counter.Increment:
		return json.Marshal(map[string]empty{IncrementKey: {}})
	case counter.Reset:
		return json.Marshal(map[string]ResetMsg{ResetKey: {Count: &c.Count}})
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownVariant, cmd)
	}
}

func ParseQuery(b []byte) (counter.QueryRequest, error) {
	tag, body, err := variant(b)
	if err != nil {
		return nil, err
	}
	var req counter.QueryRequest
	switch tag {
	case GetCountKey:
		req = counter.GetCount{}
	case GetOwnerKey:
		req = counter.GetOwner{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, tag)
	}
	if err := decodeStrict(body, &empty{}); err != nil {
		return nil, err
	}
	return req, nil
}

func EncodeQuery(req counter.QueryRequest) ([]byte, error) {
	switch req.(type) {
	case counter.GetCount:
		return json.Marshal(map[string]empty{GetCountKey: {}})
	case counter.GetOwner:
		return json.Marshal(map[string]empty{GetOwnerKey: {}})
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownVariant, req)
	}
}

// EncodeResponse returns the JSON body of a query answer.
func EncodeResponse(resp counter.QueryResponse) ([]byte, error) {
	switch r := resp.(type) {
	case counter.GetCountResponse:
		return json.Marshal(CountResponse{Count: r.Count})
	case counter.GetOwnerResponse:
		return json.Marshal(OwnerResponse{Owner: r.Owner})
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownVariant, resp)
	}
}

// ParseResponse decodes the JSON answer to [req].
func ParseResponse(req counter.QueryRequest, b []byte) (counter.QueryResponse, error) {
	switch req.(type) {
	case counter.GetCount:
		var r CountResponse
		if err := decodeStrict(b, &r); err != nil {
			return nil, err
		}
		return counter.GetCountResponse{Count: r.Count}, nil
	case counter.GetOwner:
		var r OwnerResponse
		if err := decodeStrict(b, &r); err != nil {
			return nil, err
		}
		return counter.GetOwnerResponse{Owner: r.Owner}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownVariant, req)
	}
}
