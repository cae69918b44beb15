// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/counter"
	"github.com/ava-labs/countervm/msg"
	"github.com/ava-labs/countervm/registry"
	"github.com/ava-labs/countervm/requester"
	"github.com/ava-labs/countervm/utils"
)

const waitSleep = 500 * time.Millisecond

type JSONRPCClient struct {
	requester *requester.EndpointRequester

	chainID        ids.ID
	validityWindow int64
}

// NewJSONRPCClient creates a client for the node whose routes are rooted at
// [uri] (e.g. http://127.0.0.1:9650/ext/bc/countervm).
func NewJSONRPCClient(uri string) *JSONRPCClient {
	uri = strings.TrimSuffix(uri, "/")
	uri += JSONRPCEndpoint
	req := requester.New(uri, Name)
	return &JSONRPCClient{requester: req}
}

func (cli *JSONRPCClient) Ping(ctx context.Context) (bool, error) {
	resp := new(PingReply)
	err := cli.requester.SendRequest(ctx,
		"ping",
		nil,
		resp,
	)
	return resp.Success, err
}

// Network returns the chain ID and validity window of the node. The answer is
// cached after the first successful call.
func (cli *JSONRPCClient) Network(ctx context.Context) (ids.ID, int64, error) {
	if cli.chainID != ids.Empty {
		return cli.chainID, cli.validityWindow, nil
	}

	resp := new(NetworkReply)
	err := cli.requester.SendRequest(
		ctx,
		"network",
		nil,
		resp,
	)
	if err != nil {
		return ids.Empty, 0, err
	}
	cli.chainID = resp.ChainID
	cli.validityWindow = resp.ValidityWindow
	return resp.ChainID, resp.ValidityWindow, nil
}

func (cli *JSONRPCClient) LastAccepted(ctx context.Context) (ids.ID, uint64, error) {
	resp := new(LastAcceptedReply)
	err := cli.requester.SendRequest(
		ctx,
		"lastAccepted",
		nil,
		resp,
	)
	return resp.TxID, resp.Height, err
}

func (cli *JSONRPCClient) SubmitTx(ctx context.Context, d []byte) (*SubmitTxReply, error) {
	resp := new(SubmitTxReply)
	err := cli.requester.SendRequest(
		ctx,
		"submitTx",
		&SubmitTxArgs{Tx: d},
		resp,
	)
	return resp, err
}

func (cli *JSONRPCClient) Simulate(ctx context.Context, actor codec.Address, action chain.Action) (*ResultReply, error) {
	actionBytes, err := PackAction(action)
	if err != nil {
		return nil, err
	}
	resp := new(ResultReply)
	err = cli.requester.SendRequest(
		ctx,
		"simulate",
		&SimulateArgs{
			Actor:  codec.MustAddressBech32(consts.HRP, actor),
			Action: actionBytes,
		},
		resp,
	)
	return resp, err
}

func (cli *JSONRPCClient) GetCount(ctx context.Context) (int32, error) {
	resp := new(GetCountReply)
	err := cli.requester.SendRequest(
		ctx,
		"getCount",
		nil,
		resp,
	)
	return resp.Count, err
}

func (cli *JSONRPCClient) GetOwner(ctx context.Context) (string, error) {
	resp := new(GetOwnerReply)
	err := cli.requester.SendRequest(
		ctx,
		"getOwner",
		nil,
		resp,
	)
	return resp.Owner, err
}

// Query sends a JSON query message and returns the raw JSON answer.
func (cli *JSONRPCClient) Query(ctx context.Context, raw []byte) ([]byte, error) {
	resp := new(QueryReply)
	err := cli.requester.SendRequest(
		ctx,
		"query",
		&QueryArgs{Msg: json.RawMessage(raw)},
		resp,
	)
	return resp.Response, err
}

// QueryMessage encodes [req] and decodes the answer into a
// [counter.QueryResponse].
func (cli *JSONRPCClient) QueryMessage(ctx context.Context, req counter.QueryRequest) (counter.QueryResponse, error) {
	raw, err := msg.EncodeQuery(req)
	if err != nil {
		return nil, err
	}
	resp, err := cli.Query(ctx, raw)
	if err != nil {
		return nil, err
	}
	return msg.ParseResponse(req, resp)
}

// GenerateTransaction signs [action] with [factory] using the node's chain ID
// and the longest expiry the node accepts. Two identical actions signed by
// the same key within the same second share an ID, so only the first is
// accepted.
func (cli *JSONRPCClient) GenerateTransaction(
	ctx context.Context,
	action chain.Action,
	factory chain.AuthFactory,
) (*chain.Transaction, error) {
	chainID, validityWindow, err := cli.Network(ctx)
	if err != nil {
		return nil, err
	}
	tx := chain.NewTx(
		&chain.Base{
			Timestamp: utils.UnixRMilli(-1, validityWindow),
			ChainID:   chainID,
		},
		action,
	)
	return tx.Sign(factory, registry.Action, registry.Auth)
}

// GenerateAndSubmit signs [action] and submits it, returning the executed
// transaction and the outcome of its action.
func (cli *JSONRPCClient) GenerateAndSubmit(
	ctx context.Context,
	action chain.Action,
	factory chain.AuthFactory,
) (*chain.Transaction, *SubmitTxReply, error) {
	tx, err := cli.GenerateTransaction(ctx, action, factory)
	if err != nil {
		return nil, nil, err
	}
	reply, err := cli.SubmitTx(ctx, tx.Bytes())
	if err != nil {
		return nil, nil, err
	}
	return tx, reply, nil
}

// WaitForHeight polls until the node has committed at least [height]
// transactions.
func (cli *JSONRPCClient) WaitForHeight(ctx context.Context, height uint64) error {
	for {
		_, h, err := cli.LastAccepted(ctx)
		if err != nil {
			return err
		}
		if h >= height {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitSleep):
		}
	}
}
