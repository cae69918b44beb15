// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"encoding/json"
	"net/http"

	"github.com/ava-labs/avalanchego/ids"
	"go.uber.org/zap"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
)

type JSONRPCServer struct {
	vm VM
}

func NewJSONRPCServer(vm VM) *JSONRPCServer {
	return &JSONRPCServer{vm}
}

type PingReply struct {
	Success bool `json:"success"`
}

func (j *JSONRPCServer) Ping(_ *http.Request, _ *struct{}, reply *PingReply) (err error) {
	j.vm.Logger().Info("ping")
	reply.Success = true
	return nil
}

type NetworkReply struct {
	ChainID        ids.ID `json:"chainId"`
	ValidityWindow int64  `json:"validityWindow"`
}

func (j *JSONRPCServer) Network(_ *http.Request, _ *struct{}, reply *NetworkReply) (err error) {
	reply.ChainID = j.vm.ChainID()
	reply.ValidityWindow = j.vm.ValidityWindow()
	return nil
}

type LastAcceptedReply struct {
	Height uint64 `json:"height"`
	TxID   ids.ID `json:"txId"`
}

func (j *JSONRPCServer) LastAccepted(_ *http.Request, _ *struct{}, reply *LastAcceptedReply) error {
	reply.TxID, reply.Height = j.vm.LastAccepted()
	return nil
}

type SubmitTxArgs struct {
	Tx []byte `json:"tx"`
}

// ResultReply is the outcome of an executed (or simulated) action. Error holds
// the reason the action failed, in which case none of its writes were kept.
type ResultReply struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Output  []byte `json:"output"`
	Units   uint64 `json:"units"`
}

type SubmitTxReply struct {
	TxID ids.ID `json:"txId"`
	ResultReply
}

func (j *JSONRPCServer) SubmitTx(
	req *http.Request,
	args *SubmitTxArgs,
	reply *SubmitTxReply,
) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.SubmitTx")
	defer span.End()

	tx, result, err := j.vm.SubmitBytes(ctx, args.Tx)
	if err != nil {
		j.vm.Logger().Debug("rejected transaction", zap.Error(err))
		return err
	}
	reply.TxID = tx.ID()
	reply.Success = result.Success
	reply.Error = string(result.Error)
	reply.Output = result.Output
	reply.Units = result.Units
	return nil
}

type SimulateArgs struct {
	Actor  string `json:"actor"`
	Action []byte `json:"action"`
}

func (j *JSONRPCServer) Simulate(
	req *http.Request,
	args *SimulateArgs,
	reply *ResultReply,
) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.Simulate")
	defer span.End()

	actor, err := codec.ParseAddressBech32(consts.HRP, args.Actor)
	if err != nil {
		return err
	}
	action, err := UnpackAction(args.Action)
	if err != nil {
		return err
	}
	result, err := j.vm.Simulate(ctx, actor, action)
	if err != nil {
		return err
	}
	reply.Success = result.Success
	reply.Error = string(result.Error)
	reply.Output = result.Output
	reply.Units = result.Units
	return nil
}

type GetCountReply struct {
	Count int32 `json:"count"`
}

func (j *JSONRPCServer) GetCount(req *http.Request, _ *struct{}, reply *GetCountReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.GetCount")
	defer span.End()

	count, err := j.vm.GetCount(ctx)
	if err != nil {
		return err
	}
	reply.Count = count
	return nil
}

type GetOwnerReply struct {
	Owner string `json:"owner"`
}

func (j *JSONRPCServer) GetOwner(req *http.Request, _ *struct{}, reply *GetOwnerReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.GetOwner")
	defer span.End()

	owner, err := j.vm.GetOwner(ctx)
	if err != nil {
		return err
	}
	reply.Owner = owner
	return nil
}

type QueryArgs struct {
	Msg json.RawMessage `json:"msg"`
}

type QueryReply struct {
	Response json.RawMessage `json:"response"`
}

// Query answers a JSON query message such as {"get_count":{}}.
func (j *JSONRPCServer) Query(req *http.Request, args *QueryArgs, reply *QueryReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.Query")
	defer span.End()

	resp, err := j.vm.QueryJSON(ctx, args.Msg)
	if err != nil {
		return err
	}
	reply.Response = resp
	return nil
}
