// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"
	"go.uber.org/zap"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/pubsub"
)

// WebSocketServer accepts raw transactions from subscribers and streams the
// outcome of every executed transaction to all of them.
type WebSocketServer struct {
	vm VM
	s  *pubsub.Server
}

func NewWebSocketServer(vm VM, cfg pubsub.ServerConfig) (*WebSocketServer, *pubsub.Server) {
	w := &WebSocketServer{vm: vm}
	w.s = pubsub.New(vm.Logger(), cfg, w.MessageCallback())
	vm.AddResultListener(w.publishResult)
	return w, w.s
}

func (w *WebSocketServer) publishResult(tx *chain.Transaction, result *chain.Result) {
	msg, err := PackTxMessage(NewTxMessage(tx.ID(), result))
	if err != nil {
		w.vm.Logger().Error("failed to pack tx message",
			zap.Stringer("txID", tx.ID()),
			zap.Error(err),
		)
		return
	}
	w.s.Publish(msg)
}

// MessageCallback submits every message as a transaction. Rejections are only
// reported to the connection that sent the transaction.
func (w *WebSocketServer) MessageCallback() pubsub.Callback {
	log := w.vm.Logger()
	return func(msg []byte, c *pubsub.Connection) {
		tx, _, err := w.vm.SubmitBytes(context.TODO(), msg)
		if err == nil {
			return
		}
		txID := ids.Empty
		if tx != nil {
			txID = tx.ID()
		}
		log.Debug("failed to submit tx",
			zap.Stringer("txID", txID),
			zap.Error(err),
		)
		reply, err := PackTxMessage(NewRejectedTxMessage(txID, err))
		if err != nil {
			return
		}
		_ = c.Send(reply)
	}
}
