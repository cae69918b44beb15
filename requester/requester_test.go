// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package requester

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/server"
)

var errEcho = errors.New("echo failed")

type echoService struct{}

type EchoArgs struct {
	Value string `json:"value"`
}

type EchoReply struct {
	Value string `json:"value"`
}

func (*echoService) Echo(_ *http.Request, args *EchoArgs, reply *EchoReply) error {
	if args.Value == "" {
		return errEcho
	}
	reply.Value = args.Value
	return nil
}

func newEchoServer(t *testing.T) *httptest.Server {
	handler, err := server.NewHandler(&echoService{}, "echo")
	require.NoError(t, err)
	s := httptest.NewServer(handler)
	t.Cleanup(s.Close)
	return s
}

func TestSendRequest(t *testing.T) {
	require := require.New(t)
	s := newEchoServer(t)

	r := New(s.URL, "echo")
	reply := new(EchoReply)
	require.NoError(r.SendRequest(context.Background(), "echo", &EchoArgs{Value: "hi"}, reply))
	require.Equal("hi", reply.Value)
}

func TestSendRequestError(t *testing.T) {
	require := require.New(t)
	s := newEchoServer(t)

	r := New(s.URL, "echo")
	err := r.SendRequest(context.Background(), "echo", &EchoArgs{}, new(EchoReply))
	require.ErrorIs(err, errEcho)

	var rpcErr *RPCError
	require.ErrorAs(err, &rpcErr)
	require.Equal(errEcho.Error(), rpcErr.Message)
}

func TestSendRequestStatus(t *testing.T) {
	s := httptest.NewServer(http.NotFoundHandler())
	defer s.Close()

	err := New(s.URL, "echo").SendRequest(context.Background(), "echo", &EchoArgs{}, new(EchoReply))
	require.ErrorIs(t, err, ErrUnexpectedStatus)
}
