// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package integration_test

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/actions"
	"github.com/ava-labs/countervm/auth"
	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/counter"
	"github.com/ava-labs/countervm/crypto/ed25519"
	"github.com/ava-labs/countervm/rpc"
	"github.com/ava-labs/countervm/tests/integration"

	ginkgo "github.com/onsi/ginkgo/v2"
)

func TestIntegration(t *testing.T) {
	ginkgo.RunSpecs(t, "countervm integration test suites")
}

var (
	network *integration.Network
	cli     *rpc.JSONRPCClient

	ownerA chain.AuthFactory
	userB  chain.AuthFactory
)

func newFactory() chain.AuthFactory {
	priv, err := ed25519.GeneratePrivateKey()
	require.NoError(ginkgo.GinkgoT(), err)
	return auth.NewED25519Factory(priv)
}

var _ = ginkgo.BeforeSuite(func() {
	require := require.New(ginkgo.GinkgoT())

	var err error
	network, err = integration.NewNetwork(logging.NoLog{}, ids.GenerateTestID())
	require.NoError(err)
	cli = rpc.NewJSONRPCClient(network.URI())

	ownerA = newFactory()
	userB = newFactory()
})

var _ = ginkgo.AfterSuite(func() {
	require.NoError(ginkgo.GinkgoT(), network.Shutdown(context.Background()))
})

var _ = ginkgo.Describe("[Ping]", func() {
	ginkgo.It("can ping", func() {
		ok, err := cli.Ping(context.Background())
		require.NoError(ginkgo.GinkgoT(), err)
		require.True(ginkgo.GinkgoT(), ok)
	})
})

var _ = ginkgo.Describe("[Counter]", ginkgo.Ordered, func() {
	ctx := context.Background()

	getCount := func() int32 {
		count, err := cli.GetCount(ctx)
		require.NoError(ginkgo.GinkgoT(), err)
		return count
	}

	ginkgo.It("reports not found before instantiation", func() {
		_, err := cli.GetCount(ctx)
		require.ErrorIs(ginkgo.GinkgoT(), err, counter.ErrNotFound)
		_, err = cli.GetOwner(ctx)
		require.ErrorIs(ginkgo.GinkgoT(), err, counter.ErrNotFound)
	})

	ginkgo.It("instantiates with A as owner", func() {
		require := require.New(ginkgo.GinkgoT())

		reply, err := network.ConfirmTx(ctx, &actions.Instantiate{Count: 0}, ownerA)
		require.NoError(err)
		require.True(reply.Success)
		require.Zero(getCount())

		owner, err := cli.GetOwner(ctx)
		require.NoError(err)
		require.Equal(codec.MustAddressBech32(consts.HRP, ownerA.Address()), owner)
	})

	ginkgo.It("lets B increment", func() {
		require := require.New(ginkgo.GinkgoT())

		reply, err := network.ConfirmTx(ctx, &actions.Increment{}, userB)
		require.NoError(err)
		require.True(reply.Success)
		require.Equal(int32(1), getCount())
	})

	ginkgo.It("rejects a reset from B", func() {
		require := require.New(ginkgo.GinkgoT())

		reply, err := network.ConfirmTx(ctx, &actions.Reset{Count: 100}, userB)
		require.NoError(err)
		require.False(reply.Success)
		require.Equal(counter.ErrUnauthorized.Error(), reply.Error)
		require.Equal(int32(1), getCount())
	})

	ginkgo.It("lets A reset", func() {
		require := require.New(ginkgo.GinkgoT())

		reply, err := network.ConfirmTx(ctx, &actions.Reset{Count: 100}, ownerA)
		require.NoError(err)
		require.True(reply.Success)
		require.Equal(int32(100), getCount())
	})

	ginkgo.It("rejects a second instantiation", func() {
		require := require.New(ginkgo.GinkgoT())

		reply, err := network.ConfirmTx(ctx, &actions.Instantiate{Count: 7}, userB)
		require.NoError(err)
		require.False(reply.Success)
		require.Equal(actions.ErrAlreadyInstantiated.Error(), reply.Error)
		require.Equal(int32(100), getCount())
	})

	ginkgo.It("answers queries without changing state", func() {
		require := require.New(ginkgo.GinkgoT())

		_, before, err := cli.LastAccepted(ctx)
		require.NoError(err)
		for i := 0; i < 3; i++ {
			resp, err := cli.Query(ctx, []byte(`{"get_count":{}}`))
			require.NoError(err)
			require.JSONEq(`{"count":100}`, string(resp))
		}
		_, after, err := cli.LastAccepted(ctx)
		require.NoError(err)
		require.Equal(before, after)
	})

	ginkgo.It("streams outcomes over websockets", func() {
		require := require.New(ginkgo.GinkgoT())

		ws, err := rpc.NewWebSocketClient(network.URI())
		require.NoError(err)
		defer ws.Close()

		tx, err := cli.GenerateTransaction(ctx, &actions.Increment{}, ownerA)
		require.NoError(err)
		require.NoError(ws.RegisterTx(tx))
		msg, err := ws.ListenTx()
		require.NoError(err)
		require.Equal(tx.ID(), msg.TxID)
		require.Equal(rpc.TxAccepted, msg.Status)
		require.Equal(int32(101), getCount())
	})
})
