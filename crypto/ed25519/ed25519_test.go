// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ed25519

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	oed25519 "github.com/oasisprotocol/curve25519-voi/primitives/ed25519"
)

var (
	TestPrivateKey = PrivateKey(
		[PrivateKeyLen]byte{
			32, 241, 118, 222, 210, 13, 164, 128, 3, 18,
			109, 215, 176, 215, 168, 171, 194, 181, 4, 11,
			253, 199, 173, 240, 107, 148, 127, 190, 48, 164,
			12, 48, 115, 50, 124, 153, 59, 53, 196, 150, 168,
			143, 151, 235, 222, 128, 136, 161, 9, 40, 139, 85,
			182, 153, 68, 135, 62, 166, 45, 235, 251, 246, 69, 7,
		},
	)
	TestPublicKey = []byte{
		115, 50, 124, 153, 59, 53, 196, 150, 168, 143, 151, 235,
		222, 128, 136, 161, 9, 40, 139, 85, 182, 153, 68, 135,
		62, 166, 45, 235, 251, 246, 69, 7,
	}
	oed25519options = &oed25519.Options{
		Verify: oed25519.VerifyOptionsZIP_215,
	}
)

func TestGeneratePrivateKeyDifferent(t *testing.T) {
	require := require.New(t)
	a, err := GeneratePrivateKey()
	require.NoError(err)
	b, err := GeneratePrivateKey()
	require.NoError(err)
	require.NotEqual(EmptyPrivateKey, PrivateKey(a))
	require.NotEqual(a, b)
}

func TestPublicKeyValid(t *testing.T) {
	require := require.New(t)
	var expectedPubKey PublicKey
	copy(expectedPubKey[:], TestPublicKey)
	require.Equal(expectedPubKey, TestPrivateKey.PublicKey())
}

func TestSignMatchesStdLib(t *testing.T) {
	require := require.New(t)
	msg := []byte("msg")
	expected := ed25519.Sign(TestPrivateKey[:], msg)
	sig := Sign(msg, TestPrivateKey)
	require.Equal(expected, sig[:])
}

func TestVerify(t *testing.T) {
	require := require.New(t)
	msg := []byte("msg")
	sig := Sign(msg, TestPrivateKey)
	require.True(Verify(msg, TestPrivateKey.PublicKey(), sig))
	require.False(Verify([]byte("diff msg"), TestPrivateKey.PublicKey(), sig))

	sig[0]++
	require.False(Verify(msg, TestPrivateKey.PublicKey(), sig))
}

func TestPrivateKeyHex(t *testing.T) {
	require := require.New(t)
	parsed, err := PrivateKeyFromHex(TestPrivateKey.Hex())
	require.NoError(err)
	require.Equal(TestPrivateKey, parsed)

	_, err = PrivateKeyFromHex("abcd")
	require.ErrorIs(err, ErrInvalidPrivateKey)
}

func TestVerifyAgreesWithOasis(t *testing.T) {
	require := require.New(t)
	msg := make([]byte, 128)
	_, err := rand.Read(msg)
	require.NoError(err)

	sig := Sign(msg, TestPrivateKey)
	pub := TestPrivateKey.PublicKey()
	require.True(oed25519.VerifyWithOptions(pub[:], msg, sig[:], oed25519options))

	sig[1]++
	require.False(oed25519.VerifyWithOptions(pub[:], msg, sig[:], oed25519options))
	require.False(Verify(msg, pub, sig))
}

func BenchmarkVerify(b *testing.B) {
	require := require.New(b)
	b.StopTimer()
	msg := make([]byte, 128)
	_, err := rand.Read(msg)
	require.NoError(err)
	priv, err := GeneratePrivateKey()
	require.NoError(err)
	pub := priv.PublicKey()
	sig := Sign(msg, priv)
	b.StartTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		require.True(Verify(msg, pub, sig), "invalid signature")
	}
}

func BenchmarkOasisVerify(b *testing.B) {
	require := require.New(b)
	b.StopTimer()
	msg := make([]byte, 128)
	_, err := rand.Read(msg)
	require.NoError(err)
	pub, priv, err := oed25519.GenerateKey(nil)
	require.NoError(err)
	sig := oed25519.Sign(priv, msg)
	b.StartTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		require.True(oed25519.VerifyWithOptions(pub, msg, sig, oed25519options), "invalid signature")
	}
}
