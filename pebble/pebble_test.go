// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"crypto/rand"
	"fmt"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

const batchSize = 100_000

func randBytes() []byte {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		panic(err)
	}
	return b
}

func newTestDB(t testing.TB, sync bool) *Database {
	cfg := NewDefaultConfig()
	cfg.Sync = sync
	db, err := New(t.TempDir(), cfg, prometheus.NewRegistry())
	require.NoError(t, err)
	return db
}

func TestGetPutDelete(t *testing.T) {
	require := require.New(t)
	db := newTestDB(t, false)
	defer func() {
		require.NoError(db.Close())
	}()

	_, err := db.Get([]byte("missing"))
	require.ErrorIs(err, database.ErrNotFound)
	has, err := db.Has([]byte("missing"))
	require.NoError(err)
	require.False(has)

	require.NoError(db.Put([]byte("k"), []byte("v")))
	v, err := db.Get([]byte("k"))
	require.NoError(err)
	require.Equal([]byte("v"), v)
	has, err = db.Has([]byte("k"))
	require.NoError(err)
	require.True(has)

	require.NoError(db.Delete([]byte("k")))
	_, err = db.Get([]byte("k"))
	require.ErrorIs(err, database.ErrNotFound)
}

func TestBatchIsAtomic(t *testing.T) {
	require := require.New(t)
	db := newTestDB(t, true)
	defer func() {
		require.NoError(db.Close())
	}()
	require.NoError(db.Put([]byte("old"), []byte{1}))

	b := db.NewBatch()
	require.NoError(b.Put([]byte("a"), []byte{2}))
	require.NoError(b.Delete([]byte("old")))
	require.Positive(b.Size())

	// Nothing is visible until the batch is written.
	_, err := db.Get([]byte("a"))
	require.ErrorIs(err, database.ErrNotFound)

	require.NoError(b.Write())
	v, err := db.Get([]byte("a"))
	require.NoError(err)
	require.Equal([]byte{2}, v)
	_, err = db.Get([]byte("old"))
	require.ErrorIs(err, database.ErrNotFound)
}

func TestBatchReplay(t *testing.T) {
	require := require.New(t)
	db := newTestDB(t, false)
	defer func() {
		require.NoError(db.Close())
	}()

	b := db.NewBatch()
	require.NoError(b.Put([]byte("a"), []byte{1}))
	require.NoError(b.Put([]byte("b"), []byte{2}))
	require.NoError(b.Delete([]byte("a")))

	mem := memdb.New()
	require.NoError(mem.Put([]byte("a"), []byte{9}))
	require.NoError(b.Replay(mem))

	_, err := mem.Get([]byte("a"))
	require.ErrorIs(err, database.ErrNotFound)
	v, err := mem.Get([]byte("b"))
	require.NoError(err)
	require.Equal([]byte{2}, v)
}

func BenchmarkBatchInsertion(b *testing.B) {
	for _, sync := range []bool{false, true} {
		b.Run(fmt.Sprintf("sync=%t", sync), func(b *testing.B) {
			// Setup DB
			b.StopTimer()
			db := newTestDB(b, sync)

			// Setup keys
			keys := make([][]byte, batchSize)
			for i := 0; i < batchSize; i++ {
				keys[i] = randBytes()
			}

			b.StartTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				batch := db.NewBatch()
				for j := 0; j < batchSize; j++ {
					if err := batch.Put(keys[j], randBytes()); err != nil {
						b.Fatal(err)
					}
				}
				if err := batch.Write(); err != nil {
					b.Fatal(err)
				}
			}
			b.StopTimer()

			if err := db.Close(); err != nil {
				b.Fatal(err)
			}
		})
	}
}
