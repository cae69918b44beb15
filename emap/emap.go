// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package emap

import (
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/set"

	"github.com/ava-labs/countervm/heap"
)

type bucket struct {
	t     int64    // Timestamp
	items []ids.ID // Array of AvalancheGo ids
}

// Item defines an interface accepted by EMap
type Item interface {
	ID() ids.ID    // method for returning an id of the item
	Expiry() int64 // method for returing this items timestamp
}

// EMap is an eviction map that remembers item IDs until their expiry passes.
// It is used to reject transactions that were already executed while they
// are still valid.
//
// This data structure does not perform any synchronization and is not
// safe to use concurrently without external locking.
type EMap[T Item] struct {
	bh    *heap.Heap[*bucket]
	seen  set.Set[ids.ID]   // Stores a set of unique tx ids
	times map[int64]*bucket // Uses timestamp as keys to map to buckets of ids.
}

// NewEMap returns a pointer to a instance of an empty EMap struct.
func NewEMap[T Item]() *EMap[T] {
	return &EMap[T]{
		seen:  set.Set[ids.ID]{},
		times: make(map[int64]*bucket),
		bh:    heap.New[*bucket](120),
	}
}

// Add records [item] until its expiry. It returns false if [item] was
// already present.
func (e *EMap[T]) Add(item T) bool {
	id := item.ID()
	if e.seen.Contains(id) {
		return false
	}
	e.seen.Add(id)

	t := reducePrecision(item.Expiry())
	// Check if bucket with time already exists
	if b, ok := e.times[t]; ok {
		b.items = append(b.items, id)
		return true
	}

	// Create new bucket
	b := &bucket{
		t:     t,
		items: []ids.ID{id},
	}
	e.times[t] = b
	e.bh.Push(&heap.Entry[*bucket]{Expiry: t, Item: b})
	return true
}

// SetMin removes all buckets with a lower
// timestamp than [t] from e's bucketHeap.
func (e *EMap[T]) SetMin(t int64) []ids.ID {
	t = reducePrecision(t)
	evicted := []ids.ID{}
	for {
		b := e.bh.Peek()
		if b == nil || b.Expiry >= t {
			break
		}
		e.bh.Pop()
		for _, id := range b.Item.items {
			e.seen.Remove(id)
			evicted = append(evicted, id)
		}
		// Delete from times map
		delete(e.times, b.Expiry)
	}
	return evicted
}

// Has returns true if [item] has been added and not yet evicted.
func (e *EMap[T]) Has(item T) bool {
	return e.seen.Contains(item.ID())
}

// Len is the number of items currently remembered.
func (e *EMap[T]) Len() int {
	return e.seen.Len()
}
