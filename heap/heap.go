// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package heap orders items by expiry.
package heap

import "container/heap"

var _ heap.Interface = (*entries[int])(nil)

type Entry[T any] struct {
	Expiry int64
	Item   T
}

// Heap yields the entry with the earliest expiry first.
//
// Heap is not safe for concurrent use.
type Heap[T any] struct {
	entries entries[T]
}

func New[T any](size int) *Heap[T] {
	return &Heap[T]{entries: make(entries[T], 0, size)}
}

func (h *Heap[T]) Len() int { return len(h.entries) }

func (h *Heap[T]) Push(e *Entry[T]) {
	heap.Push(&h.entries, e)
}

// Peek returns the earliest entry without removing it, or nil if [h] is empty.
func (h *Heap[T]) Peek() *Entry[T] {
	if len(h.entries) == 0 {
		return nil
	}
	return h.entries[0]
}

// Pop removes and returns the earliest entry, or nil if [h] is empty.
func (h *Heap[T]) Pop() *Entry[T] {
	if len(h.entries) == 0 {
		return nil
	}
	return heap.Pop(&h.entries).(*Entry[T])
}

type entries[T any] []*Entry[T]

func (es entries[T]) Len() int { return len(es) }

func (es entries[T]) Less(i, j int) bool { return es[i].Expiry < es[j].Expiry }

func (es entries[T]) Swap(i, j int) { es[i], es[j] = es[j], es[i] }

func (es *entries[T]) Push(x any) {
	*es = append(*es, x.(*Entry[T]))
}

func (es *entries[T]) Pop() any {
	old := *es
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*es = old[:n-1]
	return e
}
