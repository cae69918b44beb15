// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pubsub

import (
	"sync"

	"github.com/ava-labs/avalanchego/utils/set"
)

// subscribers tracks the connections that receive published messages.
type subscribers struct {
	lock  sync.RWMutex
	conns set.Set[*Connection]
}

func (s *subscribers) add(c *Connection) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.conns.Add(c)
}

func (s *subscribers) remove(c *Connection) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.conns.Remove(c)
}

func (s *subscribers) len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.conns.Len()
}

// broadcast queues [msg] on every subscriber and returns how many of them
// had no room for it.
func (s *subscribers) broadcast(msg []byte) int {
	s.lock.RLock()
	defer s.lock.RUnlock()

	dropped := 0
	for c := range s.conns {
		if !c.Send(msg) {
			dropped++
		}
	}
	return dropped
}
