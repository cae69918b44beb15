// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pubsub

import (
	"net/http"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type ServerConfig struct {
	// Size of the ws read buffer
	ReadBufferSize int `json:"readBufferSize" yaml:"readBufferSize"`
	// Size of the ws write buffer
	WriteBufferSize int `json:"writeBufferSize" yaml:"writeBufferSize"`
	// Maximum number of pending messages to send to a peer.
	MaxPendingMessages int `json:"maxPendingMessages" yaml:"maxPendingMessages"`
	// Maximum message size in bytes allowed from peer.
	MaxReadMessageSize int `json:"maxReadMessageSize" yaml:"maxReadMessageSize"`
	// Time allowed to write a message to the peer.
	WriteWait time.Duration `json:"writeWait" yaml:"writeWait"`
	// Time allowed to read the next pong message from the peer.
	PongWait time.Duration `json:"pongWait" yaml:"pongWait"`
}

func NewDefaultServerConfig() ServerConfig {
	return ServerConfig{
		ReadBufferSize:     readBufferSize,
		WriteBufferSize:    writeBufferSize,
		MaxPendingMessages: maxPendingMessages,
		MaxReadMessageSize: maxMessageSize,
		WriteWait:          writeWait,
		PongWait:           pongWait,
	}
}

// Callback is invoked for every message read from a connection.
type Callback func([]byte, *Connection)

// Server upgrades HTTP requests to websocket connections and keeps track of
// them so messages can be published to every subscriber.
type Server struct {
	log      logging.Logger
	config   ServerConfig
	upgrader websocket.Upgrader
	callback Callback
	subs     subscribers
}

// New returns a new Server instance. [callback] is called for every message
// a connection sends if not nil.
func New(log logging.Logger, config ServerConfig, callback Callback) *Server {
	return &Server{
		log:    log,
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			// Origins are enforced by the HTTP server in front of this handler.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		callback: callback,
	}
}

// ServeHTTP adds a connection to the server, and starts go routines for
// reading and writing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	wsConn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug("failed to upgrade",
			zap.Error(err),
		)
		return
	}
	conn := &Connection{
		s:    s,
		conn: wsConn,
		send: make(chan []byte, s.config.MaxPendingMessages),
	}
	conn.active.Store(true)
	s.subs.add(conn)

	go conn.writePump()
	go conn.readPump()
}

// Publish queues [msg] on every active connection. Connections with too many
// pending messages miss it.
func (s *Server) Publish(msg []byte) {
	if dropped := s.subs.broadcast(msg); dropped > 0 {
		s.log.Verbo("dropped published message",
			zap.Int("connections", dropped),
		)
	}
}

// Len returns the number of active connections.
func (s *Server) Len() int {
	return s.subs.len()
}

func (s *Server) removeConnection(conn *Connection) {
	s.subs.remove(conn)
}
