// Copyright © 2019 Annchain Authors <EMAIL ADDRESS>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package node

import (
	"context"
	"time"

	"github.com/annchain/gcache"
	"github.com/annchain/pairledger/common/goroutine"
	"github.com/annchain/pairledger/ledger"
	"github.com/annchain/pairledger/message"
	"github.com/annchain/pairledger/transport"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

const (
	minAcceptBackoff = time.Millisecond * 5
	maxAcceptBackoff = time.Second
)

type ListenerConfig struct {
	KnownCacheSize       int
	KnownCacheExpiration time.Duration
}

func DefaultListenerConfig() ListenerConfig {
	return ListenerConfig{
		KnownCacheSize:       1024,
		KnownCacheExpiration: time.Minute * 10,
	}
}

type ListenerStats struct {
	Connections    int64 `json:"connections"`
	SyncServed     int64 `json:"sync_served"`
	BlocksAccepted int64 `json:"blocks_accepted"`
	BlocksRejected int64 `json:"blocks_rejected"`
	Duplicates     int64 `json:"duplicates"`
	Malformed      int64 `json:"malformed"`
}

// PeerListener serves inbound connections one at a time. Each connection
// carries exactly one message and is closed once it has been handled.
type PeerListener struct {
	Chain *ledger.Chain

	listener *transport.Listener
	known    gcache.Cache

	quit    chan struct{}
	done    chan struct{}
	started atomic.Bool
	closed  atomic.Bool

	connections atomic.Int64
	syncServed  atomic.Int64
	accepted    atomic.Int64
	rejected    atomic.Int64
	duplicates  atomic.Int64
	malformed   atomic.Int64
}

// NewPeerListener takes ownership of an already bound listener.
func NewPeerListener(chain *ledger.Chain, listener *transport.Listener, config ListenerConfig) *PeerListener {
	size := config.KnownCacheSize
	if size <= 0 {
		size = DefaultListenerConfig().KnownCacheSize
	}
	builder := gcache.New(size).LRU()
	if config.KnownCacheExpiration > 0 {
		builder = builder.Expiration(config.KnownCacheExpiration)
	}
	return &PeerListener{
		Chain:    chain,
		listener: listener,
		known:    builder.Build(),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (p *PeerListener) Name() string {
	return "PeerListener"
}

func (p *PeerListener) Addr() string {
	return p.listener.Addr().String()
}

func (p *PeerListener) Start() {
	if !p.started.CAS(false, true) {
		return
	}
	goroutine.New(func() {
		defer close(p.done)
		if err := p.Serve(); err != nil {
			log.WithError(err).Error("peer listener terminated")
		}
	})
}

// Stop closes the listening socket and waits for the connection in hand, if any.
func (p *PeerListener) Stop() {
	if !p.closed.CAS(false, true) {
		return
	}
	close(p.quit)
	if err := p.listener.Close(); err != nil {
		log.WithError(err).Warn("closing listener")
	}
	if p.started.Load() {
		<-p.done
	}
}

func (p *PeerListener) Stats() ListenerStats {
	return ListenerStats{
		Connections:    p.connections.Load(),
		SyncServed:     p.syncServed.Load(),
		BlocksAccepted: p.accepted.Load(),
		BlocksRejected: p.rejected.Load(),
		Duplicates:     p.duplicates.Load(),
		Malformed:      p.malformed.Load(),
	}
}

// Serve runs the accept loop on the calling goroutine. It returns nil after
// Stop. A failing Accept on an open listener is retried with backoff.
func (p *PeerListener) Serve() error {
	log.WithField("addr", p.Addr()).Info("peer listener serving")
	var backoff time.Duration
	for {
		conn, err := p.listener.Accept()
		if err != nil {
			if p.closed.Load() {
				return nil
			}
			if backoff == 0 {
				backoff = minAcceptBackoff
			} else {
				backoff *= 2
			}
			if backoff > maxAcceptBackoff {
				backoff = maxAcceptBackoff
			}
			log.WithError(err).WithField("retry", backoff).Warn("accept failed")
			select {
			case <-p.quit:
				return nil
			case <-time.After(backoff):
			}
			continue
		}
		backoff = 0
		p.handle(conn)
	}
}

func (p *PeerListener) handle(conn *transport.Conn) {
	defer conn.Close()
	p.connections.Inc()

	logger := log.WithFields(logrus.Fields{
		"conn":   conn.Id,
		"remote": conn.RemoteAddr(),
	})

	msg, err := conn.ReadMessage(context.Background())
	if err != nil {
		p.malformed.Inc()
		logger.WithError(err).Warn("dropping connection")
		return
	}

	switch m := msg.(type) {
	case *message.MessageSyncRequest:
		p.serveSync(conn, logger)
	case *message.MessageBlock:
		p.receiveBlock(&m.Block, logger)
	default:
		p.malformed.Inc()
		logger.WithField("type", msg.GetType()).Warn("unexpected message, closing connection")
	}
}

// serveSync copies the chain under its lock and writes outside of it.
func (p *PeerListener) serveSync(conn *transport.Conn, logger *logrus.Entry) {
	blocks := p.Chain.Snapshot()
	if err := conn.WriteMessage(context.Background(), &message.MessageChainSnapshot{Blocks: blocks}); err != nil {
		logger.WithError(err).Warn("failed to send chain snapshot")
		return
	}
	p.syncServed.Inc()
	logger.WithField("length", len(blocks)).Info("sent chain snapshot")
}

func (p *PeerListener) receiveBlock(block *ledger.Block, logger *logrus.Entry) {
	logger = logger.WithField("block", block)
	if p.known.Has(block.Hash) {
		p.duplicates.Inc()
		logger.Info("block already known, ignored")
		return
	}
	if err := p.Chain.Append(block); err != nil {
		p.rejected.Inc()
		logger.WithError(err).Warn("block rejected")
		return
	}
	p.accepted.Inc()
	if err := p.known.Set(block.Hash, struct{}{}); err != nil {
		logger.WithError(err).Warn("setting known block cache")
	}
	logger.WithField("length", p.Chain.Len()).Info("block added")
}
