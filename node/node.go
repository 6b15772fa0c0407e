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

	"github.com/annchain/pairledger/common/goroutine"
	"github.com/annchain/pairledger/ledger"
	"github.com/annchain/pairledger/rpc"
	"github.com/annchain/pairledger/syncer"
	"github.com/annchain/pairledger/transport"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Component interface {
	Start()
	Stop()
	// Get the component name
	Name() string
}

// Node is the basic entrypoint for all modules to start.
type Node struct {
	Config Config

	Chain    *ledger.Chain
	Peer     *transport.PeerDialer
	Sync     *syncer.SyncSession
	Listener *PeerListener
	Producer *LocalProducer

	Components []Component
}

// NewNode binds every listening socket up front. A *transport.BindError
// from here is fatal for the process.
func NewNode(config Config, input InputSource) (*Node, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	n := &Node{
		Config: config,
		Chain:  ledger.NewChain(config.Chain),
		Peer:   transport.NewPeerDialer(config.PeerAddress, config.Transport),
	}
	n.Sync = &syncer.SyncSession{
		Chain:   n.Chain,
		Peer:    n.Peer,
		Timeout: config.SyncTimeout,
	}
	n.Producer = &LocalProducer{
		Chain: n.Chain,
		Peer:  n.Peer,
		Input: input,
	}

	l, err := transport.Listen(config.ListenAddress(), config.Transport)
	if err != nil {
		return nil, err
	}
	n.Listener = NewPeerListener(n.Chain, l, config.Listener)

	// Order matters: the listener only starts serving after sync.
	n.Components = append(n.Components, n.Listener)

	if config.RpcEnabled {
		srv := rpc.NewRpcServer(config.RpcPort, &rpc.RpcController{
			Chain:    n.Chain,
			Counters: n,
		})
		if err := srv.Listen(); err != nil {
			_ = l.Close()
			return nil, errors.Wrapf(err, "rpc port %d", config.RpcPort)
		}
		n.Components = append(n.Components, srv)
	}

	log.WithFields(logrus.Fields{
		"listen": n.Listener.Addr(),
		"peer":   config.PeerAddress,
	}).Info("node created")
	return n, nil
}

// Start runs the one-shot sync against the peer, then starts every component.
func (n *Node) Start() {
	if n.Config.SyncEnabled {
		logrus.Infof("Starting %s", n.Sync.Name())
		// failures are logged inside and never stop the node
		_ = n.Sync.Run(context.Background())
	}
	for _, component := range n.Components {
		logrus.Infof("Starting %s", component.Name())
		component.Start()
		logrus.Infof("Started: %s", component.Name())
	}
	logrus.WithField("length", n.Chain.Len()).Info("Node Started")
}

// Produce runs the local producer on the calling goroutine until its input stops.
func (n *Node) Produce(ctx context.Context) error {
	logrus.Infof("Starting %s", n.Producer.Name())
	err := n.Producer.Run(ctx)
	if err == context.Canceled {
		return nil
	}
	return err
}

func (n *Node) Stop() {
	for i := len(n.Components) - 1; i >= 0; i-- {
		comp := n.Components[i]
		logrus.Infof("Stopping %s", comp.Name())
		comp.Stop()
		logrus.Infof("Stopped: %s", comp.Name())
	}
	logrus.Info("Node Stopped")
}

func (n *Node) Counters() map[string]int64 {
	l := n.Listener.Stats()
	p := n.Producer.Stats()
	return map[string]int64{
		"connections":     l.Connections,
		"sync_served":     l.SyncServed,
		"blocks_accepted": l.BlocksAccepted,
		"blocks_rejected": l.BlocksRejected,
		"duplicates":      l.Duplicates,
		"malformed":       l.Malformed,
		"produced":        p.Produced,
		"sent":            p.Sent,
		"send_failed":     p.SendFailed,
		"goroutines":      int64(goroutine.Running()),
	}
}
