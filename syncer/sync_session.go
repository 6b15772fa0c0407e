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
package syncer

import (
	"context"
	"time"

	"github.com/annchain/pairledger/ledger"
	"github.com/annchain/pairledger/message"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var ErrUnexpectedReply = errors.New("unexpected reply")

// Requester sends one message to the peer and returns its single reply.
type Requester interface {
	Request(ctx context.Context, msg message.Message) (message.Message, error)
}

// SyncSession fetches the peer's chain once and offers it to the local Chain.
// Every failure leaves the local chain as it was.
type SyncSession struct {
	Chain   *ledger.Chain
	Peer    Requester
	Timeout time.Duration
}

func (s *SyncSession) Name() string {
	return "SyncSession"
}

// Run performs the exchange. The returned error has already been logged and
// is informational only: the node keeps running on its current chain.
func (s *SyncSession) Run(ctx context.Context) error {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	blocks, err := s.fetch(ctx)
	if err != nil {
		log.WithError(err).WithField("length", s.Chain.Len()).Warn("sync failed, continuing with local chain")
		return err
	}

	if err := s.Chain.Replace(blocks); err != nil {
		log.WithError(err).WithFields(logrus.Fields{
			"local":  s.Chain.Len(),
			"remote": len(blocks),
		}).Warn("peer chain not adopted")
		return err
	}
	log.WithField("length", len(blocks)).Info("synced chain with peer")
	return nil
}

func (s *SyncSession) fetch(ctx context.Context) ([]ledger.Block, error) {
	reply, err := s.Peer.Request(ctx, &message.MessageSyncRequest{})
	if err != nil {
		return nil, err
	}
	snapshot, ok := reply.(*message.MessageChainSnapshot)
	if !ok {
		return nil, errors.Wrapf(ErrUnexpectedReply, "got %s", reply.GetType())
	}
	return snapshot.Blocks, nil
}
