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
	"io"

	"github.com/annchain/pairledger/ledger"
	"github.com/annchain/pairledger/message"
	"go.uber.org/atomic"
)

// InputSource yields payloads. io.EOF is the stop signal.
type InputSource interface {
	Next(ctx context.Context) (string, error)
}

// Sender delivers one message to the peer.
type Sender interface {
	Send(ctx context.Context, msg message.Message) error
}

type ProducerStats struct {
	Produced   int64 `json:"produced"`
	Sent       int64 `json:"sent"`
	SendFailed int64 `json:"send_failed"`
}

// LocalProducer mints a block per payload and forwards it to the peer.
type LocalProducer struct {
	Chain *ledger.Chain
	Peer  Sender
	Input InputSource

	produced   atomic.Int64
	sent       atomic.Int64
	sendFailed atomic.Int64
}

func (p *LocalProducer) Name() string {
	return "LocalProducer"
}

// Run consumes the input source until it signals stop or ctx is done.
func (p *LocalProducer) Run(ctx context.Context) error {
	for {
		payload, err := p.Input.Next(ctx)
		if err == io.EOF {
			log.Info("input closed, producer stopped")
			return nil
		}
		if err != nil {
			return err
		}
		p.Produce(ctx, payload)
	}
}

// Produce appends a block built on the current tail and then sends it.
// The send happens whatever the local outcome was and never holds the chain lock.
func (p *LocalProducer) Produce(ctx context.Context, payload string) *ledger.Block {
	block, err := p.Chain.AppendNew(payload)
	if err != nil {
		log.WithError(err).WithField("block", block).Error("local block rejected")
	} else {
		p.produced.Inc()
		log.WithField("block", block).WithField("length", p.Chain.Len()).Info("block added")
	}

	if err := p.Peer.Send(ctx, &message.MessageBlock{Block: *block}); err != nil {
		p.sendFailed.Inc()
		log.WithError(err).WithField("hash", block.Hash).Warn("failed to send block to peer")
		return block
	}
	p.sent.Inc()
	log.WithField("hash", block.Hash).Debug("block sent to peer")
	return block
}

func (p *LocalProducer) Stats() ProducerStats {
	return ProducerStats{
		Produced:   p.produced.Load(),
		Sent:       p.sent.Load(),
		SendFailed: p.sendFailed.Load(),
	}
}
