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
package message

import (
	"fmt"

	"github.com/annchain/pairledger/ledger"
	"github.com/pkg/errors"
	"github.com/tinylib/msgp/msgp"
)

//go:generate msgp

type MessageType int

const (
	MessageTypeSyncRequest MessageType = iota + 1
	MessageTypeChainSnapshot
	MessageTypeBlock
)

func (t MessageType) String() string {
	switch t {
	case MessageTypeSyncRequest:
		return "SyncRequest"
	case MessageTypeChainSnapshot:
		return "ChainSnapshot"
	case MessageTypeBlock:
		return "Block"
	default:
		return fmt.Sprintf("Unknown(%d)", int(t))
	}
}

type Bytable interface {
	ToBytes() []byte
	FromBytes(bts []byte) error
}

// Message is one of the three kinds a peer may send.
type Message interface {
	Bytable
	GetType() MessageType
	String() string
}

//msgp:tuple MessageSyncRequest
type MessageSyncRequest struct{}

func (z *MessageSyncRequest) GetType() MessageType {
	return MessageTypeSyncRequest
}

func (z *MessageSyncRequest) String() string {
	return "SyncRequest"
}

func (z *MessageSyncRequest) ToBytes() []byte {
	return mustMarshal(z.MarshalMsg(nil))
}

func (z *MessageSyncRequest) FromBytes(bts []byte) error {
	_, err := z.UnmarshalMsg(bts)
	return err
}

//msgp:tuple MessageChainSnapshot
type MessageChainSnapshot struct {
	Blocks []ledger.Block
}

func (z *MessageChainSnapshot) GetType() MessageType {
	return MessageTypeChainSnapshot
}

func (z *MessageChainSnapshot) String() string {
	if len(z.Blocks) == 0 {
		return "ChainSnapshot len=0"
	}
	return fmt.Sprintf("ChainSnapshot len=%d tip=%s", len(z.Blocks), z.Blocks[len(z.Blocks)-1].Hash)
}

func (z *MessageChainSnapshot) ToBytes() []byte {
	return mustMarshal(z.MarshalMsg(nil))
}

func (z *MessageChainSnapshot) FromBytes(bts []byte) error {
	// a block occupies more than one byte, so a count beyond len(bts) is a lie
	_, rest, err := msgp.ReadArrayHeaderBytes(bts)
	if err != nil {
		return err
	}
	count, _, err := msgp.ReadArrayHeaderBytes(rest)
	if err != nil {
		return err
	}
	if int(count) > len(rest) {
		return errors.Errorf("snapshot claims %d blocks in %d bytes", count, len(rest))
	}
	_, err = z.UnmarshalMsg(bts)
	return err
}

//msgp:tuple MessageBlock
type MessageBlock struct {
	Block ledger.Block
}

func (z *MessageBlock) GetType() MessageType {
	return MessageTypeBlock
}

func (z *MessageBlock) String() string {
	return z.Block.String()
}

func (z *MessageBlock) ToBytes() []byte {
	return mustMarshal(z.MarshalMsg(nil))
}

func (z *MessageBlock) FromBytes(bts []byte) error {
	_, err := z.UnmarshalMsg(bts)
	return err
}

// newMessage maps a discriminant to an empty message of that kind.
func newMessage(t MessageType) (Message, error) {
	switch t {
	case MessageTypeSyncRequest:
		return &MessageSyncRequest{}, nil
	case MessageTypeChainSnapshot:
		return &MessageChainSnapshot{}, nil
	case MessageTypeBlock:
		return &MessageBlock{}, nil
	default:
		return nil, errors.Wrapf(ErrUnknownMessageType, "type %d", int(t))
	}
}

// marshalling a well-formed struct into a fresh buffer cannot fail
func mustMarshal(b []byte, err error) []byte {
	if err != nil {
		panic(err)
	}
	return b
}
