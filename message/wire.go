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

	"github.com/golang/snappy"
	"github.com/pkg/errors"
)

var (
	ErrUnknownMessageType = errors.New("unknown message type")
	ErrMessageTooLarge    = errors.New("message too large")
	ErrMalformedMessage   = errors.New("malformed message")
)

// WireMessage is the envelope written on the stream. MsgType tells which
// Message ContentBytes holds; Snappy marks compressed content.
//msgp:tuple WireMessage
type WireMessage struct {
	MsgType      int
	Snappy       bool
	ContentBytes []byte
}

func (z *WireMessage) String() string {
	return fmt.Sprintf("WM: Type=%s Snappy=%t Size=%d", MessageType(z.MsgType), z.Snappy, len(z.ContentBytes))
}

// Wrap seals msg into an envelope.
func Wrap(msg Message, compress bool) *WireMessage {
	content := msg.ToBytes()
	if compress {
		content = snappy.Encode(nil, content)
	}
	return &WireMessage{
		MsgType:      int(msg.GetType()),
		Snappy:       compress,
		ContentBytes: content,
	}
}

// Unwrap decodes the content into the concrete message named by MsgType.
// maxSize bounds the decompressed content; zero means unbounded.
func (z *WireMessage) Unwrap(maxSize int) (Message, error) {
	msg, err := newMessage(MessageType(z.MsgType))
	if err != nil {
		return nil, err
	}
	content := z.ContentBytes
	if z.Snappy {
		size, err := snappy.DecodedLen(content)
		if err != nil {
			return nil, errors.Wrap(ErrMalformedMessage, err.Error())
		}
		if maxSize > 0 && size > maxSize {
			return nil, errors.Wrapf(ErrMessageTooLarge, "decoded size %d exceeds %d", size, maxSize)
		}
		content, err = snappy.Decode(nil, content)
		if err != nil {
			return nil, errors.Wrap(ErrMalformedMessage, err.Error())
		}
	} else if maxSize > 0 && len(content) > maxSize {
		return nil, errors.Wrapf(ErrMessageTooLarge, "size %d exceeds %d", len(content), maxSize)
	}
	if err := msg.FromBytes(content); err != nil {
		return nil, errors.Wrapf(ErrMalformedMessage, "%s: %v", MessageType(z.MsgType), err)
	}
	return msg, nil
}
