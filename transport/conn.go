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
package transport

import (
	"context"
	"io"
	"net"
	"time"

	"github.com/annchain/pairledger/message"
	"github.com/golang/snappy"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/tinylib/msgp/msgp"
)

// envelope overhead on top of the content: array header, type, flag and bytes prefix
const wireOverhead = 16

type Config struct {
	DialTimeout    time.Duration
	IOTimeout      time.Duration
	MaxMessageSize int
	Snappy         bool
}

func DefaultConfig() Config {
	return Config{
		DialTimeout:    time.Second * 5,
		IOTimeout:      time.Second * 10,
		MaxMessageSize: 16 << 20,
		Snappy:         true,
	}
}

// Conn carries msgp framed WireMessages over one stream connection.
// It is not safe for concurrent use.
type Conn struct {
	Id string

	conn    net.Conn
	config  Config
	limited *io.LimitedReader
	reader  *msgp.Reader
	writer  *msgp.Writer
}

func newConn(c net.Conn, config Config) *Conn {
	limited := &io.LimitedReader{R: c}
	return &Conn{
		Id:      uuid.New().String(),
		conn:    c,
		config:  config,
		limited: limited,
		reader:  msgp.NewReader(limited),
		writer:  msgp.NewWriter(c),
	}
}

// frameLimit bounds how many bytes one envelope may take on the wire.
func (c *Conn) frameLimit() int64 {
	if c.config.MaxMessageSize <= 0 {
		return 1<<63 - 1
	}
	encoded := snappy.MaxEncodedLen(c.config.MaxMessageSize)
	if encoded < c.config.MaxMessageSize {
		encoded = c.config.MaxMessageSize
	}
	return int64(encoded) + wireOverhead
}

func (c *Conn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}

func (c *Conn) deadline(ctx context.Context) time.Time {
	var d time.Time
	if c.config.IOTimeout > 0 {
		d = time.Now().Add(c.config.IOTimeout)
	}
	if dl, ok := ctx.Deadline(); ok && (d.IsZero() || dl.Before(d)) {
		d = dl
	}
	return d
}

// ReadMessage reads one envelope and decodes it into its concrete Message.
func (c *Conn) ReadMessage(ctx context.Context) (message.Message, error) {
	if err := c.conn.SetReadDeadline(c.deadline(ctx)); err != nil {
		return nil, c.wrap("read", err)
	}
	c.limited.N = c.frameLimit()

	wm, err := c.readEnvelope()
	if err != nil {
		return nil, c.wrap("read", err)
	}
	msg, err := wm.Unwrap(c.config.MaxMessageSize)
	if err != nil {
		return nil, c.wrap("decode", err)
	}
	log.WithField("conn", c.Id).WithField("msg", msg).Trace("message received")
	return msg, nil
}

// readEnvelope decodes a WireMessage field by field so that the content
// length is checked against the frame limit before anything is allocated.
func (c *Conn) readEnvelope() (*message.WireMessage, error) {
	n, err := c.reader.ReadArrayHeader()
	if err != nil {
		return nil, err
	}
	if n != 3 {
		return nil, msgp.ArrayError{Wanted: 3, Got: n}
	}
	wm := &message.WireMessage{}
	if wm.MsgType, err = c.reader.ReadInt(); err != nil {
		return nil, msgp.WrapError(err, "MsgType")
	}
	if wm.Snappy, err = c.reader.ReadBool(); err != nil {
		return nil, msgp.WrapError(err, "Snappy")
	}
	size, err := c.reader.ReadBytesHeader()
	if err != nil {
		return nil, msgp.WrapError(err, "ContentBytes")
	}
	if limit := c.frameLimit() - wireOverhead; int64(size) > limit {
		return nil, errors.Wrapf(message.ErrMessageTooLarge, "content of %d bytes exceeds %d", size, limit)
	}
	wm.ContentBytes = make([]byte, size)
	if _, err := io.ReadFull(c.reader, wm.ContentBytes); err != nil {
		return nil, msgp.WrapError(err, "ContentBytes")
	}
	return wm, nil
}

// WriteMessage encodes msg into an envelope and flushes it.
func (c *Conn) WriteMessage(ctx context.Context, msg message.Message) error {
	if err := c.conn.SetWriteDeadline(c.deadline(ctx)); err != nil {
		return c.wrap("write", err)
	}
	wm := message.Wrap(msg, c.config.Snappy)
	if err := wm.EncodeMsg(c.writer); err != nil {
		return c.wrap("write", err)
	}
	if err := c.writer.Flush(); err != nil {
		return c.wrap("write", err)
	}
	log.WithField("conn", c.Id).WithField("msg", msg).Trace("message sent")
	return nil
}

func (c *Conn) Close() error {
	return c.conn.Close()
}

func (c *Conn) wrap(op string, err error) error {
	return &TransportError{Op: op, Addr: c.RemoteAddr(), Err: err}
}
