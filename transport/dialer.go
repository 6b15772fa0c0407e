package transport

import (
	"context"
	"net"

	"github.com/annchain/pairledger/message"
	"github.com/pkg/errors"
)

// PeerDialer opens client-role connections to the single configured peer.
type PeerDialer struct {
	Address string
	Config  Config
}

func NewPeerDialer(address string, config Config) *PeerDialer {
	return &PeerDialer{
		Address: address,
		Config:  config,
	}
}

func (d *PeerDialer) Dial(ctx context.Context) (*Conn, error) {
	dialer := net.Dialer{Timeout: d.Config.DialTimeout}
	c, err := dialer.DialContext(ctx, "tcp", d.Address)
	if err != nil {
		return nil, &TransportError{Op: "dial", Addr: d.Address, Err: err}
	}
	return newConn(c, d.Config), nil
}

// Send delivers one message and closes the connection.
func (d *PeerDialer) Send(ctx context.Context, msg message.Message) error {
	conn, err := d.Dial(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()
	return conn.WriteMessage(ctx, msg)
}

// Request sends msg and waits for exactly one reply.
func (d *PeerDialer) Request(ctx context.Context, msg message.Message) (message.Message, error) {
	conn, err := d.Dial(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if err := conn.WriteMessage(ctx, msg); err != nil {
		return nil, err
	}
	reply, err := conn.ReadMessage(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "awaiting reply to %s", msg.GetType())
	}
	return reply, nil
}
