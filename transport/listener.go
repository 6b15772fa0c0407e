package transport

import (
	"net"
)

// Listener accepts server-role connections.
type Listener struct {
	listener net.Listener
	config   Config
}

// Listen binds address. A failure is a *BindError.
func Listen(address string, config Config) (*Listener, error) {
	l, err := net.Listen("tcp", address)
	if err != nil {
		return nil, &BindError{Addr: address, Err: err}
	}
	return &Listener{
		listener: l,
		config:   config,
	}, nil
}

func (l *Listener) Accept() (*Conn, error) {
	c, err := l.listener.Accept()
	if err != nil {
		return nil, err
	}
	return newConn(c, l.config), nil
}

func (l *Listener) Addr() net.Addr {
	return l.listener.Addr()
}

func (l *Listener) Close() error {
	return l.listener.Close()
}
