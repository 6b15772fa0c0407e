package transport

import (
	"net"
	"strconv"
	"strings"

	"github.com/multiformats/go-multiaddr"
	"github.com/pkg/errors"
)

// ParsePeerAddress accepts host:port or a multiaddr such as /ip4/127.0.0.1/tcp/8081
// and returns a dialable host:port.
func ParsePeerAddress(address string) (string, error) {
	if !strings.HasPrefix(address, "/") {
		host, port, err := net.SplitHostPort(address)
		if err != nil {
			return "", errors.Wrapf(err, "bad address %q", address)
		}
		if err := checkPort(port); err != nil {
			return "", err
		}
		return net.JoinHostPort(host, port), nil
	}

	fullAddr, err := multiaddr.NewMultiaddr(address)
	if err != nil {
		return "", errors.Wrapf(err, "bad multiaddr %q", address)
	}
	host, err := fullAddr.ValueForProtocol(multiaddr.P_IP4)
	if err != nil {
		host, err = fullAddr.ValueForProtocol(multiaddr.P_IP6)
		if err != nil {
			return "", errors.Errorf("multiaddr %q has no ip4 or ip6 component", address)
		}
	}
	port, err := fullAddr.ValueForProtocol(multiaddr.P_TCP)
	if err != nil {
		return "", errors.Errorf("multiaddr %q has no tcp component", address)
	}
	return net.JoinHostPort(host, port), nil
}

// HostPort joins a host and a numeric port after range checking it.
func HostPort(host string, port int) (string, error) {
	if host == "" {
		return "", errors.New("empty host")
	}
	if err := checkPort(strconv.Itoa(port)); err != nil {
		return "", err
	}
	return net.JoinHostPort(host, strconv.Itoa(port)), nil
}

func checkPort(port string) error {
	p, err := strconv.Atoi(port)
	if err != nil {
		return errors.Errorf("port %q is not a number", port)
	}
	if p < 1 || p > 65535 {
		return errors.Errorf("port %d out of range [1, 65535]", p)
	}
	return nil
}
