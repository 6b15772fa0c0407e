package transport

import (
	"context"
	"net"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/annchain/pairledger/ledger"
	"github.com/annchain/pairledger/message"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	config := DefaultConfig()
	config.DialTimeout = time.Second
	config.IOTimeout = time.Second * 2
	return config
}

func TestParsePeerAddress(t *testing.T) {
	cases := map[string]string{
		"localhost:8081":          "localhost:8081",
		"127.0.0.1:3000":          "127.0.0.1:3000",
		"/ip4/127.0.0.1/tcp/8081": "127.0.0.1:8081",
		"/ip6/::1/tcp/9000":       "[::1]:9000",
		"[::1]:9000":              "[::1]:9000",
	}
	for in, want := range cases {
		got, err := ParsePeerAddress(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	for _, bad := range []string{"localhost", "localhost:0", "localhost:70000", "host:abc", "/ip4/127.0.0.1", "/tcp/80", "/nonsense"} {
		_, err := ParsePeerAddress(bad)
		assert.Error(t, err, bad)
	}
}

func TestHostPort(t *testing.T) {
	addr, err := HostPort("localhost", 8080)
	require.NoError(t, err)
	assert.Equal(t, "localhost:8080", addr)

	_, err = HostPort("", 8080)
	assert.Error(t, err)
	_, err = HostPort("localhost", 0)
	assert.Error(t, err)
}

func TestRequestReply(t *testing.T) {
	config := testConfig()
	l, err := Listen("127.0.0.1:0", config)
	require.NoError(t, err)
	defer l.Close()

	chain := ledger.NewChain(ledger.ChainConfig{})
	_, err = chain.AppendNew("hello")
	require.NoError(t, err)

	served := make(chan message.Message, 1)
	go func() {
		conn, err := l.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		msg, err := conn.ReadMessage(context.Background())
		if err != nil {
			return
		}
		served <- msg
		_ = conn.WriteMessage(context.Background(), &message.MessageChainSnapshot{Blocks: chain.Snapshot()})
	}()

	d := NewPeerDialer(l.Addr().String(), config)
	reply, err := d.Request(context.Background(), &message.MessageSyncRequest{})
	require.NoError(t, err)

	assert.Equal(t, message.MessageTypeSyncRequest, (<-served).GetType())
	snapshot, ok := reply.(*message.MessageChainSnapshot)
	require.True(t, ok)
	assert.Equal(t, chain.Snapshot(), snapshot.Blocks)
}

func TestDialFailure(t *testing.T) {
	// grab a free port and release it so nothing listens there
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	err = NewPeerDialer(addr, testConfig()).Send(context.Background(), &message.MessageSyncRequest{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransport))
	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "dial", te.Op)
}

func TestBindFailure(t *testing.T) {
	l, err := Listen("127.0.0.1:0", testConfig())
	require.NoError(t, err)
	defer l.Close()

	_, err = Listen(l.Addr().String(), testConfig())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBind))
}

func TestOversizedMessageRejected(t *testing.T) {
	config := testConfig()
	config.MaxMessageSize = 256
	config.Snappy = false
	l, err := Listen("127.0.0.1:0", config)
	require.NoError(t, err)
	defer l.Close()

	result := make(chan error, 1)
	go func() {
		conn, err := l.Accept()
		if err != nil {
			result <- err
			return
		}
		defer conn.Close()
		_, err = conn.ReadMessage(context.Background())
		result <- err
	}()

	sender := testConfig()
	sender.Snappy = false
	big := ledger.NewBlock(strings.Repeat("x", 4096), "0")
	_ = NewPeerDialer(l.Addr().String(), sender).Send(context.Background(), &message.MessageBlock{Block: *big})

	err = <-result
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransport))
}

func TestReadTimeout(t *testing.T) {
	config := testConfig()
	config.IOTimeout = time.Millisecond * 200
	l, err := Listen("127.0.0.1:0", config)
	require.NoError(t, err)
	defer l.Close()

	// a client that connects and never writes
	c, err := net.Dial("tcp", l.Addr().String())
	require.NoError(t, err)
	defer c.Close()

	conn, err := l.Accept()
	require.NoError(t, err)
	defer conn.Close()

	start := time.Now()
	_, err = conn.ReadMessage(context.Background())
	assert.True(t, errors.Is(err, ErrTransport))
	assert.True(t, time.Since(start) < time.Second*2)
}

func TestOversizedContentHeaderNotAllocated(t *testing.T) {
	config := testConfig()
	l, err := Listen("127.0.0.1:0", config)
	require.NoError(t, err)
	defer l.Close()

	// envelope of kind Block whose bin32 header claims almost 4 GiB of content
	go func() {
		c, err := net.Dial("tcp", l.Addr().String())
		if err != nil {
			return
		}
		defer c.Close()
		_, _ = c.Write([]byte{0x93, 0x03, 0xc2, 0xc6, 0xff, 0xff, 0xff, 0xf0})
	}()

	conn, err := l.Accept()
	require.NoError(t, err)
	defer conn.Close()

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	_, err = conn.ReadMessage(context.Background())
	runtime.ReadMemStats(&after)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransport))
	assert.True(t, errors.Is(err, message.ErrMessageTooLarge))
	assert.True(t, after.TotalAlloc-before.TotalAlloc < 16<<20, "allocated %d bytes", after.TotalAlloc-before.TotalAlloc)
}
