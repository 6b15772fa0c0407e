package message

import (
	"bytes"
	"strings"
	"testing"

	"github.com/annchain/pairledger/ledger"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinylib/msgp/msgp"
)

func sampleBlocks(n int) []ledger.Block {
	c := ledger.NewChain(ledger.ChainConfig{})
	for i := 1; i < n; i++ {
		_, _ = c.AppendNew(strings.Repeat("payload ", i))
	}
	return c.Snapshot()
}

func TestEnvelopesAreSelfDelimiting(t *testing.T) {
	blocks := sampleBlocks(4)
	sent := []Message{
		&MessageSyncRequest{},
		&MessageBlock{Block: blocks[2]},
		&MessageChainSnapshot{Blocks: blocks},
	}

	var buf bytes.Buffer
	w := msgp.NewWriter(&buf)
	for i, m := range sent {
		require.NoError(t, Wrap(m, i%2 == 0).EncodeMsg(w))
	}
	require.NoError(t, w.Flush())

	r := msgp.NewReader(&buf)
	for _, want := range sent {
		wm := &WireMessage{}
		require.NoError(t, wm.DecodeMsg(r))
		got, err := wm.Unwrap(0)
		require.NoError(t, err)
		assert.Equal(t, want.GetType(), got.GetType())
		assert.Equal(t, want, got)
	}
	// nothing left after the last frame
	_, err := r.ReadArrayHeader()
	assert.Error(t, err)
}

func TestUnwrapDispatchesByType(t *testing.T) {
	blocks := sampleBlocks(2)
	msg, err := Wrap(&MessageBlock{Block: blocks[1]}, false).Unwrap(0)
	require.NoError(t, err)

	switch m := msg.(type) {
	case *MessageBlock:
		assert.Equal(t, blocks[1], m.Block)
	default:
		t.Fatalf("unexpected message %s", msg)
	}
}

func TestUnwrapUnknownType(t *testing.T) {
	wm := &WireMessage{MsgType: 42, ContentBytes: []byte{0x90}}
	_, err := wm.Unwrap(0)
	assert.True(t, errors.Is(err, ErrUnknownMessageType))
	assert.Equal(t, "Unknown(42)", MessageType(42).String())
}

func TestUnwrapMalformedContent(t *testing.T) {
	wm := &WireMessage{MsgType: int(MessageTypeBlock), ContentBytes: []byte("SYNC_REQUEST")}
	_, err := wm.Unwrap(0)
	assert.True(t, errors.Is(err, ErrMalformedMessage))

	// a kind mismatch is malformed too: a snapshot body under the Block tag
	body := (&MessageChainSnapshot{Blocks: sampleBlocks(2)}).ToBytes()
	wm = &WireMessage{MsgType: int(MessageTypeBlock), ContentBytes: body}
	_, err = wm.Unwrap(0)
	assert.True(t, errors.Is(err, ErrMalformedMessage))

	wm = &WireMessage{MsgType: int(MessageTypeSyncRequest), Snappy: true, ContentBytes: []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}}
	_, err = wm.Unwrap(0)
	assert.True(t, errors.Is(err, ErrMalformedMessage))
}

func TestUnwrapSizeLimit(t *testing.T) {
	snapshot := &MessageChainSnapshot{Blocks: sampleBlocks(20)}
	size := len(snapshot.ToBytes())

	_, err := Wrap(snapshot, false).Unwrap(size - 1)
	assert.True(t, errors.Is(err, ErrMessageTooLarge))
	_, err = Wrap(snapshot, true).Unwrap(size - 1)
	assert.True(t, errors.Is(err, ErrMessageTooLarge))

	_, err = Wrap(snapshot, true).Unwrap(size)
	assert.NoError(t, err)
}

func TestSnapshotRejectsImpossibleCount(t *testing.T) {
	bts := msgp.AppendArrayHeader(nil, 1)
	bts = msgp.AppendArrayHeader(bts, 1<<30)
	err := (&MessageChainSnapshot{}).FromBytes(bts)
	assert.Error(t, err)
}

func TestSnappyShrinksSnapshots(t *testing.T) {
	snapshot := &MessageChainSnapshot{Blocks: sampleBlocks(30)}
	plain := Wrap(snapshot, false)
	compressed := Wrap(snapshot, true)
	assert.True(t, len(compressed.ContentBytes) < len(plain.ContentBytes))
}
