package ledger

import (
	"fmt"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildChain(t *testing.T, n int) *Chain {
	c := NewChain(ChainConfig{})
	for i := 1; i < n; i++ {
		_, err := c.AppendNew(fmt.Sprintf("block %d", i))
		require.NoError(t, err)
	}
	require.Equal(t, n, c.Len())
	return c
}

func TestNewChainHasGenesis(t *testing.T) {
	c := NewChain(ChainConfig{})
	assert.Equal(t, 1, c.Len())
	g := c.Genesis()
	assert.Equal(t, GenesisPreviousHash, g.PreviousHash)
	assert.Equal(t, GenesisPayload, g.Payload)
	assert.Equal(t, g, c.Tail())
	assert.NoError(t, c.Verify())
}

func TestAppendLinksToTail(t *testing.T) {
	c := NewChain(ChainConfig{})
	h0 := c.Tail().Hash

	b, err := c.AppendNew("hello")
	require.NoError(t, err)
	assert.Equal(t, h0, b.PreviousHash)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, *b, c.Tail())

	next := NewBlock("world", b.Hash)
	require.NoError(t, c.Append(next))
	assert.Equal(t, 3, c.Len())

	blocks := c.Snapshot()
	for i := 1; i < len(blocks); i++ {
		assert.Equal(t, blocks[i-1].Hash, blocks[i].PreviousHash)
	}
	assert.NoError(t, c.Verify())
}

func TestAppendRejectsWrongPrevious(t *testing.T) {
	c := buildChain(t, 3)
	before := c.Snapshot()

	candidate := NewBlock("stale", before[1].Hash)
	err := c.Append(candidate)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRejectedBlock))

	var rejected *RejectedBlockError
	require.True(t, errors.As(err, &rejected))
	assert.False(t, rejected.LinkValid)
	assert.True(t, rejected.HashValid)
	assert.Equal(t, before[2].Hash, rejected.ExpectedPrev)

	assert.Equal(t, before, c.Snapshot())
}

func TestAppendRejectsBadHash(t *testing.T) {
	c := NewChain(ChainConfig{})
	candidate := NewBlock("x", c.Tail().Hash)
	candidate.Payload = "y"

	err := c.Append(candidate)
	require.Error(t, err)
	var rejected *RejectedBlockError
	require.True(t, errors.As(err, &rejected))
	assert.True(t, rejected.LinkValid)
	assert.False(t, rejected.HashValid)
	assert.Equal(t, 1, c.Len())
}

func TestIsValidSuccessor(t *testing.T) {
	tail := NewGenesis()
	good := NewBlock("a", tail.Hash)
	assert.True(t, IsValidSuccessor(good, tail))

	badLink := NewBlock("a", "nope")
	assert.False(t, IsValidSuccessor(badLink, tail))

	badHash := *good
	badHash.Hash = tail.Hash
	assert.False(t, IsValidSuccessor(&badHash, tail))
}

func TestReplaceWithLongerChain(t *testing.T) {
	local := NewChain(ChainConfig{})
	remote := buildChain(t, 3)

	require.NoError(t, local.Replace(remote.Snapshot()))
	assert.Equal(t, remote.Snapshot(), local.Snapshot())
	assert.NoError(t, local.Verify())
}

func TestReplaceRejectsShorterOrEqual(t *testing.T) {
	local := buildChain(t, 3)
	before := local.Snapshot()

	err := local.Replace(buildChain(t, 2).Snapshot())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRejectedChain))
	var rejected *RejectedChainError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, -1, rejected.Index)
	assert.Equal(t, before, local.Snapshot())

	// ties keep the local chain
	err = local.Replace(buildChain(t, 3).Snapshot())
	assert.True(t, errors.Is(err, ErrRejectedChain))
	assert.Equal(t, before, local.Snapshot())

	assert.Error(t, local.Replace(nil))
	assert.Equal(t, before, local.Snapshot())
}

func TestReplaceIsAllOrNothing(t *testing.T) {
	local := buildChain(t, 2)
	before := local.Snapshot()

	candidate := buildChain(t, 6).Snapshot()
	// break the very last link, everything before it is fine
	candidate[5].PreviousHash = candidate[3].Hash
	candidate[5].Hash = candidate[5].CalcHash()

	err := local.Replace(candidate)
	require.Error(t, err)
	var rejected *RejectedChainError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, 5, rejected.Index)
	assert.Equal(t, before, local.Snapshot())
	assert.Equal(t, 2, local.Len())
}

func TestReplaceDetectsTampering(t *testing.T) {
	tamperings := map[string]func(b *Block){
		"payload":       func(b *Block) { b.Payload += "!" },
		"previous_hash": func(b *Block) { b.PreviousHash = "ff" + b.PreviousHash },
		"timestamp":     func(b *Block) { b.Timestamp-- },
	}
	for name, tamper := range tamperings {
		t.Run(name, func(t *testing.T) {
			candidate := buildChain(t, 5).Snapshot()
			tamper(&candidate[2])

			local := NewChain(ChainConfig{})
			err := local.Replace(candidate)
			require.Error(t, err)
			var rejected *RejectedChainError
			require.True(t, errors.As(err, &rejected))
			assert.True(t, rejected.Index >= 2)
			assert.Equal(t, 1, local.Len())
		})
	}

	// rehashing the tampered block moves the failure to its successor
	candidate := buildChain(t, 5).Snapshot()
	candidate[2].Payload = "rewritten"
	candidate[2].Hash = candidate[2].CalcHash()
	err := NewChain(ChainConfig{}).Replace(candidate)
	var rejected *RejectedChainError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, 3, rejected.Index)
}

func TestReplaceNeverShrinks(t *testing.T) {
	local := buildChain(t, 4)
	for n := 1; n <= 6; n++ {
		before := local.Len()
		err := local.Replace(buildChain(t, n).Snapshot())
		if n > before {
			assert.NoError(t, err)
			assert.Equal(t, n, local.Len())
		} else {
			assert.Error(t, err)
			assert.Equal(t, before, local.Len())
		}
		assert.True(t, local.Len() >= before)
	}
}

func TestReplaceVerifyGenesis(t *testing.T) {
	candidate := buildChain(t, 3).Snapshot()
	forged := NewBlock("another genesis", GenesisPreviousHash)
	rest := NewBlock("next", forged.Hash)
	foreign := []Block{*forged, *rest, *NewBlock("tip", rest.Hash)}

	// reference behavior: the candidate genesis is not compared
	lenient := NewChain(ChainConfig{})
	assert.NoError(t, lenient.Replace(foreign))

	strict := NewChain(ChainConfig{VerifyGenesis: true})
	err := strict.Replace(foreign)
	var rejected *RejectedChainError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, 0, rejected.Index)
	assert.Equal(t, 1, strict.Len())

	assert.NoError(t, strict.Replace(candidate))
}

func TestConcurrentAppendSameTail(t *testing.T) {
	for round := 0; round < 20; round++ {
		c := NewChain(ChainConfig{})
		tail := c.Tail()

		const writers = 8
		candidates := make([]*Block, writers)
		for i := range candidates {
			candidates[i] = NewBlock(fmt.Sprintf("writer %d", i), tail.Hash)
		}

		var wg sync.WaitGroup
		start := make(chan struct{})
		results := make(chan error, writers)
		for _, candidate := range candidates {
			wg.Add(1)
			go func(b *Block) {
				defer wg.Done()
				<-start
				results <- c.Append(b)
			}(candidate)
		}
		close(start)
		wg.Wait()
		close(results)

		accepted := 0
		for err := range results {
			if err == nil {
				accepted++
			} else {
				assert.True(t, errors.Is(err, ErrRejectedBlock))
			}
		}
		assert.Equal(t, 1, accepted)
		assert.Equal(t, 2, c.Len())
	}
}

func TestConcurrentAppendNew(t *testing.T) {
	c := NewChain(ChainConfig{})
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := c.AppendNew(fmt.Sprintf("p%d", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 51, c.Len())
	assert.NoError(t, c.Verify())
}

func TestSnapshotIsACopy(t *testing.T) {
	c := buildChain(t, 2)
	snap := c.Snapshot()
	snap[1].Payload = "mutated"
	assert.NotEqual(t, "mutated", c.Tail().Payload)
	assert.NoError(t, c.Verify())

	b, err := c.BlockAt(1)
	require.NoError(t, err)
	assert.Equal(t, c.Tail(), b)
	_, err = c.BlockAt(2)
	assert.Error(t, err)
	_, err = c.BlockAt(-1)
	assert.Error(t, err)
}
