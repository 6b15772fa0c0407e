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
package ledger

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

type ChainConfig struct {
	// VerifyGenesis makes Replace also require the candidate genesis to equal ours.
	VerifyGenesis bool
}

// Chain is the ordered, validated sequence of blocks owned by one node.
// Every read or write goes through mu; the backing slice never leaves the Chain.
type Chain struct {
	config ChainConfig

	mu     sync.Mutex
	blocks []Block
}

func NewChain(config ChainConfig) *Chain {
	genesis := NewGenesis()
	return &Chain{
		config: config,
		blocks: []Block{*genesis},
	}
}

// IsValidSuccessor reports whether candidate can follow tail.
func IsValidSuccessor(candidate *Block, tail *Block) bool {
	return validateSuccessor(candidate, tail) == nil
}

func validateSuccessor(candidate *Block, tail *Block) error {
	computed := candidate.CalcHash()
	linkValid := candidate.PreviousHash == tail.Hash
	hashValid := candidate.Hash == computed
	if linkValid && hashValid {
		return nil
	}
	return &RejectedBlockError{
		Block:        candidate,
		LinkValid:    linkValid,
		ExpectedPrev: tail.Hash,
		HashValid:    hashValid,
		ComputedHash: computed,
	}
}

// Append validates candidate against the current tail and appends a copy of it.
// On failure the chain is untouched and a *RejectedBlockError is returned.
func (c *Chain) Append(candidate *Block) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.appendLocked(candidate)
}

// AppendNew mints a block on top of the current tail and appends it in the
// same critical section, so no other writer can move the tail in between.
func (c *Chain) AppendNew(payload string) (*Block, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tail := c.blocks[len(c.blocks)-1]
	block := NewBlock(payload, tail.Hash)
	if err := c.appendLocked(block); err != nil {
		return block, err
	}
	return block, nil
}

func (c *Chain) appendLocked(candidate *Block) error {
	tail := &c.blocks[len(c.blocks)-1]
	if err := validateSuccessor(candidate, tail); err != nil {
		return err
	}
	c.blocks = append(c.blocks, *candidate)
	log.WithFields(logrus.Fields{
		"hash":   candidate.Hash,
		"height": len(c.blocks) - 1,
	}).Debug("block appended")
	return nil
}

// Replace swaps in candidate if it is strictly longer than the local chain and
// every link from index 1 to the tip verifies. Either the whole candidate is
// adopted or nothing changes.
func (c *Chain) Replace(candidate []Block) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(candidate) <= len(c.blocks) {
		return &RejectedChainError{
			Reason: fmt.Sprintf("candidate length %d is not longer than local length %d", len(candidate), len(c.blocks)),
			Index:  -1,
		}
	}
	if c.config.VerifyGenesis && candidate[0].Hash != c.blocks[0].Hash {
		return &RejectedChainError{
			Reason: fmt.Sprintf("genesis mismatch local=%s candidate=%s", c.blocks[0].Hash, candidate[0].Hash),
			Index:  0,
		}
	}
	if err := verifyLinks(candidate); err != nil {
		return err
	}

	blocks := make([]Block, len(candidate))
	copy(blocks, candidate)
	c.blocks = blocks
	log.WithField("length", len(blocks)).Debug("chain replaced")
	return nil
}

// verifyLinks checks every consecutive pair. Index 0 is not checked against a predecessor.
func verifyLinks(blocks []Block) error {
	for i := 1; i < len(blocks); i++ {
		if err := validateSuccessor(&blocks[i], &blocks[i-1]); err != nil {
			return &RejectedChainError{
				Reason: "broken link",
				Index:  i,
				Err:    err,
			}
		}
	}
	return nil
}

// Verify re-checks the local chain end to end.
func (c *Chain) Verify() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.blocks[0].PreviousHash != GenesisPreviousHash {
		return &RejectedChainError{Reason: "invalid genesis block", Index: 0}
	}
	return verifyLinks(c.blocks)
}

func (c *Chain) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.blocks)
}

func (c *Chain) Tail() Block {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.blocks[len(c.blocks)-1]
}

func (c *Chain) Genesis() Block {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.blocks[0]
}

func (c *Chain) BlockAt(index int) (Block, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.blocks) {
		return Block{}, fmt.Errorf("index %d out of range [0, %d)", index, len(c.blocks))
	}
	return c.blocks[index], nil
}

// Snapshot returns a copy of the whole sequence for transmission.
func (c *Chain) Snapshot() []Block {
	c.mu.Lock()
	defer c.mu.Unlock()

	blocks := make([]Block, len(c.blocks))
	copy(blocks, c.blocks)
	return blocks
}
