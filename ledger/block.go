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
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/minio/sha256-simd"
)

//go:generate msgp

const (
	GenesisPayload      = "Genesis Block"
	GenesisPreviousHash = "0"
)

// Block is one hash-linked record. It is never modified after NewBlock;
// Chain hands out copies only.
//msgp:tuple Block
type Block struct {
	Payload      string `json:"payload"`
	PreviousHash string `json:"previous_hash"`
	Timestamp    int64  `json:"timestamp"` // unix milliseconds
	Hash         string `json:"hash"`
}

// NewBlock stamps the current time and seals the block with its digest.
func NewBlock(payload string, previousHash string) *Block {
	b := &Block{
		Payload:      payload,
		PreviousHash: previousHash,
		Timestamp:    time.Now().UnixNano() / int64(time.Millisecond),
	}
	b.Hash = b.CalcHash()
	return b
}

// NewGenesis builds the fixed first block of every chain.
func NewGenesis() *Block {
	return NewBlock(GenesisPayload, GenesisPreviousHash)
}

// CalcHash re-derives the digest from the stored fields.
// The genesis marker payload is hashed without its timestamp so that every
// node derives the same genesis hash.
func (b *Block) CalcHash() string {
	var input string
	if b.Payload == GenesisPayload {
		input = b.PreviousHash + b.Payload
	} else {
		input = b.PreviousHash + strconv.FormatInt(b.Timestamp, 10) + b.Payload
	}
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}

func (b *Block) IsGenesis() bool {
	return b.PreviousHash == GenesisPreviousHash && b.Payload == GenesisPayload
}

func (b *Block) String() string {
	return fmt.Sprintf("block hash=%s prev=%s ts=%d payload=%q",
		shortHash(b.Hash), shortHash(b.PreviousHash), b.Timestamp, b.Payload)
}

func shortHash(h string) string {
	if len(h) > 10 {
		return h[:10]
	}
	return h
}
