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

	"github.com/pkg/errors"
)

var (
	ErrRejectedBlock = errors.New("rejected block")
	ErrRejectedChain = errors.New("rejected chain")
)

// RejectedBlockError reports why a candidate is not a valid successor of the tail.
// Both checks are always evaluated.
type RejectedBlockError struct {
	Block *Block
	// LinkValid: candidate.PreviousHash == tail.Hash
	LinkValid    bool
	ExpectedPrev string
	// HashValid: stored hash equals the recomputed one
	HashValid    bool
	ComputedHash string
}

func (e *RejectedBlockError) Error() string {
	msg := "rejected block " + shortHash(e.Block.Hash)
	if !e.LinkValid {
		msg += fmt.Sprintf(": link mismatch tail.hash=%s block.previous_hash=%s", e.ExpectedPrev, e.Block.PreviousHash)
	}
	if !e.HashValid {
		msg += fmt.Sprintf(": hash mismatch stored=%s computed=%s", e.Block.Hash, e.ComputedHash)
	}
	return msg
}

func (e *RejectedBlockError) Is(target error) bool {
	return target == ErrRejectedBlock
}

// RejectedChainError is returned by Chain.Replace. Index is -1 when the
// candidate failed the length rule, otherwise the first broken position.
type RejectedChainError struct {
	Reason string
	Index  int
	Err    error
}

func (e *RejectedChainError) Error() string {
	if e.Index < 0 {
		return "rejected chain: " + e.Reason
	}
	if e.Err != nil {
		return fmt.Sprintf("rejected chain at index %d: %s: %v", e.Index, e.Reason, e.Err)
	}
	return fmt.Sprintf("rejected chain at index %d: %s", e.Index, e.Reason)
}

func (e *RejectedChainError) Is(target error) bool {
	return target == ErrRejectedChain
}

func (e *RejectedChainError) Unwrap() error {
	return e.Err
}
