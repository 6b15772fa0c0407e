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
package node

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"

	"github.com/annchain/pairledger/common/goroutine"
	"github.com/annchain/pairledger/ffchan"
)

const ExitCommand = "exit"

// Console turns text lines into payloads. Empty lines are skipped and
// "exit" in any case, or the end of the stream, stops it.
type Console struct {
	reader io.Reader
	lines  chan string
	quit   chan struct{}

	startOnce sync.Once
	stopOnce  sync.Once
}

func NewConsole(reader io.Reader) *Console {
	return &Console{
		reader: reader,
		lines:  make(chan string),
		quit:   make(chan struct{}),
	}
}

func (c *Console) start() {
	c.startOnce.Do(func() {
		goroutine.WithRecover(c.scan)
	})
}

func (c *Console) scan() {
	defer close(c.lines)
	scanner := bufio.NewScanner(c.reader)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, ExitCommand) {
			return
		}
		if !<-ffchan.NewTimeoutSenderWithQuit(c.lines, line, c.quit, "console", 60000).C {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		log.WithError(err).Warn("reading console input")
	}
}

func (c *Console) Next(ctx context.Context) (string, error) {
	c.start()
	select {
	case <-c.quit:
		return "", io.EOF
	default:
	}
	select {
	case line, ok := <-c.lines:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	case <-ctx.Done():
		return "", ctx.Err()
	case <-c.quit:
		return "", io.EOF
	}
}

// Stop makes Next report io.EOF. A scan blocked on the underlying reader
// returns once that reader yields.
func (c *Console) Stop() {
	c.stopOnce.Do(func() {
		close(c.quit)
	})
}
