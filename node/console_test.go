package node

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fortytw2/leaktest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, c *Console) []string {
	var lines []string
	for {
		line, err := c.Next(context.Background())
		if err == io.EOF {
			return lines
		}
		require.NoError(t, err)
		lines = append(lines, line)
	}
}

func TestConsoleSkipsEmptyLinesAndStopsOnExit(t *testing.T) {
	defer leaktest.Check(t)()
	c := NewConsole(strings.NewReader("first\n\n   \n second \nExit\nnever\n"))
	assert.Equal(t, []string{"first", "second"}, readAll(t, c))

	// stays stopped
	_, err := c.Next(context.Background())
	assert.Equal(t, io.EOF, err)
}

func TestConsoleStopsOnEOF(t *testing.T) {
	defer leaktest.Check(t)()
	c := NewConsole(strings.NewReader("a\nb"))
	assert.Equal(t, []string{"a", "b"}, readAll(t, c))
}

func TestConsoleStop(t *testing.T) {
	defer leaktest.Check(t)()
	pr, pw := io.Pipe()
	defer pw.Close()

	c := NewConsole(pr)
	go func() {
		_, _ = pw.Write([]byte("one\ntwo\n"))
	}()

	line, err := c.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "one", line)

	c.Stop()
	_, err = c.Next(context.Background())
	assert.Equal(t, io.EOF, err)
	require.NoError(t, pw.Close())
}
