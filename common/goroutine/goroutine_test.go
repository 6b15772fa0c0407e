package goroutine

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewCountsRunning(t *testing.T) {
	release := make(chan struct{})
	done := make(chan struct{})
	before := Running()

	New(func() {
		<-release
		close(done)
	})
	assert.Equal(t, before+1, Running())

	close(release)
	<-done
	assert.Eventually(t, func() bool {
		return Running() == before
	}, time.Second, time.Millisecond*10)
}

func TestDumpStackRepanicsWhenExiting(t *testing.T) {
	wd, err := os.Getwd()
	assert.NoError(t, err)
	dir, err := ioutil.TempDir("", "pairledger-dump")
	assert.NoError(t, err)
	defer os.RemoveAll(dir)
	assert.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	assert.PanicsWithValue(t, "boom", func() {
		defer DumpStack(true)
		panic("boom")
	})
	dumps, _ := filepath.Glob(filepath.Join(dir, "dump_*"))
	assert.Len(t, dumps, 1)

	assert.NotPanics(t, func() {
		defer DumpStack(false)
		panic("swallowed")
	})
}
