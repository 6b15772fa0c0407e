package goroutine

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"runtime/debug"
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

var running atomic.Int32

// Running is the number of goroutines started by New that have not returned yet.
func Running() int32 {
	return running.Load()
}

// New runs function on its own goroutine. A panic is dumped to disk and re-raised.
func New(function func()) {
	running.Inc()
	go func() {
		defer running.Dec()
		defer DumpStack(true)
		function()
	}()
}

// WithRecover is New without re-raising the panic.
func WithRecover(function func()) {
	running.Inc()
	go func() {
		defer running.Dec()
		defer DumpStack(false)
		function()
	}()
}

func DumpStack(exitIfPanic bool) {
	if err := recover(); err != nil {
		logrus.WithField("obj", err).Error("Fatal error occurred. Program will exit")
		var buf bytes.Buffer
		stack := debug.Stack()
		buf.WriteString(fmt.Sprintf("Panic: %v\n", err))
		buf.Write(stack)
		dumpName := "dump_" + time.Now().Format("20060102-150405")
		nerr := ioutil.WriteFile(dumpName, buf.Bytes(), 0644)
		if nerr != nil {
			fmt.Println("write dump file error", nerr)
			fmt.Println(buf.String())
		}
		logrus.Errorf("panic %v ", buf.String())
		if exitIfPanic {
			panic(err)
		}
	}
}
