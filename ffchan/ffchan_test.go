package ffchan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestChan(t *testing.T) {
	c := make(chan string)
	got := make(chan string, 2)

	go func() {
		time.Sleep(time.Millisecond * 300)
		got <- <-c
		got <- <-c
	}()

	// the receiver is late, the sender warns but still delivers
	<-NewTimeoutSenderWithQuit(c, "first", nil, "test1", 100).C
	<-NewTimeoutSenderWithQuit(c, "second", nil, "test2", 100).C
	assert.Equal(t, "first", <-got)
	assert.Equal(t, "second", <-got)
}

func TestChanImmediate(t *testing.T) {
	c := make(chan int, 1)
	<-NewTimeoutSenderWithQuit(c, 7, nil, "buffered", 3000).C
	assert.Equal(t, 7, <-c)
}

func TestChanQuit(t *testing.T) {
	c := make(chan int)
	quit := make(chan struct{})
	s := NewTimeoutSenderWithQuit(c, 1, quit, "nobody", 50)
	time.Sleep(time.Millisecond * 120)
	close(quit)
	assert.False(t, <-s.C)

	select {
	case v := <-c:
		t.Fatalf("value %d delivered after quit", v)
	default:
	}
}
