package ffchan

import (
	"reflect"
	"time"

	"github.com/sirupsen/logrus"
)

// TimeoutSender pushes one value into a channel and keeps warning while the
// receiver is not draining it. C fires once: true when the value has been
// delivered, false when quit closed first.
type TimeoutSender struct {
	channel   interface{}
	val       interface{}
	groupName string
	timeout   time.Duration
	C         chan bool
}

// NewTimeoutSenderWithQuit gives up on the send once quit is closed.
// A nil quit never fires.
func NewTimeoutSenderWithQuit(channel interface{}, val interface{}, quit <-chan struct{}, groupName string, timeoutMs int) *TimeoutSender {
	t := &TimeoutSender{
		groupName: groupName,
		channel:   channel,
		timeout:   time.Millisecond * time.Duration(timeoutMs),
		val:       val,
		C:         make(chan bool, 1),
	}
	result := make(chan bool, 1)
	go func() {
		cases := []reflect.SelectCase{
			{Dir: reflect.SelectSend, Chan: reflect.ValueOf(t.channel), Send: reflect.ValueOf(t.val)},
			{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(quit)},
		}
		chosen, _, _ := reflect.Select(cases)
		result <- chosen == 0
	}()

	go func() {
		start := time.Now()
		timer := time.NewTimer(t.timeout)
		defer timer.Stop()
		for {
			select {
			case delivered := <-result:
				t.C <- delivered
				return
			case <-timer.C:
				logrus.WithField("chan", t.groupName).
					WithField("elapse", time.Since(start)).
					Warn("Timeout on channel writing. Potential block issue.")
				timer.Reset(t.timeout)
			}
		}
	}()

	return t
}
