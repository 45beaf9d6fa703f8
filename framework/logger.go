package framework

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

const timestampFormat = "2006-01-02 15:04:05.000"

// Logger is the Printf-style interface shared by debug loggers. *log.Logger implements it.
type Logger interface {
	Printf(message string, args ...interface{})
}

type nullLogger struct{}

func (n nullLogger) Printf(message string, args ...interface{}) {}

func NullLogger() Logger { return nullLogger{} }

type CapturedMessage struct {
	Time    time.Time
	Message string
}

type CapturedOutput []CapturedMessage

// CapturingLogger keeps every message with the time it was logged, so that debug output of a
// test can be shown only if the test fails.
type CapturingLogger struct {
	output []CapturedMessage
	lock   sync.Mutex
	now    func() time.Time
}

func (l *CapturingLogger) Printf(message string, args ...interface{}) {
	l.lock.Lock()
	defer l.lock.Unlock()
	now := time.Now
	if l.now != nil {
		now = l.now
	}
	l.output = append(l.output, CapturedMessage{Time: now(), Message: fmt.Sprintf(message, args...)})
}

func (l *CapturingLogger) Output() CapturedOutput {
	l.lock.Lock()
	defer l.lock.Unlock()
	return append(CapturedOutput(nil), l.output...)
}

// Dump writes one line per message to dest. Messages spanning several lines keep the prefix
// on each of them.
func (output CapturedOutput) Dump(dest io.Writer, prefix string) {
	for _, m := range output {
		stamp := m.Time.Format(timestampFormat)
		for _, line := range strings.Split(m.Message, "\n") {
			fmt.Fprintf(dest, "%s[%s] %s\n", prefix, stamp, line)
		}
	}
}
