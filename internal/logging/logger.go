package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

const timestampFormat = "2006-01-02 15:04:05.000"

// A Logger writes leveled, tagged log lines:
//
//	2019-09-30 12:00:00.000 D/localsink[sink.go:42] message
type Logger struct {
	// Messages more verbose than Level are dropped.
	Level

	// Tag used to filter and classify log messages.
	Tag string

	out io.Writer

	// Serializes writes. Shared by all loggers derived from the same root.
	mu *sync.Mutex
}

// DefaultLogger writes to stderr.
var DefaultLogger = &Logger{defaultLevel, "", os.Stderr, new(sync.Mutex)}

// New returns a root logger writing to out. The level may be overridden per
// tag by LOGLEVEL.
func New(tag string, out io.Writer, level Level) *Logger {
	return &Logger{determineLevel(tag, level), tag, out, new(sync.Mutex)}
}

// Override the destination for this logger.
func (log *Logger) SetDestination(out io.Writer) {
	log.mu.Lock()
	log.out = out
	log.mu.Unlock()
}

// Derive a new logger with the given tag. Look up the level based on the tag.
func (log *Logger) WithTag(tag string) *Logger {
	return &Logger{determineLevel(tag, log.Level), tag, log.out, log.mu}
}

func (log *Logger) Enabled(level Level) bool {
	return level <= log.Level
}

// Cheap append-only writer for assembling one line.
type lineBuffer []byte

func (b *lineBuffer) Write(p []byte) (int, error) {
	*b = append(*b, p...)
	return len(p), nil
}

var linePool = sync.Pool{
	New: func() interface{} {
		b := make(lineBuffer, 0, 256)
		return &b
	},
}

// Log a message at the given level. Include the file and line number from
// 'calldepth' steps up the call stack.
func (log *Logger) Log(level Level, calldepth int, format string, a ...interface{}) {
	if !log.Enabled(level) {
		return
	}

	bp := linePool.Get().(*lineBuffer)
	buf := (*bp)[:0]
	defer func() {
		*bp = buf[:0]
		linePool.Put(bp)
	}()

	_, file, line, ok := runtime.Caller(calldepth + 1)
	if !ok {
		file = "?"
	}

	buf = append(buf, prefixColor.Sprint(time.Now().Format(timestampFormat))...)
	buf = append(buf, ' ')
	buf = append(buf, level.color().Sprintf("%c/%s", level.letter(), log.Tag)...)
	buf = append(buf, prefixColor.Sprintf("[%s:%d] ", filepath.Base(file), line)...)
	fmt.Fprintf(&buf, format, a...)
	if n := len(buf); n == 0 || buf[n-1] != '\n' {
		buf = append(buf, '\n')
	}

	log.mu.Lock()
	_, err := log.out.Write(buf)
	log.mu.Unlock()
	if err != nil {
		panic(fmt.Sprintf("Failed to log to %v: %v", log.out, err))
	}
}

func (log *Logger) Error(format string, a ...interface{}) {
	log.Log(Error, 1, format, a...)
}

func (log *Logger) Warn(format string, a ...interface{}) {
	log.Log(Warn, 1, format, a...)
}

func (log *Logger) Info(format string, a ...interface{}) {
	log.Log(Info, 1, format, a...)
}

func (log *Logger) Debug(format string, a ...interface{}) {
	log.Log(Debug, 1, format, a...)
}

func (log *Logger) Trace(n int, format string, a ...interface{}) {
	log.Log(Level(n), 1, format, a...)
}
