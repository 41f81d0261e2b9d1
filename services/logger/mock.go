package logsvc

import (
	"fmt"
	"sync"

	"github.com/trezcool/apar/core"
)

// LoggerMock keeps every logged message in memory, prefixed with its level.
type LoggerMock struct {
	mu      sync.Mutex
	entries []string
}

var _ core.Logger = (*LoggerMock)(nil)

func NewLoggerMock() *LoggerMock {
	return &LoggerMock{}
}

func (l *LoggerMock) log(level, msg string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry := level + ": " + msg
	for _, arg := range args {
		entry += fmt.Sprintf(" %v", arg)
	}
	l.entries = append(l.entries, entry)
}

func (l *LoggerMock) Entries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.entries...)
}

func (l *LoggerMock) Debug(msg string, args ...interface{}) { l.log("DEBUG", msg, args) }
func (l *LoggerMock) Info(msg string, args ...interface{})  { l.log("INFO", msg, args) }
func (l *LoggerMock) Warn(msg string, args ...interface{})  { l.log("WARN", msg, args) }
func (l *LoggerMock) Error(msg string, args ...interface{}) { l.log("ERROR", msg, args) }

// Fatal records the message without exiting.
func (l *LoggerMock) Fatal(msg string, args ...interface{}) { l.log("FATAL", msg, args) }
