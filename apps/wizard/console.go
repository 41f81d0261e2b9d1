package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/trezcool/apar/core/assessment"
)

// console serializes writes: submissions report from their own goroutines.
type console struct {
	mu sync.Mutex
	w  io.Writer
}

var _ assessment.Notifier = (*console)(nil)

func newConsole(w io.Writer) *console {
	return &console{w: w}
}

func (c *console) Printf(format string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintf(c.w, format, args...)
}

// Write lets a whole table be flushed at once.
func (c *console) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.w.Write(p)
}

func (c *console) Notify(_ string, n assessment.Notice) {
	c.Printf("[%s] %s\n", n.Level, n.Message)
}
