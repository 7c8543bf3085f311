package testfixtures

import (
	"fmt"
	"sync"
)

// IDGenerator produces sequential employee identifiers such as EMP001.
type IDGenerator struct {
	mu      sync.Mutex
	prefix  string
	counter uint64
}

// NewIDGenerator returns a generator for prefix, defaulting to "EMP".
func NewIDGenerator(prefix string) *IDGenerator {
	if prefix == "" {
		prefix = "EMP"
	}
	return &IDGenerator{prefix: prefix}
}

// Next returns the next identifier in the sequence.
func (g *IDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return fmt.Sprintf("%s%03d", g.prefix, g.counter)
}

// Reset restarts the sequence.
func (g *IDGenerator) Reset() {
	g.mu.Lock()
	g.counter = 0
	g.mu.Unlock()
}
