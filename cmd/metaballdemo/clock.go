package main

import "sync"

// stepClock is a fixed-step frame source for offline rendering.
type stepClock struct {
	mu      sync.Mutex
	fns     map[int]func(delta, elapsed float64)
	next    int
	elapsed float64
}

func newStepClock() *stepClock {
	return &stepClock{fns: make(map[int]func(delta, elapsed float64))}
}

// OnFrame registers fn and returns its cancel function.
func (c *stepClock) OnFrame(fn func(delta, elapsed float64)) func() {
	c.mu.Lock()
	id := c.next
	c.next++
	c.fns[id] = fn
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.fns, id)
		c.mu.Unlock()
	}
}

// Step advances the clock by delta and runs every registered callback.
func (c *stepClock) Step(delta float64) {
	c.mu.Lock()
	c.elapsed += delta
	elapsed := c.elapsed
	fns := make([]func(delta, elapsed float64), 0, len(c.fns))
	for _, fn := range c.fns {
		fns = append(fns, fn)
	}
	c.mu.Unlock()
	for _, fn := range fns {
		fn(delta, elapsed)
	}
}
