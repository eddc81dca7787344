// Package lifecycle coordinates application startup and shutdown.
// Startup functions run synchronously in registration order; shutdown
// functions run as tracked goroutines that observe context
// cancellation and are waited on during Shutdown.
package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Coordinator tracks startup readiness and shutdown completion for the
// systems composing an application.
type Coordinator struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	startup []func()

	ready atomic.Bool
	wg    sync.WaitGroup
}

// New creates a Coordinator with an active root context.
func New() *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Context returns the root context, cancelled when Shutdown begins.
func (c *Coordinator) Context() context.Context {
	return c.ctx
}

// Ready reports whether startup completed.
func (c *Coordinator) Ready() bool {
	return c.ready.Load()
}

// OnStartup registers a function to run during WaitForStartup.
func (c *Coordinator) OnStartup(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startup = append(c.startup, fn)
}

// WaitForStartup runs all registered startup functions in order and
// marks the coordinator ready.
func (c *Coordinator) WaitForStartup() {
	c.mu.Lock()
	fns := c.startup
	c.startup = nil
	c.mu.Unlock()

	for _, fn := range fns {
		fn()
	}

	c.ready.Store(true)
}

// OnShutdown launches fn as a tracked goroutine. Shutdown observers
// block on Context().Done() before performing cleanup.
func (c *Coordinator) OnShutdown(fn func()) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		fn()
	}()
}

// Shutdown cancels the root context and waits for all tracked
// goroutines to finish, up to the given timeout.
func (c *Coordinator) Shutdown(timeout time.Duration) error {
	c.ready.Store(false)
	c.cancel()

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("shutdown timed out after %s", timeout)
	}
}
