// Package render_loop provides the single render turn on which view patches run.
package render_loop

import (
	"context"
	"feedcard/utils/logger"
	"fmt"
	"sync"
)

// RenderLoop runs posted callbacks one at a time, in posting order, on its own goroutine.
type RenderLoop struct {
	mu     sync.RWMutex
	closed bool
	queue  chan func()
	done   chan struct{}
}

func NewRenderLoop(buffer int) *RenderLoop {
	l := &RenderLoop{
		queue: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
	go l.run()
	return l
}

// Post queues fn. It returns false once the loop is closed.
func (l *RenderLoop) Post(fn func()) bool {
	if fn == nil {
		return false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return false
	}
	l.queue <- fn
	return true
}

// Flush blocks until every callback posted before the call has run.
func (l *RenderLoop) Flush(ctx context.Context) error {
	barrier := make(chan struct{})
	if !l.Post(func() { close(barrier) }) {
		return fmt.Errorf("render loop closed")
	}
	select {
	case <-barrier:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close drains queued callbacks and stops the loop goroutine.
func (l *RenderLoop) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		<-l.done
		return
	}
	l.closed = true
	close(l.queue)
	l.mu.Unlock()
	<-l.done
}

func (l *RenderLoop) run() {
	defer close(l.done)
	for fn := range l.queue {
		l.invoke(fn)
	}
}

func (l *RenderLoop) invoke(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Logger.Error("render callback panicked", "panic", fmt.Sprint(r))
		}
	}()
	fn()
}
