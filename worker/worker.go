package worker

import (
	"runtime"
	"sync"

	"github.com/getsentry/sentry-go"
)

var defaultPool = NewPool(runtime.NumCPU())

// Pool runs submitted functions on a fixed set of goroutines. A panicking function is reported to
// sentry and does not take its worker down.
type Pool struct {
	queue   chan func()
	workers sync.WaitGroup
	once    sync.Once
}

// NewPool starts a pool with n workers, or one per CPU when n is not positive.
func NewPool(n int) *Pool {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	p := &Pool{queue: make(chan func(), n)}
	p.workers.Add(n)
	for i := 0; i < n; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.workers.Done()
	for f := range p.queue {
		run(f)
	}
}

func run(f func()) {
	defer sentry.Recover()
	f()
}

// Submit queues f. It blocks while every worker is busy and the queue is full.
func (p *Pool) Submit(f func()) {
	p.queue <- f
}

// Go queues f as part of wg. wg is released even when f panics.
func (p *Pool) Go(wg *sync.WaitGroup, f func()) {
	wg.Add(1)
	p.Submit(func() {
		defer wg.Done()
		f()
	})
}

// Close stops accepting work and waits for the queued functions to finish.
func (p *Pool) Close() {
	p.once.Do(func() {
		close(p.queue)
	})
	p.workers.Wait()
}

// Default returns the process wide pool.
func Default() *Pool {
	return defaultPool
}

// To be used by a function that may be CPU intensive.
func Submit(f func()) {
	defaultPool.Submit(f)
}
