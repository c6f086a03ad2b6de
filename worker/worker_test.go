package worker

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoolRunsEverything(t *testing.T) {
	p := NewPool(4)
	defer p.Close()

	var (
		wg sync.WaitGroup
		n  atomic.Int64
	)
	for i := 0; i < 100; i++ {
		p.Go(&wg, func() {
			n.Add(1)
		})
	}
	wg.Wait()
	assert.EqualValues(t, 100, n.Load())
}

func TestPanicDoesNotKillWorker(t *testing.T) {
	p := NewPool(1)
	defer p.Close()

	var (
		wg  sync.WaitGroup
		ran atomic.Bool
	)
	p.Go(&wg, func() {
		panic("boom")
	})
	p.Go(&wg, func() {
		ran.Store(true)
	})
	wg.Wait()
	assert.True(t, ran.Load())
}

func TestCloseDrainsQueue(t *testing.T) {
	p := NewPool(2)
	var n atomic.Int64
	for i := 0; i < 10; i++ {
		p.Submit(func() {
			n.Add(1)
		})
	}
	p.Close()
	assert.EqualValues(t, 10, n.Load())

	// A second close is a no-op.
	p.Close()
}

func TestDefaultPool(t *testing.T) {
	var wg sync.WaitGroup
	done := make(chan struct{})
	wg.Add(1)
	Submit(func() {
		defer wg.Done()
		close(done)
	})
	wg.Wait()
	<-done
	assert.NotNil(t, Default())
}
