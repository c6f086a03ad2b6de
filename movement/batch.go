package movement

import (
	"sync"

	"github.com/oomph-ac/capsim/worker"
)

// MoveBatch runs one frame for every state on the pool and waits for all of them. The states must
// be distinct. A nil pool uses the process wide one.
func (sv *Solver) MoveBatch(states []*State, pool *worker.Pool) {
	if pool == nil {
		pool = worker.Default()
	}
	var wg sync.WaitGroup
	for _, s := range states {
		pool.Go(&wg, func() {
			sv.Move(s)
		})
	}
	wg.Wait()
}
