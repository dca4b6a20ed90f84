// Package parallel runs independent jobs on a bounded set of goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Pool executes submitted jobs on a fixed number of workers. A pool with a
// single worker runs every job inline on the submitting goroutine.
type Pool struct {
	wg      sync.WaitGroup
	workers int
	jobs    chan func()
	close   func()
}

// Start launches numWorkers workers, or GOMAXPROCS workers when
// numWorkers < 1.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{workers: numWorkers, close: func() {}}
	if numWorkers == 1 {
		return p
	}

	p.jobs = make(chan func(), numWorkers)
	for range numWorkers {
		p.wg.Go(func() {
			for f := range p.jobs {
				f()
			}
		})
	}
	p.close = sync.OnceFunc(func() { close(p.jobs) })
	return p
}

// Workers returns the number of workers.
func (p *Pool) Workers() int {
	return p.workers
}

// Do submits f, blocking while all workers are busy and the queue is
// full. Do must not be called after Wait.
func (p *Pool) Do(f func()) {
	if p.jobs == nil {
		f()
		return
	}
	p.jobs <- f
}

// Wait stops accepting jobs and blocks until all submitted jobs finish.
func (p *Pool) Wait() {
	p.close()
	p.wg.Wait()
}
