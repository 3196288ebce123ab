// Package parallel provides the fork-join worker pool used by the pixel
// operators. A single operator invocation splits its region into
// independent row (or column) ranges, executes the ranges across the pool,
// and joins before the node's result is published.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a pool of goroutines for parallel pixel work.
//
// The pool distributes work items across multiple workers, each with their
// own queue. Workers steal from other workers when their own queue is
// empty, which balances load when some spans are slower than others.
//
// Thread safety: Pool is safe for concurrent use.
type Pool struct {
	// workers is the number of worker goroutines.
	workers int

	// workQueues holds per-worker work queues.
	workQueues []chan func()

	// done signals workers to stop.
	done chan struct{}

	// wg waits for all workers to finish.
	wg sync.WaitGroup

	// running indicates whether the pool is accepting work.
	running atomic.Bool
}

// New creates a worker pool with the specified number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
// The pool starts immediately and workers begin waiting for work.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}

	p := &Pool{
		workers:    workers,
		workQueues: make([]chan func(), workers),
		done:       make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		p.workQueues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker(i)
	}

	return p
}

// worker is the main loop for each worker goroutine.
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	myQueue := p.workQueues[id]

	for {
		select {
		case <-p.done:
			p.drainQueue(myQueue)
			return

		case work := <-myQueue:
			if work != nil {
				work()
			}

		default:
			if stolen := p.steal(id); stolen != nil {
				stolen()
			} else {
				// No work available anywhere, block on own queue
				select {
				case <-p.done:
					p.drainQueue(myQueue)
					return
				case work := <-myQueue:
					if work != nil {
						work()
					}
				}
			}
		}
	}
}

// drainQueue executes all remaining work in a queue.
func (p *Pool) drainQueue(queue chan func()) {
	for {
		select {
		case work := <-queue:
			if work != nil {
				work()
			}
		default:
			return
		}
	}
}

// steal attempts to take work from another worker's queue.
// Returns nil if no work is available.
func (p *Pool) steal(myID int) func() {
	for i := 0; i < p.workers; i++ {
		if i == myID {
			continue
		}
		select {
		case work := <-p.workQueues[i]:
			return work
		default:
		}
	}
	return nil
}

// Run distributes work across workers and blocks until every item has
// completed. This is the join point for one operator invocation.
// A single-worker pool, or a closed pool, executes the work inline so
// results are still produced.
func (p *Pool) Run(work []func()) {
	if len(work) == 0 {
		return
	}
	if p.workers == 1 || !p.running.Load() {
		for _, fn := range work {
			fn()
		}
		return
	}

	var join sync.WaitGroup
	join.Add(len(work))

	for i, fn := range work {
		workerID := i % p.workers
		workFn := fn

		wrapped := func() {
			defer join.Done()
			workFn()
		}

		select {
		case p.workQueues[workerID] <- wrapped:
		case <-p.done:
			// Pool closed mid-submit; run inline rather than dropping spans.
			workFn()
			join.Done()
		}
	}

	join.Wait()
}

// Close gracefully shuts down the pool.
// It stops accepting new work, waits for queued work to complete, and then
// stops all workers. Close is safe to call multiple times.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *Pool) Workers() int {
	return p.workers
}

// IsRunning returns true if the pool is still accepting work.
func (p *Pool) IsRunning() bool {
	return p.running.Load()
}
