// Package parallel runs fork-join rounds of row-strip jobs on a fixed set
// of worker goroutines.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a fixed set of persistent worker goroutines driven in lock-step
// by a single controlling goroutine.
//
// Each worker owns one job slot. The controller hands a worker exactly one
// job with Step and blocks on Lock until that job has finished, so every
// round is a fork-join over at most Workers() jobs. There is no queue and
// no work stealing: slot i always runs on worker i.
//
// Jobs handed out in the same round must write disjoint memory (for the
// rasterizer, disjoint row strips of one framebuffer). The pool does not
// check this.
//
// Thread safety: Pool is driven by one controller. Step, Lock, Dispatch,
// Await and Run must not be called concurrently with each other.
type Pool struct {
	workers []*worker

	// wg waits for all worker goroutines to exit.
	wg sync.WaitGroup

	// running indicates whether the workers are alive.
	running atomic.Bool
}

// worker is one persistent goroutine and its two-party rendezvous channels.
type worker struct {
	// start carries the job for the next round. Closing it is the kill signal.
	start chan func()

	// done is signalled once per finished job.
	done chan struct{}

	// busy is true between Step and Lock. Only touched by the controller.
	busy bool
}

// NewPool creates a pool with the given number of workers and starts them.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{workers: make([]*worker, workers)}
	for i := range p.workers {
		p.workers[i] = &worker{
			start: make(chan func()),
			done:  make(chan struct{}),
		}
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for _, w := range p.workers {
		go p.loop(w)
	}

	return p
}

// loop is the body of each worker goroutine.
func (p *Pool) loop(w *worker) {
	defer p.wg.Done()

	for job := range w.start {
		if job != nil {
			job()
		}
		w.done <- struct{}{}
	}
}

// Step hands job to worker i and returns immediately.
// The worker runs job once; call Lock(i) to wait for it.
// Stepping a worker that is still busy waits for its previous job first.
// If the pool is closed, job runs inline on the caller.
func (p *Pool) Step(i int, job func()) {
	if !p.running.Load() {
		if job != nil {
			job()
		}
		return
	}

	w := p.workers[i]
	if w.busy {
		p.Lock(i)
	}
	w.busy = true
	w.start <- job
}

// Lock blocks until worker i has finished the job handed to it by Step.
// Locking an idle worker returns immediately.
func (p *Pool) Lock(i int) {
	w := p.workers[i]
	if !w.busy {
		return
	}
	<-w.done
	w.busy = false
}

// Dispatch hands jobs[i] to worker i for every job and returns without
// waiting. The jobs must not share writable state.
//
// Dispatch panics if there are more jobs than workers: a round cannot hold
// more than one job per worker.
func (p *Pool) Dispatch(jobs []func()) {
	if len(jobs) > len(p.workers) {
		panic("parallel: more jobs than workers in one round")
	}
	for i, job := range jobs {
		p.Step(i, job)
	}
}

// Await blocks until every worker stepped since the last Await is done.
func (p *Pool) Await() {
	for i := range p.workers {
		p.Lock(i)
	}
}

// Run is Dispatch followed by Await.
func (p *Pool) Run(jobs []func()) {
	if len(jobs) == 0 {
		return
	}
	p.Dispatch(jobs)
	p.Await()
}

// Close stops all workers: each worker finishes its current job, observes
// the kill signal and exits before Close returns.
// Close is safe to call multiple times.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}

	for i, w := range p.workers {
		p.Lock(i)
		close(w.start)
	}

	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *Pool) Workers() int {
	return len(p.workers)
}

// IsRunning returns true until Close is called.
func (p *Pool) IsRunning() bool {
	return p.running.Load()
}
