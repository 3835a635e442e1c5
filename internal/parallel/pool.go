package parallel

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// WorkerPool is a fixed set of goroutines that executes render tasks.
//
// Each worker owns a queue and steals from the other queues when its own is
// empty, which keeps slow tiles from stalling the remaining workers.
//
// Thread safety: WorkerPool is safe for concurrent use. ExecuteAll must not be
// called from inside a task running on the same pool.
type WorkerPool struct {
	workers    int
	workQueues []chan func()
	done       chan struct{}
	wg         sync.WaitGroup
	running    atomic.Bool
}

// Panic is the value re-raised on the calling goroutine when a task panics.
type Panic struct {
	// Value is the value the task panicked with.
	Value any

	// Stack is the stack of the panicking task.
	Stack []byte
}

// Error implements error.
func (p *Panic) Error() string {
	return fmt.Sprintf("parallel: task panicked: %v\n\n%s", p.Value, p.Stack)
}

// Unwrap returns the panic value when it is an error.
func (p *Panic) Unwrap() error {
	if err, ok := p.Value.(error); ok {
		return err
	}
	return nil
}

// NewWorkerPool creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers:    workers,
		workQueues: make([]chan func(), workers),
		done:       make(chan struct{}),
	}
	for i := range workers {
		p.workQueues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}

	return p
}

func (p *WorkerPool) worker(id int) {
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
				continue
			}
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

func (p *WorkerPool) drainQueue(queue chan func()) {
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

func (p *WorkerPool) steal(myID int) func() {
	for i := range p.workers {
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

// ExecuteAll runs every work item on the pool and waits for all of them.
//
// If a work item panics, the remaining items still run to completion and the
// first panic is re-raised on the calling goroutine as a *Panic.
// If the pool is closed, the work runs on the calling goroutine.
func (p *WorkerPool) ExecuteAll(work []func()) {
	if len(work) == 0 {
		return
	}
	if !p.running.Load() {
		runInline(func() {
			for _, fn := range work {
				fn()
			}
		})
		return
	}

	var (
		completionWG sync.WaitGroup
		panicOnce    sync.Once
		caught       *Panic
	)
	completionWG.Add(len(work))

	for i, fn := range work {
		workerID := i % p.workers

		wrapped := func() {
			defer completionWG.Done()
			defer func() {
				if r := recover(); r != nil {
					panicOnce.Do(func() {
						caught = &Panic{Value: r, Stack: debug.Stack()}
					})
				}
			}()
			fn()
		}

		select {
		case p.workQueues[workerID] <- wrapped:
		case <-p.done:
			wrapped()
		}
	}

	completionWG.Wait()

	if caught != nil {
		panic(caught)
	}
}

// ForEachChunk splits [0, n) into consecutive chunks of at most chunk items
// and calls fn once per chunk with the chunk index and its half-open range.
//
// At most Workers() tasks are started; they claim chunks through a shared
// atomic cursor until none are left. A single chunk runs on the calling
// goroutine. Panics propagate like in ExecuteAll.
func (p *WorkerPool) ForEachChunk(n, chunk int, fn func(index, lo, hi int)) {
	if n <= 0 {
		return
	}
	if chunk <= 0 {
		chunk = n
	}

	chunks := (n + chunk - 1) / chunk
	if chunks == 1 {
		runInline(func() { fn(0, 0, n) })
		return
	}

	var cursor atomic.Int64
	tasks := min(p.workers, chunks)
	work := make([]func(), tasks)
	for i := range work {
		work[i] = func() {
			for {
				c := int(cursor.Add(1) - 1)
				if c >= chunks {
					return
				}
				lo := c * chunk
				fn(c, lo, min(lo+chunk, n))
			}
		}
	}
	p.ExecuteAll(work)
}

// runInline calls fn on the calling goroutine, converting a panic into a
// *Panic like a pooled task would.
func runInline(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			if p, ok := r.(*Panic); ok {
				panic(p)
			}
			panic(&Panic{Value: r, Stack: debug.Stack()})
		}
	}()
	fn()
}

// Close stops the workers after the queued work has run.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool is still accepting work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}

