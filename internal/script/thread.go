package script

import (
	"log/slog"
	"sync"

	"go.starlark.net/starlark"
)

// DefaultStepLimit bounds the Starlark steps a single action call may take.
const DefaultStepLimit = 10_000_000

// ThreadPool hands out Starlark threads for action calls and takes them
// back when the call ends cleanly.
type ThreadPool struct {
	mu        sync.Mutex
	idle      []*starlark.Thread
	capacity  int
	stepLimit uint64
	logger    *slog.Logger
}

// PoolOption configures a ThreadPool.
type PoolOption func(*ThreadPool)

// WithStepLimit caps the steps of each call. Zero means no cap.
func WithStepLimit(steps uint64) PoolOption {
	return func(p *ThreadPool) { p.stepLimit = steps }
}

// WithPrintLogger sends script print() output to logger at debug level.
func WithPrintLogger(logger *slog.Logger) PoolOption {
	return func(p *ThreadPool) { p.logger = logger }
}

// NewThreadPool keeps up to capacity idle threads; capacity <= 0 means 10.
func NewThreadPool(capacity int, opts ...PoolOption) *ThreadPool {
	if capacity <= 0 {
		capacity = 10
	}
	p := &ThreadPool{
		idle:     make([]*starlark.Thread, 0, capacity),
		capacity: capacity,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Get returns a thread named after the action it will run, with a fresh
// step budget.
func (p *ThreadPool) Get(action string) *starlark.Thread {
	p.mu.Lock()
	var thread *starlark.Thread
	if n := len(p.idle); n > 0 {
		thread = p.idle[n-1]
		p.idle = p.idle[:n-1]
	}
	p.mu.Unlock()

	if thread == nil {
		thread = &starlark.Thread{Print: p.print}
	}
	thread.Name = action
	if p.stepLimit > 0 {
		thread.SetMaxExecutionSteps(thread.ExecutionSteps() + p.stepLimit)
	}
	return thread
}

// Put returns a thread after a call. A thread whose call failed may have
// been cancelled, which is permanent, so it is dropped.
func (p *ThreadPool) Put(thread *starlark.Thread, failed bool) {
	if failed {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.idle) < p.capacity {
		p.idle = append(p.idle, thread)
	}
}

// Size returns the number of idle threads.
func (p *ThreadPool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.idle)
}

func (p *ThreadPool) print(thread *starlark.Thread, msg string) {
	p.logger.Debug("script print", slog.String("action", thread.Name), slog.String("msg", msg))
}
