package executor

import (
	"sync"

	"github.com/deeponelabs/deepone-go/internal/ports"
)

// Serial runs tasks one at a time, in submission order, on a single
// goroutine. It stands in for a host's main thread.
//
// The queue is unbounded and Execute never blocks, so a running task may
// submit more work.
type Serial struct {
	mu      sync.Mutex
	queue   []func()
	closing bool
	stopped bool
	signal  chan struct{} // buffered, size 1
	done    chan struct{}
}

var _ ports.Executor = (*Serial)(nil)

// NewSerial starts the executor. capacity presizes the queue.
func NewSerial(capacity int) *Serial {
	if capacity < 0 {
		capacity = 0
	}

	s := &Serial{
		queue:  make([]func(), 0, capacity),
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	go s.loop()

	return s
}

// Execute queues task. Tasks submitted once the executor has stopped are
// dropped.
func (s *Serial) Execute(task func()) {
	if task == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	s.queue = append(s.queue, task)
	s.notify()
}

// Close stops the executor once the queue is empty, including tasks queued by
// tasks that run during the drain. It must not be called from a task.
func (s *Serial) Close() {
	s.mu.Lock()
	s.closing = true
	s.notify()
	s.mu.Unlock()

	<-s.done
}

// notify wakes the loop. Multiple signals coalesce. Callers hold s.mu.
func (s *Serial) notify() {
	select {
	case s.signal <- struct{}{}:
	default:
	}
}

func (s *Serial) loop() {
	defer close(s.done)

	for {
		task, ok := s.next()
		if !ok {
			return
		}
		if task == nil {
			<-s.signal
			continue
		}
		task()
	}
}

// next pops the front task. It returns a nil task when the loop should wait,
// and ok=false once closing with nothing left to run.
func (s *Serial) next() (func(), bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) == 0 {
		if s.closing {
			s.stopped = true
			return nil, false
		}
		return nil, true
	}

	task := s.queue[0]
	s.queue[0] = nil
	s.queue = s.queue[1:]
	return task, true
}
