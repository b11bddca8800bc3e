// ABOUTME: Dispatcher is a single goroutine executor that runs posted functions in order
// ABOUTME: Serves as the delivery context for controller state changes and UI callbacks

package workers

import (
	"fmt"
	"sync"

	"github.com/OlhaTymoshenko/rssreader/core/interfaces"
)

// Dispatcher runs posted functions one at a time on its own goroutine, in
// posting order. Post never blocks, so posted functions may post more work.
type Dispatcher struct {
	logger  interfaces.Logger
	mu      sync.Mutex
	queue   []func()
	notify  chan struct{}
	done    chan struct{}
	running bool
}

// NewDispatcher creates a dispatcher. Call Start before posting work.
func NewDispatcher(logger interfaces.Logger) *Dispatcher {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &Dispatcher{logger: logger}
}

// Start starts the dispatch loop
func (d *Dispatcher) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		return nil
	}

	d.notify = make(chan struct{}, 1)
	d.done = make(chan struct{})
	d.running = true
	go d.run(d.notify, d.done)
	return nil
}

// Stop stops accepting work, runs what is already queued and waits for the
// loop to exit. It must not be called from a posted function.
func (d *Dispatcher) Stop() error {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return nil
	}
	d.running = false
	d.wake()
	done := d.done
	d.mu.Unlock()

	<-done
	return nil
}

// Post schedules fn to run on the dispatch goroutine
func (d *Dispatcher) Post(fn func()) error {
	if fn == nil {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.running {
		return ErrWorkerNotRunning
	}
	d.queue = append(d.queue, fn)
	d.wake()
	return nil
}

// Sync posts fn and waits until it has run.
// It must not be called from a posted function.
func (d *Dispatcher) Sync(fn func()) error {
	finished := make(chan struct{})
	err := d.Post(func() {
		defer close(finished)
		fn()
	})
	if err != nil {
		return err
	}
	<-finished
	return nil
}

// Running reports whether the dispatcher accepts work
func (d *Dispatcher) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}

// wake signals the loop; callers hold d.mu
func (d *Dispatcher) wake() {
	select {
	case d.notify <- struct{}{}:
	default:
	}
}

// run is the dispatch loop
func (d *Dispatcher) run(notify <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	for {
		d.mu.Lock()
		if len(d.queue) == 0 {
			if !d.running {
				d.mu.Unlock()
				return
			}
			d.mu.Unlock()
			<-notify
			continue
		}
		fn := d.queue[0]
		d.queue[0] = nil
		d.queue = d.queue[1:]
		d.mu.Unlock()

		d.execute(fn)
	}
}

// execute runs fn, keeping the loop alive if it panics
func (d *Dispatcher) execute(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Dispatched function panicked", map[string]interface{}{
				"panic": fmt.Sprint(r),
			})
		}
	}()
	fn()
}
