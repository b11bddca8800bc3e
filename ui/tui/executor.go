// ABOUTME: Executor that runs posted functions on the bubbletea event loop
// ABOUTME: Controller callbacks and key handling therefore never run concurrently

package tui

import (
	"sync"

	"github.com/OlhaTymoshenko/rssreader/core/interfaces"
	"github.com/OlhaTymoshenko/rssreader/core/workers"
	tea "github.com/charmbracelet/bubbletea"
)

// Executor implements interfaces.Executor on top of a running program.
// Post never blocks; functions reach the event loop in posting order.
type Executor struct {
	queue *workers.Dispatcher

	mu   sync.RWMutex
	send func(tea.Msg)
}

// NewExecutor creates a detached executor
func NewExecutor(logger interfaces.Logger) *Executor {
	return &Executor{queue: workers.NewDispatcher(logger)}
}

// Attach routes posted functions to p. Functions forwarded before Attach are dropped.
func (e *Executor) Attach(p *tea.Program) {
	e.setSender(p.Send)
}

func (e *Executor) setSender(send func(tea.Msg)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.send = send
}

// Start starts forwarding
func (e *Executor) Start() error {
	return e.queue.Start()
}

// Stop forwards what is queued and stops accepting work
func (e *Executor) Stop() error {
	return e.queue.Stop()
}

// Post schedules fn on the event loop
func (e *Executor) Post(fn func()) error {
	return e.queue.Post(func() {
		e.mu.RLock()
		send := e.send
		e.mu.RUnlock()

		if send != nil {
			send(execMsg{fn: fn})
		}
	})
}
