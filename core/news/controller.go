// ABOUTME: News controller runs the fetch-parse-deliver task behind the news screen
// ABOUTME: Owns at most one active task and delivers results on the delivery executor

package news

import (
	"context"
	"sync"
	"time"

	"github.com/OlhaTymoshenko/rssreader/core/domain"
	"github.com/OlhaTymoshenko/rssreader/core/feed"
	"github.com/OlhaTymoshenko/rssreader/core/interfaces"
	"github.com/google/uuid"
)

// FeedSource provides the raw feed document
type FeedSource interface {
	GetFeedBody(ctx context.Context, forceRefresh bool) (string, error)
}

// Display is the surface that shows the outcome of a task.
// Its methods are only invoked on the delivery executor. They must not call
// OnStart, OnStop or ForceReload synchronously; post such calls instead.
type Display interface {
	ShowNews(articles []domain.Article)
	ShowError(err error)
}

// LoadingDisplay is implemented by displays that show progress while a task runs
type LoadingDisplay interface {
	ShowLoading()
}

// Task is one in-flight fetch-parse-deliver operation
type Task struct {
	ID        string
	Force     bool
	StartedAt time.Time

	ctx    context.Context
	cancel context.CancelFunc
}

// Controller drives the news screen lifecycle
type Controller struct {
	source   FeedSource
	parser   feed.Parser
	display  Display
	executor interfaces.Executor
	logger   interfaces.Logger
	baseCtx  context.Context
	now      func() time.Time

	mu         sync.Mutex
	idle       *sync.Cond
	active     *Task
	delivering bool
	wg         sync.WaitGroup
}

// Option configures a Controller
type Option func(*Controller)

// WithLogger sets the controller logger
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithContext sets the parent context of every task
func WithContext(ctx context.Context) Option {
	return func(c *Controller) {
		if ctx != nil {
			c.baseCtx = ctx
		}
	}
}

// NewController creates a controller. Results are posted to executor.
func NewController(source FeedSource, parser feed.Parser, display Display, executor interfaces.Executor, opts ...Option) *Controller {
	c := &Controller{
		source:   source,
		parser:   parser,
		display:  display,
		executor: executor,
		logger:   interfaces.NopLogger{},
		baseCtx:  context.Background(),
		now:      time.Now,
	}
	c.idle = sync.NewCond(&c.mu)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnStart starts a cache-eligible load unless a task is already running
func (c *Controller) OnStart() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for {
		if c.active != nil {
			c.logger.Debug("Task already running", map[string]interface{}{
				"task_id": c.active.ID,
			})
			return
		}
		if !c.delivering {
			break
		}
		c.idle.Wait()
	}
	c.startLocked(false)
}

// OnStop cancels the active task. It returns once no display callback is
// running, and nothing is delivered afterwards.
func (c *Controller) OnStop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelAndWaitLocked()
}

// ForceReload cancels any active task and starts a network-only load
func (c *Controller) ForceReload() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelAndWaitLocked()
	c.startLocked(true)
}

// Active returns the running task, if any
func (c *Controller) Active() (Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active == nil {
		return Task{}, false
	}
	return *c.active, true
}

// Wait blocks until every task goroutine has handed off its result
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close cancels the active task and waits for background work to finish
func (c *Controller) Close() {
	c.OnStop()
	c.Wait()
}

func (c *Controller) startLocked(force bool) {
	ctx, cancel := context.WithCancel(c.baseCtx)
	task := &Task{
		ID:        uuid.NewString(),
		Force:     force,
		StartedAt: c.now(),
		ctx:       ctx,
		cancel:    cancel,
	}
	c.active = task

	c.logger.Info("Loading news", map[string]interface{}{
		"task_id": task.ID,
		"force":   force,
	})

	if loading, ok := c.display.(LoadingDisplay); ok {
		err := c.executor.Post(func() {
			if !c.beginDelivery(task, false) {
				return
			}
			defer c.endDelivery()
			loading.ShowLoading()
		})
		if err != nil {
			c.logger.Warn("Delivery executor rejected loading update", map[string]interface{}{
				"task_id": task.ID,
				"error":   err.Error(),
			})
		}
	}

	c.wg.Add(1)
	go c.run(task)
}

func (c *Controller) cancelLocked() {
	if c.active == nil {
		return
	}
	c.logger.Debug("Cancelling task", map[string]interface{}{
		"task_id": c.active.ID,
	})
	c.active.cancel()
	c.active = nil
}

// cancelAndWaitLocked cancels the active task and waits out any display
// callback in progress. Tasks started while waiting are cancelled as well.
func (c *Controller) cancelAndWaitLocked() {
	for {
		c.cancelLocked()
		if !c.delivering {
			return
		}
		c.idle.Wait()
	}
}

// beginDelivery reports whether task may reach the display. On success the
// display is marked busy until endDelivery; finish also retires the task.
func (c *Controller) beginDelivery(task *Task, finish bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active != task {
		return false
	}
	if finish {
		c.active = nil
	}
	c.delivering = true
	return true
}

func (c *Controller) endDelivery() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.delivering = false
	c.idle.Broadcast()
}

// run executes the task in the background and hands the result to the executor
func (c *Controller) run(task *Task) {
	defer c.wg.Done()

	body, err := c.source.GetFeedBody(task.ctx, task.Force)
	var articles []domain.Article
	if err == nil {
		articles, err = c.parser.Parse(body)
	}

	c.post(task, func() {
		c.deliver(task, articles, err)
	})
}

// deliver runs on the executor. Results of tasks that are no longer active are dropped.
func (c *Controller) deliver(task *Task, articles []domain.Article, err error) {
	if !c.beginDelivery(task, true) {
		c.logger.Debug("Dropping result of cancelled task", map[string]interface{}{
			"task_id": task.ID,
		})
		return
	}
	defer c.endDelivery()
	task.cancel()

	if err != nil {
		c.logger.Error("Failed to load news", map[string]interface{}{
			"task_id": task.ID,
			"error":   err.Error(),
		})
		c.display.ShowError(err)
		return
	}

	c.logger.Info("News loaded", map[string]interface{}{
		"task_id":  task.ID,
		"articles": len(articles),
		"elapsed":  c.now().Sub(task.StartedAt).String(),
	})
	c.display.ShowNews(articles)
}

// post hands fn to the executor. If the executor refuses, the task is abandoned.
func (c *Controller) post(task *Task, fn func()) {
	if err := c.executor.Post(fn); err != nil {
		c.logger.Warn("Delivery executor rejected task result", map[string]interface{}{
			"task_id": task.ID,
			"error":   err.Error(),
		})
		c.mu.Lock()
		if c.active == task {
			c.active = nil
			task.cancel()
		}
		c.mu.Unlock()
	}
}
