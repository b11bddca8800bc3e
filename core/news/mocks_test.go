package news

import (
	"context"
	"sync"

	"github.com/OlhaTymoshenko/rssreader/core/domain"
)

// fakeSource is a FeedSource whose calls can be held until released
type fakeSource struct {
	mu       sync.Mutex
	forces   []bool
	gate     chan struct{}
	started  chan struct{}
	bodyFunc func(ctx context.Context, force bool) (string, error)
}

func newFakeSource(bodyFunc func(ctx context.Context, force bool) (string, error)) *fakeSource {
	return &fakeSource{
		started:  make(chan struct{}, 16),
		bodyFunc: bodyFunc,
	}
}

// hold makes every call block until release is called or its context ends
func (s *fakeSource) hold() {
	s.gate = make(chan struct{})
}

func (s *fakeSource) release() {
	close(s.gate)
}

func (s *fakeSource) GetFeedBody(ctx context.Context, force bool) (string, error) {
	s.mu.Lock()
	s.forces = append(s.forces, force)
	gate := s.gate
	s.mu.Unlock()
	s.started <- struct{}{}

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return s.bodyFunc(ctx, force)
}

func (s *fakeSource) calls() []bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]bool(nil), s.forces...)
}

// mockParser is a func-field Parser
type mockParser struct {
	parseFunc func(body string) ([]domain.Article, error)
}

func (m *mockParser) Parse(body string) ([]domain.Article, error) {
	if m.parseFunc != nil {
		return m.parseFunc(body)
	}
	return []domain.Article{{Title: body, Link: "https://example.com/" + body}}, nil
}

// recordingDisplay records every callback it receives
type recordingDisplay struct {
	mu      sync.Mutex
	news    [][]domain.Article
	errs    []error
	loading int
}

func (d *recordingDisplay) ShowNews(articles []domain.Article) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.news = append(d.news, articles)
}

func (d *recordingDisplay) ShowError(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.errs = append(d.errs, err)
}

func (d *recordingDisplay) ShowLoading() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.loading++
}

func (d *recordingDisplay) snapshot() ([][]domain.Article, []error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([][]domain.Article(nil), d.news...), append([]error(nil), d.errs...)
}

// rejectingExecutor refuses all work
type rejectingExecutor struct{}

func (rejectingExecutor) Post(fn func()) error {
	return context.Canceled
}

// gatedLogger blocks the first log call with the given message until released
type gatedLogger struct {
	msg     string
	once    sync.Once
	entered chan struct{}
	gate    chan struct{}
}

func newGatedLogger(msg string) *gatedLogger {
	return &gatedLogger{
		msg:     msg,
		entered: make(chan struct{}),
		gate:    make(chan struct{}),
	}
}

func (l *gatedLogger) hold(msg string) {
	if msg != l.msg {
		return
	}
	l.once.Do(func() {
		close(l.entered)
		<-l.gate
	})
}

func (l *gatedLogger) release() {
	close(l.gate)
}

func (l *gatedLogger) Debug(msg string, fields map[string]interface{}) { l.hold(msg) }
func (l *gatedLogger) Info(msg string, fields map[string]interface{})  { l.hold(msg) }
func (l *gatedLogger) Warn(msg string, fields map[string]interface{})  { l.hold(msg) }
func (l *gatedLogger) Error(msg string, fields map[string]interface{}) { l.hold(msg) }
