package news

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/OlhaTymoshenko/rssreader/core/domain"
	feederrors "github.com/OlhaTymoshenko/rssreader/core/errors"
	"github.com/OlhaTymoshenko/rssreader/core/workers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type controllerFixture struct {
	source     *fakeSource
	display    *recordingDisplay
	dispatcher *workers.Dispatcher
	controller *Controller
}

func newControllerFixture(t *testing.T, source *fakeSource, parser *mockParser) *controllerFixture {
	t.Helper()
	d := workers.NewDispatcher(nil)
	require.NoError(t, d.Start())

	f := &controllerFixture{
		source:     source,
		display:    &recordingDisplay{},
		dispatcher: d,
	}
	f.controller = NewController(source, parser, f.display, d)
	t.Cleanup(func() {
		f.controller.Close()
		_ = d.Stop()
	})
	return f
}

// settle waits for background work and flushes pending deliveries
func (f *controllerFixture) settle(t *testing.T) {
	t.Helper()
	f.controller.Wait()
	require.NoError(t, f.dispatcher.Sync(func() {}))
}

func (f *controllerFixture) waitStarted(t *testing.T) {
	t.Helper()
	select {
	case <-f.source.started:
	case <-time.After(2 * time.Second):
		t.Fatal("task never reached the feed source")
	}
}

func bodyIs(body string) func(ctx context.Context, force bool) (string, error) {
	return func(ctx context.Context, force bool) (string, error) {
		return body, nil
	}
}

func TestController_OnStartDeliversNews(t *testing.T) {
	f := newControllerFixture(t, newFakeSource(bodyIs("cached")), &mockParser{})

	f.controller.OnStart()
	f.settle(t)

	news, errs := f.display.snapshot()
	require.Len(t, news, 1)
	assert.Empty(t, errs)
	assert.Equal(t, "cached", news[0][0].Title)
	assert.Equal(t, []bool{false}, f.source.calls())

	_, active := f.controller.Active()
	assert.False(t, active, "controller returns to idle after delivery")
}

func TestController_OnStartWhileActiveIsIgnored(t *testing.T) {
	source := newFakeSource(bodyIs("body"))
	source.hold()
	f := newControllerFixture(t, source, &mockParser{})

	f.controller.OnStart()
	f.waitStarted(t)
	f.controller.OnStart()
	source.release()
	f.settle(t)

	news, _ := f.display.snapshot()
	assert.Len(t, news, 1)
	assert.Equal(t, []bool{false}, source.calls())
}

func TestController_StopBeforeCompletionDeliversNothing(t *testing.T) {
	source := newFakeSource(bodyIs("late"))
	source.hold()
	f := newControllerFixture(t, source, &mockParser{})

	f.controller.OnStart()
	f.waitStarted(t)
	f.controller.OnStop()
	source.release()
	f.settle(t)

	news, errs := f.display.snapshot()
	assert.Empty(t, news)
	assert.Empty(t, errs)
	_, active := f.controller.Active()
	assert.False(t, active)
}

func TestController_StopCancelsTaskContext(t *testing.T) {
	observed := make(chan error, 1)
	source := newFakeSource(func(ctx context.Context, force bool) (string, error) {
		<-ctx.Done()
		observed <- ctx.Err()
		return "", ctx.Err()
	})
	f := newControllerFixture(t, source, &mockParser{})

	f.controller.OnStart()
	f.waitStarted(t)
	f.controller.OnStop()

	select {
	case err := <-observed:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("task context was not cancelled")
	}
	f.settle(t)

	news, errs := f.display.snapshot()
	assert.Empty(t, news)
	assert.Empty(t, errs, "cancellation is not reported as an error")
}

func TestController_StopWhileIdle(t *testing.T) {
	f := newControllerFixture(t, newFakeSource(bodyIs("x")), &mockParser{})

	f.controller.OnStop()
	f.settle(t)

	assert.Empty(t, f.source.calls())
}

func TestController_ForceReloadSupersedesActiveTask(t *testing.T) {
	source := newFakeSource(func(ctx context.Context, force bool) (string, error) {
		if force {
			return "reloaded", nil
		}
		return "stale", nil
	})
	source.hold()
	f := newControllerFixture(t, source, &mockParser{})

	f.controller.OnStart()
	f.waitStarted(t)
	f.controller.ForceReload()
	f.waitStarted(t)
	source.release()
	f.settle(t)

	news, errs := f.display.snapshot()
	assert.Empty(t, errs)
	require.Len(t, news, 1, "only the reload result is delivered")
	assert.Equal(t, "reloaded", news[0][0].Title)
	assert.Equal(t, []bool{false, true}, source.calls())
}

func TestController_ForceReloadFromIdle(t *testing.T) {
	f := newControllerFixture(t, newFakeSource(bodyIs("fresh")), &mockParser{})

	f.controller.ForceReload()
	f.settle(t)

	news, _ := f.display.snapshot()
	require.Len(t, news, 1)
	assert.Equal(t, []bool{true}, f.source.calls())
}

func TestController_RepeatedReloadsDeliverOnce(t *testing.T) {
	source := newFakeSource(bodyIs("body"))
	source.hold()
	f := newControllerFixture(t, source, &mockParser{})

	for i := 0; i < 5; i++ {
		f.controller.ForceReload()
		f.waitStarted(t)
	}
	source.release()
	f.settle(t)

	news, errs := f.display.snapshot()
	assert.Len(t, news, 1)
	assert.Empty(t, errs)
}

func TestController_NetworkErrorShowsError(t *testing.T) {
	netErr := &feederrors.NetworkError{URL: "http://example.com", Cause: errors.New("timeout")}
	source := newFakeSource(func(ctx context.Context, force bool) (string, error) {
		return "", netErr
	})
	f := newControllerFixture(t, source, &mockParser{})

	f.controller.OnStart()
	f.settle(t)

	news, errs := f.display.snapshot()
	assert.Empty(t, news)
	require.Len(t, errs, 1)
	assert.True(t, feederrors.IsNetwork(errs[0]))
}

func TestController_ParseErrorShowsError(t *testing.T) {
	parser := &mockParser{parseFunc: func(body string) ([]domain.Article, error) {
		return nil, &feederrors.ParseError{Cause: errors.New("unexpected EOF")}
	}}
	f := newControllerFixture(t, newFakeSource(bodyIs("<rss>")), parser)

	f.controller.OnStart()
	f.settle(t)

	news, errs := f.display.snapshot()
	assert.Empty(t, news)
	require.Len(t, errs, 1)
	assert.True(t, feederrors.IsParse(errs[0]))
	assert.Equal(t, []bool{false}, f.source.calls(), "no retry after a parse error")
}

func TestController_ShowsLoadingWhileActive(t *testing.T) {
	source := newFakeSource(bodyIs("body"))
	source.hold()
	f := newControllerFixture(t, source, &mockParser{})

	f.controller.OnStart()
	f.waitStarted(t)
	require.NoError(t, f.dispatcher.Sync(func() {}))

	task, active := f.controller.Active()
	assert.True(t, active)
	assert.NotEmpty(t, task.ID)
	assert.False(t, task.Force)

	source.release()
	f.settle(t)
	assert.Equal(t, 1, f.display.loading)
}

func TestController_TaskIDsAreUnique(t *testing.T) {
	source := newFakeSource(bodyIs("body"))
	source.hold()
	f := newControllerFixture(t, source, &mockParser{})

	f.controller.OnStart()
	first, _ := f.controller.Active()
	f.controller.ForceReload()
	second, _ := f.controller.Active()

	assert.NotEqual(t, first.ID, second.ID)
	assert.True(t, second.Force)
	source.release()
}

func TestController_RejectedExecutorReturnsToIdle(t *testing.T) {
	source := newFakeSource(bodyIs("body"))
	display := &recordingDisplay{}
	c := NewController(source, &mockParser{}, display, rejectingExecutor{})

	c.OnStart()
	c.Wait()

	_, active := c.Active()
	assert.False(t, active)
	news, errs := display.snapshot()
	assert.Empty(t, news)
	assert.Empty(t, errs)
}
