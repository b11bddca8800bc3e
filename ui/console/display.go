// ABOUTME: Console display prints the outcome of a single news task to a writer
// ABOUTME: Used by the fetch command, which waits for exactly one result

package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/OlhaTymoshenko/rssreader/core/domain"
	"github.com/OlhaTymoshenko/rssreader/pkg/utils/duration"
)

// ErrLoadFailed wraps every task failure reported by the display
var ErrLoadFailed = errors.New("fail to load news")

// Display writes articles to out and progress to status
type Display struct {
	out    io.Writer
	status io.Writer
	now    func() time.Time

	once   sync.Once
	done   chan struct{}
	result error
	count  int
}

// NewDisplay creates a console display. status may be nil.
func NewDisplay(out, status io.Writer) *Display {
	return &Display{
		out:    out,
		status: status,
		now:    time.Now,
		done:   make(chan struct{}),
	}
}

// ShowLoading prints a progress line
func (d *Display) ShowLoading() {
	if d.status != nil {
		fmt.Fprintln(d.status, "Loading news...")
	}
}

// ShowNews prints one block per article
func (d *Display) ShowNews(articles []domain.Article) {
	now := d.now()
	for i, a := range articles {
		fmt.Fprintf(d.out, "%d. %s\n", i+1, a.Title)
		fmt.Fprintf(d.out, "   %s\n", duration.Ago(a.PublishedAt, now))
		if a.Link != "" {
			fmt.Fprintf(d.out, "   %s\n", a.Link)
		}
		if a.Summary != "" {
			fmt.Fprintf(d.out, "   %s\n", a.Summary)
		}
	}
	d.finish(len(articles), nil)
}

// ShowError prints the failure to status, or to out when status is nil
func (d *Display) ShowError(err error) {
	w := d.status
	if w == nil {
		w = d.out
	}
	fmt.Fprintf(w, "Fail to load news: %v\n", err)
	d.finish(0, fmt.Errorf("%w: %w", ErrLoadFailed, err))
}

// Wait blocks until a result was shown or ctx is done.
// It returns the number of articles printed.
func (d *Display) Wait(ctx context.Context) (int, error) {
	select {
	case <-d.done:
		return d.count, d.result
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func (d *Display) finish(count int, err error) {
	d.once.Do(func() {
		d.count = count
		d.result = err
		close(d.done)
	})
}
