// ABOUTME: Bubbletea model for the news screen and the article reader view
// ABOUTME: Maps screen lifecycle and keys onto the news controller

package tui

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/OlhaTymoshenko/rssreader/core/domain"
	"github.com/OlhaTymoshenko/rssreader/core/interfaces"
	"github.com/OlhaTymoshenko/rssreader/pkg/utils/duration"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const readerTimeout = 30 * time.Second

// Controller is the part of news.Controller the screen drives
type Controller interface {
	OnStart()
	OnStop()
	ForceReload()
}

type mode int

const (
	modeList mode = iota
	modeReader
)

// Options holds the parameters for building the app.
// Controller may be bound later with SetController.
type Options struct {
	Controller Controller
	Reader     interfaces.ReaderService
	FeedURL    string
	Now        func() time.Time
}

// App is the root bubbletea model. It is also the news display: its Show
// methods run on the event loop through Executor.
type App struct {
	ctrl    Controller
	reader  interfaces.ReaderService
	feedURL string
	now     func() time.Time

	articles []domain.Article
	cursor   int
	mode     mode
	loading  bool
	err      error

	readerLink    string
	readerTitle   string
	readerLoading bool

	spinner  spinner.Model
	viewport viewport.Model

	width  int
	height int
}

// NewApp creates the model in its loading state
func NewApp(opts Options) *App {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &App{
		ctrl:     opts.Controller,
		reader:   opts.Reader,
		feedURL:  opts.FeedURL,
		now:      now,
		loading:  true,
		spinner:  sp,
		viewport: viewport.New(80, 20),
		width:    80,
		height:   24,
	}
}

// SetController binds the controller driven by the screen lifecycle
func (a *App) SetController(c Controller) {
	a.ctrl = c
}

// ShowLoading marks a task as running
func (a *App) ShowLoading() {
	a.loading = true
}

// ShowNews replaces the list with the parsed articles
func (a *App) ShowNews(articles []domain.Article) {
	a.loading = false
	a.err = nil
	a.articles = articles
	if a.cursor >= len(a.articles) {
		a.cursor = max(0, len(a.articles)-1)
	}
}

// ShowError shows a task failure above the current list
func (a *App) ShowError(err error) {
	a.loading = false
	a.err = err
}

// Init starts the first cache-eligible load
func (a *App) Init() tea.Cmd {
	ctrl := a.ctrl
	return tea.Batch(a.spinner.Tick, func() tea.Msg {
		ctrl.OnStart()
		return nil
	})
}

// Update handles window, key, delivery and spinner messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.viewport.Width = msg.Width
		a.viewport.Height = max(1, msg.Height-2)
		return a, nil

	case tea.KeyMsg:
		if a.mode == modeReader {
			return a.updateReader(msg)
		}
		return a.updateList(msg)

	case execMsg:
		msg.fn()
		if a.loading {
			return a, a.spinner.Tick
		}
		return a, nil

	case readerMsg:
		if a.mode != modeReader || msg.link != a.readerLink {
			return a, nil
		}
		a.readerLoading = false
		if msg.err != nil {
			a.viewport.SetContent(errorStyle.Render("Fail to load article: " + msg.err.Error()))
			return a, nil
		}
		if msg.view.Title != "" {
			a.readerTitle = msg.view.Title
		}
		a.viewport.SetContent(lipgloss.NewStyle().Width(a.viewport.Width).Render(msg.view.Markdown))
		a.viewport.GotoTop()
		return a, nil

	case spinner.TickMsg:
		if !a.loading && !a.readerLoading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a *App) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		a.ctrl.OnStop()
		return a, tea.Quit
	case "r":
		a.ctrl.ForceReload()
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.articles)-1 {
			a.cursor++
		}
	case "enter":
		return a, a.openReader()
	}
	return a, nil
}

func (a *App) updateReader(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		a.ctrl.OnStop()
		return a, tea.Quit
	case "esc", "q", "backspace":
		a.mode = modeList
		a.readerLink = ""
		a.readerLoading = false
		return a, nil
	}

	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return a, cmd
}

func (a *App) openReader() tea.Cmd {
	if a.reader == nil || len(a.articles) == 0 {
		return nil
	}
	article := a.articles[a.cursor]
	if article.Link == "" {
		return nil
	}

	a.mode = modeReader
	a.readerLink = article.Link
	a.readerTitle = article.Title
	a.readerLoading = true
	a.viewport.SetContent("")

	reader := a.reader
	link := article.Link
	return tea.Batch(a.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), readerTimeout)
		defer cancel()
		view, err := reader.Extract(ctx, link)
		return readerMsg{link: link, view: view, err: err}
	})
}

// View renders the list or the reader view
func (a *App) View() string {
	if a.mode == modeReader {
		return a.viewReader()
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("RSS Reader"))
	if host := hostOf(a.feedURL); host != "" {
		b.WriteString(" " + itemMetaStyle.Render(host))
	}
	b.WriteString("\n")

	switch {
	case a.err != nil:
		b.WriteString(errorStyle.Render("Fail to load news: " + a.err.Error()))
		b.WriteString("\n")
	case a.loading && len(a.articles) == 0:
		b.WriteString(" " + a.spinner.View() + " Loading news...\n")
	case len(a.articles) == 0:
		b.WriteString(itemMetaStyle.Render(" No news") + "\n")
	}

	b.WriteString(a.viewArticles())
	b.WriteString(a.statusBar())
	return b.String()
}

func (a *App) viewArticles() string {
	if len(a.articles) == 0 {
		return ""
	}

	visible := max(1, (a.height-3)/2)
	start := 0
	if a.cursor >= visible {
		start = a.cursor - visible + 1
	}
	end := min(len(a.articles), start+visible)

	var b strings.Builder
	now := a.now()
	for i := start; i < end; i++ {
		article := a.articles[i]
		title := itemTitleStyle.Render("  " + article.Title)
		if i == a.cursor {
			title = itemSelectedStyle.Render("> " + article.Title)
		}
		b.WriteString(title + "\n")

		meta := "    " + duration.Ago(article.PublishedAt, now)
		if host := hostOf(article.Link); host != "" {
			meta += " · " + host
		}
		b.WriteString(itemMetaStyle.Render(meta) + "\n")
	}
	return b.String()
}

func (a *App) statusBar() string {
	var status string
	if a.loading {
		status = a.spinner.View() + " Refreshing · q quit"
	} else {
		status = fmt.Sprintf("%d articles · r refresh · enter read · q quit", len(a.articles))
	}
	return statusBarStyle.Width(a.width).Render(status)
}

func (a *App) viewReader() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(a.readerTitle))
	b.WriteString("\n")
	if a.readerLoading {
		b.WriteString(" " + a.spinner.View() + " Loading article...\n")
	} else {
		b.WriteString(a.viewport.View())
		b.WriteString("\n")
	}
	b.WriteString(statusBarStyle.Width(a.width).Render("esc back · ↑/↓ scroll · ctrl+c quit"))
	return b.String()
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Host
}
