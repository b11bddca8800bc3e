package tui

import "github.com/OlhaTymoshenko/rssreader/core/domain"

// execMsg carries a function posted to the Executor into the event loop
type execMsg struct {
	fn func()
}

type readerMsg struct {
	link string
	view domain.ReaderView
	err  error
}
