// Package mini implements a lightweight, minimalist interface for interactive video downloading.
package mini

import (
	"context"
	"os"
	"os/signal"

	"github.com/DowranRowshenow/youtube-downloader/network"
	"github.com/DowranRowshenow/youtube-downloader/provider"
	"github.com/DowranRowshenow/youtube-downloader/source"
	"github.com/DowranRowshenow/youtube-downloader/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

type Options struct {
	// URL pre-fills the address prompt when given on the command line.
	URL string
}

type mini struct {
	ctx           context.Context
	width, height int

	state         state
	statesHistory util.Stack[state]

	proxy mo.Option[network.ProxyConfig]
	src   source.Source

	reference  source.Reference
	catalog    *source.Catalog
	selection  source.Selection
	outputPath string

	options *Options
}

func newMini(options *Options) *mini {
	return &mini{
		ctx:           context.Background(),
		statesHistory: util.Stack[state]{},
		options:       options,
	}
}

func (m *mini) previousState() {
	if m.statesHistory.Len() > 0 {
		m.setState(m.statesHistory.Pop())
	}
}

func (m *mini) setState(s state) {
	m.state = s
}

func (m *mini) newState(s state) {
	if m.state == s {
		return
	}

	if !lo.Contains([]state{fetchState}, m.state) {
		m.statesHistory.Push(m.state)
	}

	m.setState(s)
}

func Run(options *Options) error {
	m := newMini(options)
	m.state = urlInputState

	ctx, stop := signal.NotifyContext(m.ctx, os.Interrupt)
	defer stop()
	m.ctx = ctx

	if w, h, err := util.TerminalSize(); err == nil {
		m.width, m.height = w, h
	}

	erase := progress("Probing local proxy..")
	m.proxy = network.DetectProxy(m.ctx)
	erase()

	src, err := provider.Default().CreateSource(m.proxy)
	if err != nil {
		return err
	}
	m.src = src

	for {
		if err := m.handleState(); err != nil {
			return err
		}
	}
}

func (m *mini) handleState() error {
	switch m.state {
	case urlInputState:
		return m.handleURLInputState()
	case qualitySelectState:
		return m.handleQualitySelectState()
	case fetchState:
		return m.handleFetchState()
	case doneState:
		return m.handleDoneState()
	case quitState:
		os.Exit(0)
	}

	return nil
}
