package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/productdesk/internal/keybinds"
	"github.com/studiowebux/productdesk/internal/viewmodel"
)

// Options configures the TUI
type Options struct {
	FrameInterval time.Duration
	FetchOnStart  bool
	Icon          []byte // PNG shown in the header, optional
	Logger        *slog.Logger
}

// New creates a new TUI model
func New(vm *viewmodel.ViewModel, keys *keybinds.Registry, opts Options) (Model, error) {
	if keys == nil {
		keys = keybinds.NewDefaultRegistry()
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = DefaultFrameInterval
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	var logo string
	if len(opts.Icon) > 0 {
		var err error
		logo, err = renderLogo(opts.Icon, LogoWidth)
		if err != nil {
			return Model{}, fmt.Errorf("failed to load icon: %w", err)
		}
	}

	m := Model{
		vm:              vm,
		keybinds:        keys,
		logger:          opts.Logger,
		screen:          ScreenProducts,
		addForm:         newProductForm(buttonAdd, buttonBack),
		detailForm:      newProductForm(buttonSave, buttonDelete, buttonBack),
		width:           DefaultWidth,
		height:          DefaultHeight,
		frameInterval:   opts.FrameInterval,
		fetchOnStart:    opts.FetchOnStart,
		logo:            logo,
		copyToClipboard: clipboard.WriteAll,
	}

	return m, nil
}

// Run starts the TUI and blocks until the user quits
func Run(vm *viewmodel.ViewModel, keys *keybinds.Registry, opts Options) error {
	m, err := New(vm, keys, opts)
	if err != nil {
		return err
	}

	// Pass a pointer since Update uses a pointer receiver
	p := tea.NewProgram(&m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return err
	}

	m.logger.Info("tui_stopped")
	return nil
}

type tickMsg time.Time

// tick schedules the next frame
func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.frameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
