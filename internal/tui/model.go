package tui

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/productdesk/internal/keybinds"
	"github.com/studiowebux/productdesk/internal/types"
	"github.com/studiowebux/productdesk/internal/viewmodel"
)

// Screen represents the page currently shown
type Screen int

const (
	ScreenProducts Screen = iota
	ScreenAddProduct
	ScreenProductDetail
)

// String returns the screen name used in logs
func (s Screen) String() string {
	switch s {
	case ScreenProducts:
		return "products"
	case ScreenAddProduct:
		return "add_product"
	case ScreenProductDetail:
		return "product_detail"
	default:
		return "unknown"
	}
}

// Model represents the TUI state. Everything here is owned by the render
// loop; state shared with network calls lives in the view-model.
type Model struct {
	vm       *viewmodel.ViewModel
	keybinds *keybinds.Registry
	logger   *slog.Logger

	screen Screen

	// Products screen
	cursor int // index into fixed entries followed by product rows

	// Add screen
	addForm productForm

	// Detail screen
	selectedID   types.ProductID
	detailForm   productForm
	detailLoaded bool // inputs hold the fetched record

	statusMsg string

	width  int
	height int

	frameInterval time.Duration
	fetchOnStart  bool
	logo          string

	copyToClipboard func(string) error
}

// Init starts the frame loop
func (m *Model) Init() tea.Cmd {
	if m.fetchOnStart {
		m.vm.FetchShortProducts()
	}
	return tea.Batch(tea.SetWindowTitle(WindowTitle), m.tick())
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.syncDetail()
		return m, m.tick()

	case tea.KeyMsg:
		// Any press dismisses the error before it is handled
		m.vm.ClearError()
		cmd := m.handleKeyPress(msg)
		m.syncDetail()
		return m, cmd

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || tea.MouseEvent(msg).IsWheel() {
			return m, nil
		}
		// The click landed on the layout drawn with the error line
		top := m.bodyTop()
		m.vm.ClearError()
		cmd := m.handleMouse(msg, top)
		m.syncDetail()
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// navigate switches screens. Form state is kept by the caller.
func (m *Model) navigate(to Screen) {
	if m.screen == to {
		return
	}
	m.logger.Debug("navigate", slog.String("from", m.screen.String()), slog.String("to", to.String()))
	m.screen = to
	m.statusMsg = ""
}

// products returns the list as drawn this frame
func (m *Model) products() []types.ShortProduct {
	return m.vm.ShortProducts()
}

// entryCount is the number of selectable entries on the products screen
func (m *Model) entryCount(products []types.ShortProduct) int {
	return fixedEntries + len(products)
}

// clampCursor keeps the cursor on an entry after the list shrank
func (m *Model) clampCursor(products []types.ShortProduct) {
	if n := m.entryCount(products); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// syncDetail copies the fetched record into the detail inputs once it arrives
func (m *Model) syncDetail() {
	if m.screen != ScreenProductDetail || m.detailLoaded {
		return
	}
	p, ok := m.vm.Detail()
	if !ok || p.ID != m.selectedID {
		return
	}
	m.detailForm.fill(p)
	m.detailForm.setFocus(0)
	m.detailLoaded = true
}
