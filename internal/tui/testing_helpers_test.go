package tui

import (
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/productdesk/internal/api"
	"github.com/studiowebux/productdesk/internal/keybinds"
	"github.com/studiowebux/productdesk/internal/logging"
	"github.com/studiowebux/productdesk/internal/mock"
	"github.com/studiowebux/productdesk/internal/viewmodel"
)

const (
	waitFor  = 2 * time.Second
	pollTick = 5 * time.Millisecond
)

// CreateTestModel creates a Model backed by a mock product API
func CreateTestModel(t *testing.T, routes ...mock.Route) (*Model, *mock.Server) {
	t.Helper()

	srv := mock.NewServer(&mock.Config{Routes: routes, Logging: true}, t.TempDir())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	client, err := api.NewClient(api.Options{BaseURL: ts.URL, Logger: logging.Discard()})
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	vm := viewmodel.New(client, logging.Discard())
	m, err := New(vm, keybinds.NewDefaultRegistry(), Options{Logger: logging.Discard()})
	if err != nil {
		t.Fatalf("Failed to create test model: %v", err)
	}
	m.copyToClipboard = func(string) error { return nil }

	return &m, srv
}

// press sends key presses to the model
func press(m *Model, keys ...tea.KeyMsg) {
	for _, k := range keys {
		m.Update(k)
	}
}

// typeText sends one rune key press per character
func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyCtrlD = tea.KeyMsg{Type: tea.KeyCtrlD}
	keyCtrlY = tea.KeyMsg{Type: tea.KeyCtrlY}
)

// click sends a left button press on the given terminal line
func click(m *Model, y int) {
	m.Update(tea.MouseMsg{X: 4, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

// frame delivers one tick, as the program would every frame interval
func frame(m *Model) {
	m.Update(tickMsg(time.Now()))
}

// AssertModelField is a generic helper for checking model field values
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}
