package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/productdesk/internal/keybinds"
)

// handleKeyPress routes a key press to the current screen
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	switch m.screen {
	case ScreenAddProduct:
		return m.handleAddKeys(msg)
	case ScreenProductDetail:
		return m.handleDetailKeys(msg)
	default:
		return m.handleProductsKeys(msg)
	}
}

func (m *Model) handleProductsKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextProducts, msg.String())
	if !ok {
		return nil
	}

	products := m.products()
	m.clampCursor(products)

	switch action {
	case keybinds.ActionQuit, keybinds.ActionQuitForce:
		return tea.Quit

	case keybinds.ActionAddProduct:
		m.openAddForm()

	case keybinds.ActionFetchProducts:
		m.fetchProducts()

	case keybinds.ActionNavigateUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case keybinds.ActionNavigateDown:
		if m.cursor < m.entryCount(products)-1 {
			m.cursor++
		}

	case keybinds.ActionSelect:
		m.activateEntry(m.cursor, products)

	case keybinds.ActionCopyID:
		if row := m.cursor - fixedEntries; row >= 0 && row < len(products) {
			m.copyID(products[row].ID)
		}
	}

	return nil
}

func (m *Model) handleAddKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextForm, msg.String())
	if !ok {
		return m.addForm.update(msg)
	}

	switch action {
	case keybinds.ActionQuitForce:
		return tea.Quit

	case keybinds.ActionBack:
		m.closeAddForm()

	case keybinds.ActionSubmit:
		if button, ok := m.addForm.focusedButton(); ok && button == buttonBack {
			m.closeAddForm()
			return nil
		}
		m.submitAddForm()

	case keybinds.ActionNextField:
		m.addForm.next()

	case keybinds.ActionPrevField:
		m.addForm.prev()

	case keybinds.ActionCopyID, keybinds.ActionDelete:
		// The record has no identity until it is added
	}

	return nil
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextForm, msg.String())

	if !m.detailLoaded {
		// Only Back is offered while the record is loading
		switch {
		case ok && action == keybinds.ActionQuitForce:
			return tea.Quit
		case ok && (action == keybinds.ActionBack || action == keybinds.ActionSubmit):
			m.closeDetail()
		case ok && action == keybinds.ActionCopyID:
			m.copyID(m.selectedID)
		}
		return nil
	}

	if !ok {
		cmd := m.detailForm.update(msg)
		m.writeBackDetail()
		return cmd
	}

	switch action {
	case keybinds.ActionQuitForce:
		return tea.Quit

	case keybinds.ActionBack:
		m.closeDetail()

	case keybinds.ActionSubmit:
		button, _ := m.detailForm.focusedButton()
		switch button {
		case buttonDelete:
			m.deleteDetail()
		case buttonBack:
			m.closeDetail()
		default:
			m.saveDetail()
		}

	case keybinds.ActionDelete:
		m.deleteDetail()

	case keybinds.ActionNextField:
		m.detailForm.next()

	case keybinds.ActionPrevField:
		m.detailForm.prev()

	case keybinds.ActionCopyID:
		m.copyID(m.selectedID)
	}

	return nil
}

// handleMouse maps a left click onto the entry drawn at that line.
// top is the first line of the screen body.
func (m *Model) handleMouse(msg tea.MouseMsg, top int) tea.Cmd {
	if msg.Button != tea.MouseButtonLeft {
		return nil
	}
	line := msg.Y - top
	if line < 0 {
		return nil
	}

	switch m.screen {
	case ScreenProducts:
		products := m.products()
		if entry, ok := productsEntryAt(line, len(products)); ok {
			m.cursor = entry
			m.activateEntry(entry, products)
		}

	case ScreenAddProduct:
		slot, ok := formSlotAt(line, &m.addForm)
		if !ok {
			return nil
		}
		m.addForm.setFocus(slot)
		switch button, _ := m.addForm.focusedButton(); button {
		case buttonAdd:
			m.submitAddForm()
		case buttonBack:
			m.closeAddForm()
		}

	case ScreenProductDetail:
		if !m.detailLoaded {
			if line == loadingBackLine {
				m.closeDetail()
			}
			return nil
		}
		slot, ok := formSlotAt(line, &m.detailForm)
		if !ok {
			return nil
		}
		m.detailForm.setFocus(slot)
		switch button, _ := m.detailForm.focusedButton(); button {
		case buttonSave:
			m.saveDetail()
		case buttonDelete:
			m.deleteDetail()
		case buttonBack:
			m.closeDetail()
		}
	}

	return nil
}

// productsEntryAt converts a body line into an entry index.
// The rule between the fixed entries and the rows is not an entry.
func productsEntryAt(line, rows int) (int, bool) {
	switch {
	case line < fixedEntries:
		return line, true
	case line == fixedEntries:
		return 0, false
	}
	row := line - fixedEntries - 1
	if row >= rows {
		return 0, false
	}
	return fixedEntries + row, true
}

// formSlotAt converts a body line into a focus slot.
// Inputs take one line each, then a blank line, then one line per button.
func formSlotAt(line int, f *productForm) (int, bool) {
	switch {
	case line < fieldCount:
		return line, true
	case line == fieldCount:
		return 0, false
	}
	button := line - fieldCount - 1
	if button >= len(f.buttons) {
		return 0, false
	}
	return fieldCount + button, true
}
