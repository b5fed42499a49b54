package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/productdesk/internal/keybinds"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"} // Dark green / Bright green
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"} // Dark red / Bright red
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"} // Dark goldenrod / Yellow
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"} // Dark gray / Light gray
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"} // Dark cyan / Cyan
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)
)

const (
	emptyListText = "Products will be here"

	// loadingBackLine is the body line of "Back" while a record loads
	loadingBackLine = 2
)

// help lists the actions shown in the footer of each screen
var (
	productsHelp = []keybinds.Action{
		keybinds.ActionNavigateUp, keybinds.ActionNavigateDown, keybinds.ActionSelect,
		keybinds.ActionAddProduct, keybinds.ActionFetchProducts, keybinds.ActionCopyID, keybinds.ActionQuit,
	}
	addHelp = []keybinds.Action{
		keybinds.ActionNextField, keybinds.ActionPrevField, keybinds.ActionSubmit, keybinds.ActionBack,
	}
	detailHelp = []keybinds.Action{
		keybinds.ActionNextField, keybinds.ActionPrevField, keybinds.ActionSubmit,
		keybinds.ActionDelete, keybinds.ActionCopyID, keybinds.ActionBack,
	}
)

// View renders the current frame from the view-model cells
func (m Model) View() string {
	sections := []string{m.renderHeader()}
	if errLine := m.renderError(); errLine != "" {
		sections = append(sections, errLine)
	}

	switch m.screen {
	case ScreenAddProduct:
		sections = append(sections, m.renderAddProduct())
	case ScreenProductDetail:
		sections = append(sections, m.renderProductDetail())
	default:
		sections = append(sections, m.renderProducts())
	}

	sections = append(sections, m.renderFooter())
	return strings.Join(sections, "\n")
}

// renderHeader renders the logo and the screen title, followed by a blank line
func (m Model) renderHeader() string {
	var b strings.Builder
	if m.logo != "" {
		b.WriteString(m.logo)
		b.WriteString("\n")
	}

	title := styleTitle.Render(WindowTitle)
	switch m.screen {
	case ScreenAddProduct:
		title += styleSubtle.Render(" / ") + "Add Product"
	case ScreenProductDetail:
		title += styleSubtle.Render(" / ") + "Product " + m.selectedID.String()
	default:
		title += styleSubtle.Render(" / ") + "Products"
	}
	b.WriteString(title)
	b.WriteString("\n")
	return b.String()
}

// renderError renders the pending error followed by a blank line, or nothing
func (m Model) renderError() string {
	msg := m.vm.Error()
	if msg == "" {
		return ""
	}
	return styleError.Render("Error: "+msg) + "\n"
}

// bodyTop returns the first terminal line of the screen body
func (m Model) bodyTop() int {
	top := lipgloss.Height(m.renderHeader())
	if errLine := m.renderError(); errLine != "" {
		top += lipgloss.Height(errLine)
	}
	return top
}

func (m Model) renderProducts() string {
	products := m.products()
	m.clampCursor(products)

	lines := []string{
		m.renderEntry(entryAddProduct, "Add Product"),
		m.renderEntry(entryFetchProducts, "Fetch Products"),
		styleSubtle.Render(strings.Repeat("─", min(m.width, SeparatorMaxWidth))),
	}

	if len(products) == 0 {
		lines = append(lines, styleSubtle.Render("  "+emptyListText))
	}
	for i, p := range products {
		lines = append(lines, m.renderEntry(fixedEntries+i, p.Label()))
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderEntry(index int, text string) string {
	if index == m.cursor {
		return styleSelected.Render("> " + text)
	}
	return "  " + text
}

func (m Model) renderAddProduct() string {
	return renderForm(&m.addForm)
}

func (m Model) renderProductDetail() string {
	if !m.detailLoaded {
		lines := []string{
			styleWarning.Render(fmt.Sprintf("Loading product %s...", m.selectedID)),
			"",
			styleSelected.Render("> " + buttonBack),
		}
		return strings.Join(lines, "\n")
	}
	return renderForm(&m.detailForm)
}

// renderForm draws one line per input, a blank line, then one line per button
func renderForm(f *productForm) string {
	lines := make([]string, 0, f.slots()+1)
	for i := range f.inputs {
		label := fmt.Sprintf("%-*s", LabelWidth, fieldLabels[i])
		if i == f.focus {
			label = styleTitle.Render(label)
		} else {
			label = styleSubtle.Render(label)
		}
		lines = append(lines, "  "+label+f.inputs[i].View())
	}

	lines = append(lines, "")
	for i, button := range f.buttons {
		if fieldCount+i == f.focus {
			lines = append(lines, styleSelected.Render("> "+button))
		} else {
			lines = append(lines, "  "+button)
		}
	}

	return strings.Join(lines, "\n")
}

// renderFooter renders the status message and the key help
func (m Model) renderFooter() string {
	var actions []keybinds.Action
	context := keybinds.ContextForm
	switch m.screen {
	case ScreenAddProduct:
		actions = addHelp
	case ScreenProductDetail:
		actions = detailHelp
	default:
		actions = productsHelp
		context = keybinds.ContextProducts
	}

	parts := make([]string, 0, len(actions))
	for _, action := range actions {
		keys := m.keybinds.GetBindingString(context, action)
		parts = append(parts, fmt.Sprintf("%s: %s", keys, keybinds.GetActionInfo(action).Description))
	}

	status := ""
	if m.statusMsg != "" {
		status = styleSuccess.Render(m.statusMsg)
	}

	return "\n" + status + "\n" + styleSubtle.Render(strings.Join(parts, " • "))
}
