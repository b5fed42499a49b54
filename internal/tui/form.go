package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/productdesk/internal/types"
)

var fieldLabels = [fieldCount]string{
	fieldName:        "Name",
	fieldDescription: "Description",
	fieldPrice:       "Price",
	fieldQuantity:    "Quantity",
	fieldStatus:      "Status",
}

// productForm is the set of inputs shared by the add and detail screens.
// Focus runs over the inputs first and then over the buttons.
type productForm struct {
	inputs  [fieldCount]textinput.Model
	buttons []string
	focus   int
}

func newProductForm(buttons ...string) productForm {
	f := productForm{buttons: buttons}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = fieldLabels[i]
		in.CharLimit = 256
		in.Width = InputWidth
		f.inputs[i] = in
	}
	f.setFocus(0)
	return f
}

// slots is the number of focusable elements
func (f *productForm) slots() int {
	return fieldCount + len(f.buttons)
}

func (f *productForm) setFocus(i int) {
	n := f.slots()
	f.focus = ((i % n) + n) % n
	for j := range f.inputs {
		if j == f.focus {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

func (f *productForm) next() { f.setFocus(f.focus + 1) }
func (f *productForm) prev() { f.setFocus(f.focus - 1) }

// focusedField returns the input with focus, if an input has it
func (f *productForm) focusedField() (int, bool) {
	if f.focus < fieldCount {
		return f.focus, true
	}
	return 0, false
}

// focusedButton returns the label of the button with focus, if a button has it
func (f *productForm) focusedButton() (string, bool) {
	if f.focus < fieldCount {
		return "", false
	}
	return f.buttons[f.focus-fieldCount], true
}

// focusButton moves focus onto the named button
func (f *productForm) focusButton(label string) {
	for i, b := range f.buttons {
		if b == label {
			f.setFocus(fieldCount + i)
			return
		}
	}
}

// update forwards msg to the focused input
func (f *productForm) update(msg tea.Msg) tea.Cmd {
	field, ok := f.focusedField()
	if !ok {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[field], cmd = f.inputs[field].Update(msg)
	return cmd
}

func (f *productForm) value(field int) string {
	return f.inputs[field].Value()
}

func (f *productForm) setValue(field int, v string) {
	f.inputs[field].SetValue(v)
}

// fill copies a product into the inputs
func (f *productForm) fill(p types.Product) {
	f.setValue(fieldName, p.Name)
	f.setValue(fieldDescription, p.Description)
	f.setValue(fieldPrice, types.FormatAmount(p.Price))
	f.setValue(fieldQuantity, types.FormatAmount(p.Quantity))
	f.setValue(fieldStatus, p.Status)
}

// product builds a record from the inputs. Amounts that do not parse become 0.
func (f *productForm) product(id types.ProductID) types.Product {
	return types.Product{
		ID:          id,
		Name:        f.value(fieldName),
		Description: f.value(fieldDescription),
		Price:       types.ParseAmount(f.value(fieldPrice)),
		Quantity:    types.ParseAmount(f.value(fieldQuantity)),
		Status:      f.value(fieldStatus),
	}
}

func (f *productForm) reset() {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
	f.setFocus(0)
}
