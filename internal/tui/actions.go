package tui

import (
	"fmt"
	"log/slog"

	"github.com/studiowebux/productdesk/internal/types"
)

// activateEntry runs the products screen entry at index
func (m *Model) activateEntry(index int, products []types.ShortProduct) {
	switch index {
	case entryAddProduct:
		m.openAddForm()
	case entryFetchProducts:
		m.fetchProducts()
	default:
		if row := index - fixedEntries; row >= 0 && row < len(products) {
			m.openDetail(products[row].ID)
		}
	}
}

func (m *Model) fetchProducts() {
	m.vm.FetchShortProducts()
	m.statusMsg = "Fetching products..."
}

func (m *Model) openAddForm() {
	m.addForm.setFocus(0)
	m.navigate(ScreenAddProduct)
}

// closeAddForm leaves the add screen. Typed values stay for the next visit.
func (m *Model) closeAddForm() {
	m.navigate(ScreenProducts)
}

// submitAddForm posts the form as a new product and returns to the list
// without waiting for the server
func (m *Model) submitAddForm() {
	p := m.addForm.product(types.NewProductID())
	m.vm.CreateProduct(p)
	m.logger.Info("product_create_requested", slog.String("product_id", p.ID.String()))

	m.addForm.reset()
	m.navigate(ScreenProducts)
	m.statusMsg = fmt.Sprintf("Adding %s...", p.Name)
}

// openDetail shows the detail screen and requests the record once
func (m *Model) openDetail(id types.ProductID) {
	m.selectedID = id
	m.detailLoaded = false
	m.detailForm.reset()
	m.vm.ClearDetail()
	m.vm.FetchProductDetail(id)
	m.navigate(ScreenProductDetail)
}

func (m *Model) closeDetail() {
	m.vm.ClearDetail()
	m.detailLoaded = false
	m.navigate(ScreenProducts)
}

// writeBackDetail mirrors the text fields into the fetched record.
// Price and quantity stay as text until the record is saved.
func (m *Model) writeBackDetail() {
	field, ok := m.detailForm.focusedField()
	if !ok || field == fieldPrice || field == fieldQuantity {
		return
	}
	value := m.detailForm.value(field)
	m.vm.EditDetail(func(p *types.Product) {
		if p.ID != m.selectedID {
			return
		}
		switch field {
		case fieldName:
			p.Name = value
		case fieldDescription:
			p.Description = value
		case fieldStatus:
			p.Status = value
		}
	})
}

// saveDetail blocks the render loop until the server answered the update,
// then returns to a refreshed list
func (m *Model) saveDetail() {
	price := types.ParseAmount(m.detailForm.value(fieldPrice))
	quantity := types.ParseAmount(m.detailForm.value(fieldQuantity))

	id := m.selectedID
	m.vm.EditDetail(func(p *types.Product) {
		if p.ID != id {
			return
		}
		p.Price = price
		p.Quantity = quantity
	})

	p, ok := m.vm.Detail()
	if !ok || p.ID != id {
		// A late answer for a product left earlier replaced the record.
		// The inputs still hold this product.
		m.logger.Warn("detail_record_replaced",
			slog.String("product_id", id.String()),
			slog.String("record_id", p.ID.String()))
		p = m.detailForm.product(id)
		m.vm.ReplaceDetail(p)
	}

	m.vm.UpdateProduct(p).Wait()

	m.navigate(ScreenProducts)
	m.vm.FetchShortProducts()
	if m.vm.Error() == "" {
		m.statusMsg = fmt.Sprintf("Saved %s", p.Name)
	}
}

// deleteDetail requests the delete and returns to a refreshed list.
// The two calls race; the list may still show the product once.
func (m *Model) deleteDetail() {
	m.vm.DeleteProduct(m.selectedID)
	m.logger.Info("product_delete_requested", slog.String("product_id", m.selectedID.String()))
	m.detailLoaded = false
	m.navigate(ScreenProducts)
	m.vm.FetchShortProducts()
}

func (m *Model) copyID(id types.ProductID) {
	if id.IsZero() {
		return
	}
	if err := m.copyToClipboard(id.String()); err != nil {
		m.logger.Warn("clipboard_failed", slog.Any("err", err))
		m.statusMsg = "Clipboard unavailable"
		return
	}
	m.statusMsg = fmt.Sprintf("Copied %s", id)
}
