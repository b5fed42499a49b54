package viewmodel

import (
	"sync"

	"github.com/studiowebux/productdesk/internal/types"
)

// ListCell holds the short product list with thread safety
type ListCell struct {
	mu       sync.Mutex
	products []types.ShortProduct
}

// Get returns a copy of the list in server order
func (c *ListCell) Get() []types.ShortProduct {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]types.ShortProduct(nil), c.products...)
}

// Replace swaps the whole list
func (c *ListCell) Replace(products []types.ShortProduct) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = append([]types.ShortProduct(nil), products...)
}

// DetailCell holds the optional product being viewed and edited
type DetailCell struct {
	mu      sync.Mutex
	product types.Product
	present bool
}

// Get returns the product and whether one is loaded
func (c *DetailCell) Get() (types.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.product, c.present
}

// Set stores a freshly fetched product
func (c *DetailCell) Set(p types.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.product = p
	c.present = true
}

// Edit mutates the loaded product in place. It reports false when nothing is loaded.
func (c *DetailCell) Edit(fn func(*types.Product)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.present {
		return false
	}
	fn(&c.product)
	return true
}

// Clear empties the cell
func (c *DetailCell) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.product = types.Product{}
	c.present = false
}

// ErrorCell holds the single user-visible error message
type ErrorCell struct {
	mu      sync.Mutex
	message string
}

// Get returns the message, empty when no error is shown
func (c *ErrorCell) Get() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.message
}

// Set overwrites any unread message
func (c *ErrorCell) Set(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.message = message
}

// Clear dismisses the message
func (c *ErrorCell) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.message = ""
}
