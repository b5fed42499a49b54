package tui

import "time"

// UI Layout Constants

const (
	// DefaultWidth and DefaultHeight are used until the first WindowSizeMsg arrives
	DefaultWidth  = 80
	DefaultHeight = 24

	// InputWidth is the visible width of every form input
	InputWidth = 40
	// LabelWidth pads field labels so the inputs line up
	LabelWidth = 13

	// SeparatorMaxWidth caps the rule drawn under the product list actions
	SeparatorMaxWidth = 40

	// LogoWidth is the width of the header icon in cells
	LogoWidth = 16

	// DefaultFrameInterval is the redraw cadence when none is configured
	DefaultFrameInterval = 100 * time.Millisecond

	// WindowTitle is set once at startup
	WindowTitle = "productdesk"
)

// Product list entries that precede the product rows
const (
	entryAddProduct = iota
	entryFetchProducts
	fixedEntries
)

// Form fields, in focus order
const (
	fieldName = iota
	fieldDescription
	fieldPrice
	fieldQuantity
	fieldStatus
	fieldCount
)

// Form buttons
const (
	buttonAdd    = "Add"
	buttonSave   = "Save"
	buttonDelete = "Delete"
	buttonBack   = "Back"
)
