package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	// Contexts define where keybindings are active
	ContextGlobal   Context = "global"   // Available everywhere
	ContextProducts Context = "products" // Product list screen
	ContextForm     Context = "form"     // Add and detail forms
)

const (
	// Global actions
	ActionQuit      Action = "quit"       // Quit application
	ActionQuitForce Action = "quit_force" // Force quit (ctrl+c)

	// Product list actions
	ActionAddProduct    Action = "add_product"    // Open the add form
	ActionFetchProducts Action = "fetch_products" // Refresh the list
	ActionNavigateUp    Action = "navigate_up"    // Move up one row
	ActionNavigateDown  Action = "navigate_down"  // Move down one row
	ActionSelect        Action = "select"         // Open the selected product

	// Form actions
	ActionBack      Action = "back"       // Return to the list
	ActionSubmit    Action = "submit"     // Add or save
	ActionDelete    Action = "delete"     // Delete the product being viewed
	ActionNextField Action = "next_field" // Focus next input
	ActionPrevField Action = "prev_field" // Focus previous input

	// Shared
	ActionCopyID Action = "copy_id" // Copy the product id to the clipboard
)

// ActionInfo contains metadata about an action
type ActionInfo struct {
	Action      Action
	Description string
	Category    string
}

var actionInfos = map[Action]ActionInfo{
	ActionQuit:          {ActionQuit, "quit", "Global"},
	ActionQuitForce:     {ActionQuitForce, "force quit", "Global"},
	ActionAddProduct:    {ActionAddProduct, "add product", "Products"},
	ActionFetchProducts: {ActionFetchProducts, "fetch products", "Products"},
	ActionNavigateUp:    {ActionNavigateUp, "up", "Navigation"},
	ActionNavigateDown:  {ActionNavigateDown, "down", "Navigation"},
	ActionSelect:        {ActionSelect, "open", "Navigation"},
	ActionBack:          {ActionBack, "back", "Form"},
	ActionSubmit:        {ActionSubmit, "submit", "Form"},
	ActionDelete:        {ActionDelete, "delete", "Form"},
	ActionNextField:     {ActionNextField, "next field", "Form"},
	ActionPrevField:     {ActionPrevField, "prev field", "Form"},
	ActionCopyID:        {ActionCopyID, "copy id", "Clipboard"},
}

// GetActionInfo returns human-readable information about an action
func GetActionInfo(action Action) ActionInfo {
	if info, ok := actionInfos[action]; ok {
		return info
	}
	return ActionInfo{action, string(action), "Unknown"}
}

// IsKnownAction reports whether the action exists
func IsKnownAction(action Action) bool {
	_, ok := actionInfos[action]
	return ok
}

// IsGlobalAction returns true if the action is available in all contexts
func IsGlobalAction(action Action) bool {
	return action == ActionQuit || action == ActionQuitForce
}

// IsKnownContext reports whether the context exists
func IsKnownContext(context Context) bool {
	switch context {
	case ContextGlobal, ContextProducts, ContextForm:
		return true
	}
	return false
}
