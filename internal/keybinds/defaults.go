package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerProductBindings(r)
	registerFormBindings(r)

	return r
}

// registerGlobalBindings sets up bindings available in all modes
func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
}

// registerProductBindings sets up the list screen
func registerProductBindings(r *Registry) {
	r.Register(ContextProducts, "q", ActionQuit)
	r.Register(ContextProducts, "a", ActionAddProduct)
	r.RegisterMultiple(ContextProducts, []string{"f", "r"}, ActionFetchProducts)
	r.RegisterMultiple(ContextProducts, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextProducts, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextProducts, "enter", ActionSelect)
	r.Register(ContextProducts, "y", ActionCopyID)
}

// registerFormBindings sets up the add and detail forms.
// Printable keys belong to the text inputs, so only control keys are bound.
func registerFormBindings(r *Registry) {
	r.Register(ContextForm, "esc", ActionBack)
	r.Register(ContextForm, "enter", ActionSubmit)
	r.Register(ContextForm, "ctrl+d", ActionDelete)
	r.RegisterMultiple(ContextForm, []string{"tab", "down"}, ActionNextField)
	r.RegisterMultiple(ContextForm, []string{"shift+tab", "up"}, ActionPrevField)
	r.Register(ContextForm, "ctrl+y", ActionCopyID)
}
