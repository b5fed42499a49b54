/*
Package keybinds provides customizable keyboard binding management.

# Contexts

  - global: available everywhere (ctrl+c)
  - products: the product list
  - form: the add and detail forms

A key bound in a specific context overrides the same key in global.
Form bindings avoid printable keys because those are typed into the
focused input.

# Configuration File Format

keybinds.json maps actions to comma-separated keys. Comments are allowed:

	{
	  // vim users
	  "products": {
	    "fetch_products": "r, ctrl+r",
	    "navigate_down": "j, down"
	  },
	  "form": {
	    "delete": "ctrl+x"
	  }
	}

A configured action replaces every default key of that action in its
context. Unknown actions are rejected when the file is loaded.
*/
package keybinds
