/*
Package tui implements the terminal user interface for productdesk.

# Architecture

The TUI follows the Bubble Tea framework's Model-Update-View pattern:
  - Model: navigation and form state owned by the render loop
  - Update: processes key, mouse and frame messages
  - View: renders the current screen from the view-model cells

# Key Components

  - model.go: Screen enum, Model struct, Update
  - init.go: construction, program start and the frame tick
  - keys.go: keyboard and mouse routing through the keybinds registry
  - actions.go: navigation and calls into the view-model
  - form.go: the five product inputs shared by the add and detail screens
  - render.go: styles and per-screen rendering
  - logo.go: the header icon

# Screens

  - ScreenProducts: "Add Product", "Fetch Products", then one row per product
  - ScreenAddProduct: empty form, Add posts without waiting
  - ScreenProductDetail: loading line until the selected record arrives,
    then the form. Save waits for the server before returning.

# State

Shared state lives in viewmodel.ViewModel. Network calls never touch the
Model; a tick every frame interval redraws and picks up whatever the calls
wrote into the cells. The pending error is cleared by the next key press or
mouse button press, before that press is handled.
*/
package tui
