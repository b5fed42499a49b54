// Package assets holds files compiled into the binary.
package assets

import _ "embed"

// Icon is the application icon, a 16x16 RGBA PNG
//
//go:embed icon.png
var Icon []byte
