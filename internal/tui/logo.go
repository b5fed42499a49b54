package tui

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderLogo decodes a PNG and draws it with upper half blocks, two pixel
// rows per terminal line, scaled to width cells
func renderLogo(data []byte, width int) (string, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return "", err
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return "", fmt.Errorf("empty image")
	}
	if width <= 0 || width > bounds.Dx() {
		width = bounds.Dx()
	}
	height := bounds.Dy() * width / bounds.Dx()
	if height%2 == 1 {
		height++
	}

	sample := func(x, y int) (string, bool) {
		sx := bounds.Min.X + x*bounds.Dx()/width
		sy := bounds.Min.Y + y*bounds.Dy()/height
		if sy >= bounds.Max.Y {
			return "", false
		}
		return hexColor(img.At(sx, sy))
	}

	lines := make([]string, 0, height/2)
	for y := 0; y < height; y += 2 {
		var b strings.Builder
		for x := 0; x < width; x++ {
			top, topOK := sample(x, y)
			bottom, bottomOK := sample(x, y+1)

			style := lipgloss.NewStyle()
			switch {
			case topOK && bottomOK:
				b.WriteString(style.Foreground(lipgloss.Color(top)).Background(lipgloss.Color(bottom)).Render("▀"))
			case topOK:
				b.WriteString(style.Foreground(lipgloss.Color(top)).Render("▀"))
			case bottomOK:
				b.WriteString(style.Foreground(lipgloss.Color(bottom)).Render("▄"))
			default:
				b.WriteString(" ")
			}
		}
		lines = append(lines, b.String())
	}

	return strings.Join(lines, "\n"), nil
}

// hexColor converts a pixel to #rrggbb, reporting false for mostly transparent pixels
func hexColor(c color.Color) (string, bool) {
	nrgba := color.NRGBAModel.Convert(c).(color.NRGBA)
	if nrgba.A < 128 {
		return "", false
	}
	return fmt.Sprintf("#%02x%02x%02x", nrgba.R, nrgba.G, nrgba.B), true
}
