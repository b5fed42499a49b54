package assets

import (
	"bytes"
	"image/png"
	"testing"
)

func TestIconDecodes(t *testing.T) {
	img, err := png.Decode(bytes.NewReader(Icon))
	if err != nil {
		t.Fatalf("decode icon: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 16 {
		t.Errorf("icon size = %dx%d, want 16x16", b.Dx(), b.Dy())
	}
}
