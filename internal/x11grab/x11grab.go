// Package x11grab captures screens on X11 sessions, where the wayland
// capture protocol is not available. Displays are composited at their real
// root-window positions.
package x11grab

import (
	"fmt"
	"log/slog"

	"github.com/kbinani/screenshot"

	"github.com/declantsien/wescap/internal/pixel"
	"github.com/declantsien/wescap/internal/stitch"
)

// Display is one X11 screen in root-window coordinates.
type Display struct {
	Index  int
	X      int
	Y      int
	Width  int
	Height int
}

// Displays lists the active X11 screens, empty when no X server is
// reachable.
func Displays() []Display {
	n := screenshot.NumActiveDisplays()
	displays := make([]Display, 0, n)
	for i := 0; i < n; i++ {
		bounds := screenshot.GetDisplayBounds(i)
		displays = append(displays, Display{
			Index:  i,
			X:      bounds.Min.X,
			Y:      bounds.Min.Y,
			Width:  bounds.Dx(),
			Height: bounds.Dy(),
		})
	}
	return displays
}

// Grab captures every active display and composites them into one canvas.
func Grab(log *slog.Logger) (*stitch.Image, error) {
	if log == nil {
		log = slog.Default()
	}
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return nil, fmt.Errorf("no active displays (is an X server running?)")
	}

	inputs := make([]stitch.Input, 0, n)
	for i := 0; i < n; i++ {
		bounds := screenshot.GetDisplayBounds(i)
		img, err := screenshot.CaptureRect(bounds)
		if err != nil {
			return nil, fmt.Errorf("capture display %d: %w", i, err)
		}
		log.Debug("captured display", "index", i, "bounds", bounds.String())
		inputs = append(inputs, stitch.Input{
			Name:   fmt.Sprintf("display-%d", i),
			X:      bounds.Min.X,
			Y:      bounds.Min.Y,
			Width:  img.Rect.Dx(),
			Height: img.Rect.Dy(),
			Stride: img.Stride,
			Format: pixel.ABGR8888,
			Pix:    img.Pix,
		})
	}
	return stitch.Composite(inputs)
}
