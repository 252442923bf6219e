package capture

import (
	"fmt"

	"github.com/rajveermalviya/go-wayland/wayland/client"
)

// Output is one display the compositor announced. Its properties fill in
// asynchronously; after the second discovery roundtrip they are settled.
type Output struct {
	wl           *client.Output
	registryName uint32
	ordinal      int
	name         string
	x, y         int32
	width        int32
	height       int32
	scale        int32
}

// Name returns the compositor-assigned name, or a stable placeholder when
// the output predates wl_output v4.
func (o *Output) Name() string {
	if o.name != "" {
		return o.name
	}
	return fmt.Sprintf("output-%d", o.ordinal)
}

// Ordinal is the discovery position, which also decides stitching order.
func (o *Output) Ordinal() int {
	return o.ordinal
}

// Position is the output's place in the compositor's global space.
func (o *Output) Position() (x, y int32) {
	return o.x, o.y
}

// Mode is the current mode's pixel dimensions.
func (o *Output) Mode() (width, height int32) {
	return o.width, o.height
}

// Scale is the compositor's integer scale factor, 1 unless announced
// otherwise.
func (o *Output) Scale() int32 {
	return o.scale
}
