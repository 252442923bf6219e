// Package stitch lays out per-output capture buffers in one coordinate
// space and composites them into a single image.
package stitch

import (
	"errors"
	"fmt"

	"github.com/declantsien/wescap/internal/pixel"
)

// ErrDegenerate is returned when the layout bounding box has no area, for
// example when there are no inputs at all.
var ErrDegenerate = errors.New("layout bounding box is degenerate")

// Input is one captured output. Pix is addressed with Stride bytes per row
// in the buffer's own pixel format; X and Y place it in the composite.
type Input struct {
	Name   string
	X, Y   int
	Width  int
	Height int
	Stride int
	Format pixel.Format
	Pix    []byte
}

// Image is the composite result in ARGB32 memory order (B, G, R, A per
// pixel), tightly packed. Areas no input covers stay fully transparent.
type Image struct {
	Width  int
	Height int
	Stride int
	Pix    []byte
}

// Stitch places the inputs in a single row and composites them. Offsets are
// assigned by walking the inputs in reverse order and laying them out left
// to right, so the last-discovered output ends up at x=0 and the first one
// rightmost. Any X/Y already present on the inputs is overwritten.
func Stitch(inputs []Input) (*Image, error) {
	laid := make([]Input, len(inputs))
	copy(laid, inputs)
	x := 0
	for i := len(laid) - 1; i >= 0; i-- {
		laid[i].X = x
		laid[i].Y = 0
		x += laid[i].Width
	}
	return Composite(laid)
}

// Composite stitches the inputs at the offsets they carry. Inputs are
// copied in slice order with replace semantics, so later inputs win where
// they overlap.
func Composite(inputs []Input) (*Image, error) {
	var minX, minY, maxX, maxY int
	first := true
	for i := range inputs {
		in := &inputs[i]
		if err := checkInput(in); err != nil {
			return nil, err
		}
		right := in.X + in.Width
		bottom := in.Y + in.Height
		if first {
			minX, minY, maxX, maxY = in.X, in.Y, right, bottom
			first = false
			continue
		}
		if in.X < minX {
			minX = in.X
		}
		if in.Y < minY {
			minY = in.Y
		}
		if right > maxX {
			maxX = right
		}
		if bottom > maxY {
			maxY = bottom
		}
	}
	if first || maxX <= minX || maxY <= minY {
		return nil, ErrDegenerate
	}

	img := &Image{
		Width:  maxX - minX,
		Height: maxY - minY,
		Stride: (maxX - minX) * 4,
	}
	img.Pix = make([]byte, img.Stride*img.Height)

	for i := range inputs {
		in := &inputs[i]
		dx := (in.X - minX) * 4
		for y := 0; y < in.Height; y++ {
			dstOff := (in.Y-minY+y)*img.Stride + dx
			srcOff := y * in.Stride
			rowLen := in.Width * 4
			err := pixel.ConvertRowARGB32(img.Pix[dstOff:dstOff+rowLen], in.Pix[srcOff:srcOff+rowLen], in.Width, in.Format)
			if err != nil {
				return nil, fmt.Errorf("composite %q row %d: %w", in.Name, y, err)
			}
		}
	}
	return img, nil
}

func checkInput(in *Input) error {
	if in.Width <= 0 || in.Height <= 0 {
		return fmt.Errorf("input %q has invalid dimensions %dx%d", in.Name, in.Width, in.Height)
	}
	if in.Stride < in.Width*4 {
		return fmt.Errorf("input %q stride %d too small for width %d", in.Name, in.Stride, in.Width)
	}
	need := (in.Height-1)*in.Stride + in.Width*4
	if len(in.Pix) < need {
		return fmt.Errorf("input %q pixel buffer holds %d bytes, need %d", in.Name, len(in.Pix), need)
	}
	return nil
}
